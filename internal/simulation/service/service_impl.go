package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	"github.com/smallbiznis/ecoai/internal/carbon/intensity"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	"github.com/smallbiznis/ecoai/internal/config"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"github.com/smallbiznis/ecoai/internal/observability/metrics"
	simulationdomain "github.com/smallbiznis/ecoai/internal/simulation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	baselineWindowDays = 30
	defaultMonthsAhead = 12
)

var (
	hundred    = decimal.NewFromInt(100)
	gramsPerKg = decimal.NewFromInt(1000)
	decimalOne = decimal.NewFromInt(1)
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          simulationdomain.Repository
	CompanyRepo   companydomain.Repository
	EnergyRepo    energydomain.Repository
	Carbon        carbondomain.Service
	Engine        *config.EngineConfigHolder `optional:"true"`
	EngineMetrics *metrics.EngineMetrics     `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          simulationdomain.Repository
	companyRepo   companydomain.Repository
	energyRepo    energydomain.Repository
	carbon        carbondomain.Service
	engine        *config.EngineConfigHolder
	engineMetrics *metrics.EngineMetrics
	table         *intensity.Table
}

func New(p Params) simulationdomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("simulation.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		companyRepo:   p.CompanyRepo,
		energyRepo:    p.EnergyRepo,
		carbon:        p.Carbon,
		engine:        p.Engine,
		engineMetrics: p.EngineMetrics,
		table:         intensity.Default(),
	}
}

func (s *Service) SimulateGrowth(ctx context.Context, companyID snowflake.ID, growthPercent decimal.Decimal, monthsAhead *int) (*simulationdomain.Result, error) {
	months := defaultMonthsAhead
	if monthsAhead != nil {
		months = *monthsAhead
	}
	if months < 0 || months > simulationdomain.MaxMonthsAhead {
		return nil, simulationdomain.ErrInvalidMonthsAhead
	}

	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	baseline, err := s.baselineKwh(ctx, companyID)
	if err != nil {
		return nil, err
	}
	factor, err := s.carbon.EffectiveIntensity(ctx, companyID, company.Region)
	if err != nil {
		return nil, err
	}

	multiplier := decimalOne.Add(growthPercent.DivRound(hundred, 4))
	projected := baseline.Mul(compound(multiplier, months)).Round(2)

	s.engineMetrics.IncSimulation(string(simulationdomain.TypeGrowth))
	return simulationdomain.NewResult(
		simulationdomain.TypeGrowth,
		fmt.Sprintf("AI Growth Simulation (%s%% over %d months)", growthPercent.String(), months),
		simulationdomain.Parameters{GrowthPercent: &growthPercent, MonthsAhead: &months},
		legOf(baseline, factor, company.ElectricityCostPerKwh),
		legOf(projected, factor, company.ElectricityCostPerKwh),
	), nil
}

func (s *Service) SimulateRegionChange(ctx context.Context, companyID snowflake.ID, fromRegion, toRegion string) (*simulationdomain.Result, error) {
	from, to := intensity.Normalize(fromRegion), intensity.Normalize(toRegion)
	if from == "" || to == "" {
		return nil, simulationdomain.ErrInvalidRegion
	}

	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	kwh, err := s.baselineKwh(ctx, companyID)
	if err != nil {
		return nil, err
	}

	fromFactor, toFactor := s.table.Intensity(from), s.table.Intensity(to)
	description := fmt.Sprintf("Region Change: %s → %s (Carbon intensity: %s → %s gCO₂/kWh)",
		s.table.Name(from), s.table.Name(to),
		fromFactor.StringFixed(0), toFactor.StringFixed(0),
	)

	s.engineMetrics.IncSimulation(string(simulationdomain.TypeRegionChange))
	return simulationdomain.NewResult(
		simulationdomain.TypeRegionChange,
		description,
		simulationdomain.Parameters{FromRegion: from, ToRegion: to},
		legOf(kwh, fromFactor, company.ElectricityCostPerKwh),
		legOf(kwh, toFactor, company.ElectricityCostPerKwh),
	), nil
}

func (s *Service) SimulateEfficiency(ctx context.Context, companyID snowflake.ID, efficiencyPercent decimal.Decimal) (*simulationdomain.Result, error) {
	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	baseline, err := s.baselineKwh(ctx, companyID)
	if err != nil {
		return nil, err
	}
	factor, err := s.carbon.EffectiveIntensity(ctx, companyID, company.Region)
	if err != nil {
		return nil, err
	}

	multiplier := decimalOne.Sub(efficiencyPercent.DivRound(hundred, 4))
	projected := baseline.Mul(multiplier).Round(2)

	s.engineMetrics.IncSimulation(string(simulationdomain.TypeEfficiency))
	return simulationdomain.NewResult(
		simulationdomain.TypeEfficiency,
		fmt.Sprintf("Efficiency Improvement Simulation (%s%% reduction)", efficiencyPercent.String()),
		simulationdomain.Parameters{EfficiencyPercent: &efficiencyPercent},
		legOf(baseline, factor, company.ElectricityCostPerKwh),
		legOf(projected, factor, company.ElectricityCostPerKwh),
	), nil
}

// baselineKwh sums AI kWh over the trailing window. No data falls back to the
// configured baseline.
func (s *Service) baselineKwh(ctx context.Context, companyID snowflake.ID) (decimal.Decimal, error) {
	today := clock.Today(s.clock)
	totals, err := s.energyRepo.SumByRange(ctx, s.db, companyID, today.AddDate(0, 0, -baselineWindowDays), today)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if totals.AiKwh.Valid {
		return totals.AiKwh.Decimal, nil
	}
	return decimal.NewFromFloat(s.engine.Get().SimulationBaselineKwh), nil
}

func legOf(kwh, factor, costPerKwh decimal.Decimal) simulationdomain.Values {
	return simulationdomain.Values{
		AiKwh:  kwh,
		Co2eKg: kwh.Mul(factor).DivRound(gramsPerKg, 2),
		Cost:   kwh.Mul(costPerKwh).Round(2),
	}
}

func compound(multiplier decimal.Decimal, months int) decimal.Decimal {
	out := decimalOne
	for i := 0; i < months; i++ {
		out = out.Mul(multiplier)
	}
	return out
}

func (s *Service) SaveScenario(ctx context.Context, req simulationdomain.SaveScenarioRequest) (*simulationdomain.ScenarioView, error) {
	simType, err := simulationdomain.ParseSimulationType(req.SimulationType)
	if err != nil {
		return nil, err
	}
	if _, err := s.company(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = string(simType) + " Simulation"
	}

	parameters, err := encodeDocument(simulationdomain.ParametersDocument{
		Version:    simulationdomain.DocumentVersion,
		Parameters: req.Parameters,
	})
	if err != nil {
		return nil, err
	}
	baseline, err := encodeDocument(simulationdomain.BaselineDocument{
		Version: simulationdomain.DocumentVersion,
		Values:  req.Baseline,
	})
	if err != nil {
		return nil, err
	}
	results, err := encodeDocument(simulationdomain.ResultsDocument{
		Version:   simulationdomain.DocumentVersion,
		Projected: req.Projected,
		Impact:    req.Impact,
	})
	if err != nil {
		return nil, err
	}

	scenario := &simulationdomain.Scenario{
		ID:             s.genID.Generate(),
		CompanyID:      req.CompanyID,
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		SimulationType: simType,
		Parameters:     parameters,
		BaselineValues: baseline,
		Results:        results,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, scenario); err != nil {
		return nil, err
	}

	s.log.Info("scenario saved",
		zap.String("company_id", req.CompanyID.String()),
		zap.String("scenario_id", scenario.ID.String()),
		zap.String("simulation_type", string(simType)),
	)
	return decodeScenario(*scenario)
}

func (s *Service) ListScenarios(ctx context.Context, companyID snowflake.ID) ([]simulationdomain.ScenarioView, error) {
	if _, err := s.company(ctx, companyID); err != nil {
		return nil, err
	}
	scenarios, err := s.repo.List(ctx, s.db, companyID)
	if err != nil {
		return nil, err
	}
	views := make([]simulationdomain.ScenarioView, 0, len(scenarios))
	for _, sc := range scenarios {
		view, err := decodeScenario(sc)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *Service) GetScenario(ctx context.Context, companyID, id snowflake.ID) (*simulationdomain.ScenarioView, error) {
	scenario, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return nil, err
	}
	if scenario == nil {
		return nil, simulationdomain.ErrScenarioNotFound
	}
	return decodeScenario(*scenario)
}

func (s *Service) DeleteScenario(ctx context.Context, companyID, id snowflake.ID) error {
	affected, err := s.repo.Delete(ctx, s.db, companyID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return simulationdomain.ErrScenarioNotFound
	}
	return nil
}

func encodeDocument(v any) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", simulationdomain.ErrScenarioSerialization, err)
	}
	return datatypes.JSON(raw), nil
}

func decodeScenario(sc simulationdomain.Scenario) (*simulationdomain.ScenarioView, error) {
	var (
		params   simulationdomain.ParametersDocument
		baseline simulationdomain.BaselineDocument
		results  simulationdomain.ResultsDocument
	)
	for _, doc := range []struct {
		raw datatypes.JSON
		dst any
	}{
		{sc.Parameters, &params},
		{sc.BaselineValues, &baseline},
		{sc.Results, &results},
	} {
		if err := json.Unmarshal(doc.raw, doc.dst); err != nil {
			return nil, fmt.Errorf("%w: scenario %s: %v", simulationdomain.ErrScenarioSerialization, sc.ID, err)
		}
	}

	return &simulationdomain.ScenarioView{
		ID:             sc.ID,
		CompanyID:      sc.CompanyID,
		Name:           sc.Name,
		Description:    sc.Description,
		SimulationType: sc.SimulationType,
		Parameters:     params.Parameters,
		Baseline:       baseline.Values,
		Projected:      results.Projected,
		Impact:         results.Impact,
		CreatedAt:      sc.CreatedAt,
	}, nil
}

func (s *Service) company(ctx context.Context, id snowflake.ID) (*companydomain.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, companydomain.ErrNotFound
	}
	return company, nil
}

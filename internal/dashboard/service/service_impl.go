package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
	analyticsdomain "github.com/smallbiznis/ecoai/internal/analytics/domain"
	attributiondomain "github.com/smallbiznis/ecoai/internal/attribution/domain"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	dashboarddomain "github.com/smallbiznis/ecoai/internal/dashboard/domain"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"github.com/smallbiznis/ecoai/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	windowDays     = 30
	trendMonths    = 6
	forecastMonths = 3
)

var (
	hundred = decimal.NewFromInt(100)
	// RegionBreakdown has no date filter; these bound every stored usage date.
	allTimeStart = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	allTimeEnd   = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	CompanyRepo companydomain.Repository
	EnergyRepo  energydomain.Repository
	Attribution attributiondomain.Service
	Analytics   analyticsdomain.Service
	Alerts      alertdomain.Service
	PDF         pdf.Provider
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	companyRepo companydomain.Repository
	energyRepo  energydomain.Repository
	attribution attributiondomain.Service
	analytics   analyticsdomain.Service
	alerts      alertdomain.Service
	pdf         pdf.Provider
}

func New(p Params) dashboarddomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("dashboard.service"),
		clock:       p.Clock,
		companyRepo: p.CompanyRepo,
		energyRepo:  p.EnergyRepo,
		attribution: p.Attribution,
		analytics:   p.Analytics,
		alerts:      p.Alerts,
		pdf:         p.PDF,
	}
}

func (s *Service) ExecutiveSummary(ctx context.Context, companyID snowflake.ID) (*dashboarddomain.Summary, error) {
	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clock)
	currentStart := today.AddDate(0, 0, -windowDays)
	previousStart := today.AddDate(0, 0, -2*windowDays)

	current, err := s.energyRepo.SumByRange(ctx, s.db, companyID, currentStart, today)
	if err != nil {
		return nil, err
	}
	previous, err := s.energyRepo.SumByRange(ctx, s.db, companyID, previousStart, currentStart.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	departments, err := s.companyRepo.ListDepartments(ctx, s.db, companyID)
	if err != nil {
		return nil, err
	}

	totalKwh := current.TotalKwh.Decimal
	aiKwh := current.AiKwh.Decimal
	co2e := current.Co2eKg.Decimal
	costPerKwh := company.ElectricityCostPerKwh

	aiPercentage := decimal.Zero
	if totalKwh.IsPositive() {
		aiPercentage = aiKwh.DivRound(totalKwh, 4).Mul(hundred).Round(1)
	}
	totalCost := totalKwh.Mul(costPerKwh).Round(2)

	var previousCost decimal.NullDecimal
	if previous.TotalKwh.Valid {
		previousCost = decimal.NewNullDecimal(previous.TotalKwh.Decimal.Mul(costPerKwh))
	}

	return &dashboarddomain.Summary{
		TotalEnergyKwh:      totalKwh,
		AiEnergyKwh:         aiKwh,
		AiPercentage:        aiPercentage,
		TotalCo2eKg:         co2e,
		AiCo2eKg:            co2e,
		TotalCost:           totalCost,
		AiCost:              aiKwh.Mul(costPerKwh).Round(2),
		Currency:            company.Currency,
		EnergyChangePercent: analyticsdomain.PercentChange(previous.TotalKwh, decimal.NewNullDecimal(totalKwh), 1),
		CarbonChangePercent: analyticsdomain.PercentChange(previous.Co2eKg, decimal.NewNullDecimal(co2e), 1),
		CostChangePercent:   analyticsdomain.PercentChange(previousCost, decimal.NewNullDecimal(totalCost), 1),
		PeriodType:          dashboarddomain.PeriodLast30Days,
		DepartmentCount:     len(departments),
		DataPointCount:      int(current.Count),
	}, nil
}

func (s *Service) DepartmentBreakdown(ctx context.Context, companyID snowflake.ID) ([]attributiondomain.DepartmentShare, error) {
	return s.attribution.DepartmentBreakdown(ctx, companyID)
}

func (s *Service) RegionBreakdown(ctx context.Context, companyID snowflake.ID) ([]energydomain.RegionTotals, error) {
	if _, err := s.company(ctx, companyID); err != nil {
		return nil, err
	}
	regions, err := s.energyRepo.SumByRegion(ctx, s.db, companyID, allTimeStart, allTimeEnd)
	if err != nil {
		return nil, err
	}
	if regions == nil {
		regions = []energydomain.RegionTotals{}
	}
	return regions, nil
}

func (s *Service) FullDashboard(ctx context.Context, companyID snowflake.ID) (*dashboarddomain.Dashboard, error) {
	var (
		out dashboarddomain.Dashboard
		err error
	)
	if out.Summary, err = s.ExecutiveSummary(ctx, companyID); err != nil {
		return nil, err
	}
	if out.DepartmentBreakdown, err = s.DepartmentBreakdown(ctx, companyID); err != nil {
		return nil, err
	}
	if out.Trends, err = s.analytics.HistoricalTrends(ctx, companyID, trendMonths); err != nil {
		return nil, err
	}
	if out.Forecasts, err = s.analytics.Forecast(ctx, companyID, forecastMonths); err != nil {
		return nil, err
	}
	if out.Alerts, err = s.alerts.CheckThresholds(ctx, companyID); err != nil {
		return nil, err
	}
	if out.Insights, err = s.alerts.OptimizationSuggestions(ctx, companyID); err != nil {
		return nil, err
	}
	if out.RegionBreakdown, err = s.RegionBreakdown(ctx, companyID); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Report(ctx context.Context, companyID snowflake.ID) ([]byte, error) {
	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	summary, err := s.ExecutiveSummary(ctx, companyID)
	if err != nil {
		return nil, err
	}
	departments, err := s.DepartmentBreakdown(ctx, companyID)
	if err != nil {
		return nil, err
	}
	trends, err := s.analytics.HistoricalTrends(ctx, companyID, trendMonths)
	if err != nil {
		return nil, err
	}

	data := pdf.ReportData{
		CompanyName: company.Name,
		Period:      summary.PeriodType,
		GeneratedAt: s.clock.Now().UTC().Format("2006-01-02 15:04 UTC"),
		Currency:    summary.Currency,
		KPIs: []pdf.KPI{
			{Label: "Total energy (kWh)", Value: summary.TotalEnergyKwh.StringFixed(2), Change: signed(summary.EnergyChangePercent)},
			{Label: "AI energy (kWh)", Value: summary.AiEnergyKwh.StringFixed(2)},
			{Label: "AI share of energy", Value: summary.AiPercentage.StringFixed(1) + "%"},
			{Label: "CO2e (kg)", Value: summary.TotalCo2eKg.StringFixed(2), Change: signed(summary.CarbonChangePercent)},
			{Label: "Total cost", Value: summary.TotalCost.StringFixed(2), Change: signed(summary.CostChangePercent)},
			{Label: "AI cost", Value: summary.AiCost.StringFixed(2)},
		},
	}
	for _, d := range departments {
		data.Departments = append(data.Departments, pdf.DepartmentRow{
			Name:  d.Name,
			Team:  d.Team,
			AiKwh: d.AiKwh.StringFixed(2),
			Share: d.SharePercent.StringFixed(1) + "%",
		})
	}
	for _, t := range trends {
		data.Trends = append(data.Trends, pdf.TrendRow{
			Period:   t.Period,
			TotalKwh: t.TotalEnergyKwh.StringFixed(2),
			AiKwh:    t.AiEnergyKwh.StringFixed(2),
			Co2eKg:   t.Co2eKg.StringFixed(2),
			Cost:     t.Cost.StringFixed(2),
		})
	}

	r, err := s.pdf.GenerateReport(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("render dashboard report: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("render dashboard report: empty document")
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s.log.Info("dashboard report rendered",
		zap.String("company_id", companyID.String()),
		zap.Int("bytes", len(body)),
	)
	return body, nil
}

func signed(percent decimal.Decimal) string {
	if percent.IsPositive() {
		return "+" + percent.StringFixed(1) + "%"
	}
	return percent.StringFixed(1) + "%"
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

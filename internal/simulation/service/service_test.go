package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	carbonrepo "github.com/smallbiznis/ecoai/internal/carbon/repository"
	carbonservice "github.com/smallbiznis/ecoai/internal/carbon/service"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	companyrepo "github.com/smallbiznis/ecoai/internal/company/repository"
	"github.com/smallbiznis/ecoai/internal/config"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	energyrepo "github.com/smallbiznis/ecoai/internal/energy/repository"
	simulationdomain "github.com/smallbiznis/ecoai/internal/simulation/domain"
	"github.com/smallbiznis/ecoai/internal/simulation/repository"
	"github.com/smallbiznis/ecoai/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	node    *snowflake.Node
	clock   *clock.FakeClock
	company *companydomain.Company
	carbon  carbondomain.Service
	svc     simulationdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	node := testutil.MustNode(t)
	clk := clock.NewFakeClock(testNow)

	company := &companydomain.Company{
		ID: node.Generate(), Name: "Acme", Slug: "acme", Region: "US", Currency: "USD",
		BaseAiPercentage:      decimal.RequireFromString("0.30"),
		ElectricityCostPerKwh: decimal.RequireFromString("0.12"),
		CreatedAt:             testNow, UpdatedAt: testNow,
	}
	require.NoError(t, companyrepo.Provide().Insert(context.Background(), db, company))

	carbon := carbonservice.New(carbonservice.Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clk,
		Repo:        carbonrepo.Provide(),
		CompanyRepo: companyrepo.Provide(),
		EnergyRepo:  energyrepo.Provide(),
	})
	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clk,
		Repo:        repository.Provide(),
		CompanyRepo: companyrepo.Provide(),
		EnergyRepo:  energyrepo.Provide(),
		Carbon:      carbon,
		Engine:      config.NewStaticEngineConfigHolder(config.DefaultEngineConfig()),
	})
	return &fixture{db: db, node: node, clock: clk, company: company, carbon: carbon, svc: svc}
}

func (f *fixture) usage(t *testing.T, date time.Time, total, ai string) {
	t.Helper()
	require.NoError(t, energyrepo.Provide().Insert(context.Background(), f.db, &energydomain.UsageRecord{
		ID: f.node.Generate(), CompanyID: f.company.ID,
		TotalKwh:        decimal.RequireFromString(total),
		AiAttributedKwh: decimal.NewNullDecimal(decimal.RequireFromString(ai)),
		Currency:        "USD", UsageDate: date, PeriodType: energydomain.PeriodDaily,
		Region: "US", DataSource: energydomain.SourceManual, CreatedAt: testNow,
	}))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestSimulateGrowthFromDefaultBaseline(t *testing.T) {
	f := newFixture(t)
	months := 2

	res, err := f.svc.SimulateGrowth(context.Background(), f.company.ID, decimal.NewFromInt(10), &months)
	require.NoError(t, err)

	assert.Equal(t, simulationdomain.TypeGrowth, res.SimulationType)
	assert.Equal(t, "GROWTH Simulation", res.Name)
	assert.Equal(t, "AI Growth Simulation (10% over 2 months)", res.Description)
	assertDecimal(t, "1000", res.Baseline.AiKwh)
	assertDecimal(t, "386", res.Baseline.Co2eKg)
	assertDecimal(t, "120", res.Baseline.Cost)
	assertDecimal(t, "1210.00", res.Projected.AiKwh)
	assertDecimal(t, "467.06", res.Projected.Co2eKg)
	assertDecimal(t, "145.20", res.Projected.Cost)
	assertDecimal(t, "210", res.Impact.EnergyDeltaKwh)
	assertDecimal(t, "81.06", res.Impact.CarbonDeltaKg)
	assertDecimal(t, "25.20", res.Impact.CostDelta)
	assertDecimal(t, "21", res.Impact.PercentChange)
	require.NotNil(t, res.Parameters.MonthsAhead)
	assert.Equal(t, 2, *res.Parameters.MonthsAhead)
}

func TestSimulateGrowthDefaultsToTwelveMonths(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.SimulateGrowth(context.Background(), f.company.ID, decimal.NewFromInt(5), nil)
	require.NoError(t, err)
	assertDecimal(t, "1795.86", res.Projected.AiKwh)
	assert.Equal(t, 12, *res.Parameters.MonthsAhead)

	negative := -1
	_, err = f.svc.SimulateGrowth(context.Background(), f.company.ID, decimal.NewFromInt(5), &negative)
	assert.ErrorIs(t, err, simulationdomain.ErrInvalidMonthsAhead)
}

func TestSimulateGrowthRejectsHorizonAboveLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tooFar := simulationdomain.MaxMonthsAhead + 1
	_, err := f.svc.SimulateGrowth(ctx, f.company.ID, decimal.NewFromInt(10), &tooFar)
	assert.ErrorIs(t, err, simulationdomain.ErrInvalidMonthsAhead)

	limit := simulationdomain.MaxMonthsAhead
	res, err := f.svc.SimulateGrowth(ctx, f.company.ID, decimal.NewFromInt(0), &limit)
	require.NoError(t, err)
	assertDecimal(t, "1000", res.Projected.AiKwh)
}

func TestSimulateEfficiencyUsesTrailingUsageAndOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.usage(t, time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC), "900", "270")
	f.usage(t, time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC), "100", "30")
	f.usage(t, time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), "5000", "1500")

	_, err := f.carbon.ConfigureIntensity(ctx, carbondomain.ConfigureRequest{
		CompanyID: f.company.ID, Region: "us", CarbonIntensity: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	res, err := f.svc.SimulateEfficiency(ctx, f.company.ID, decimal.NewFromInt(20))
	require.NoError(t, err)

	assertDecimal(t, "300", res.Baseline.AiKwh)
	assertDecimal(t, "150", res.Baseline.Co2eKg)
	assertDecimal(t, "36", res.Baseline.Cost)
	assertDecimal(t, "240", res.Projected.AiKwh)
	assertDecimal(t, "120", res.Projected.Co2eKg)
	assertDecimal(t, "28.80", res.Projected.Cost)
	assertDecimal(t, "-30", res.Impact.CarbonDeltaKg)
	assertDecimal(t, "-7.20", res.Impact.CostDelta)
	assertDecimal(t, "-20", res.Impact.PercentChange)
	assert.Equal(t, "Efficiency Improvement Simulation (20% reduction)", res.Description)
}

func TestSimulateRegionChangeOnlyMovesCarbon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// overrides do not apply to region change
	_, err := f.carbon.ConfigureIntensity(ctx, carbondomain.ConfigureRequest{
		CompanyID: f.company.ID, Region: "IN", CarbonIntensity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	res, err := f.svc.SimulateRegionChange(ctx, f.company.ID, "in", "no")
	require.NoError(t, err)

	assert.Equal(t, "Region Change: India → Norway (Carbon intensity: 708 → 26 gCO₂/kWh)", res.Description)
	assert.True(t, res.Baseline.AiKwh.Equal(res.Projected.AiKwh))
	assert.True(t, res.Baseline.Cost.Equal(res.Projected.Cost))
	assertDecimal(t, "708", res.Baseline.Co2eKg)
	assertDecimal(t, "26", res.Projected.Co2eKg)
	assertDecimal(t, "-682", res.Impact.CarbonDeltaKg)
	assertDecimal(t, "0", res.Impact.CostDelta)
	assertDecimal(t, "0", res.Impact.PercentChange)
	assert.Equal(t, "IN", res.Parameters.FromRegion)
	assert.Equal(t, "NO", res.Parameters.ToRegion)

	_, err = f.svc.SimulateRegionChange(ctx, f.company.ID, "", "NO")
	assert.ErrorIs(t, err, simulationdomain.ErrInvalidRegion)
}

func TestSimulateUnknownCompany(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SimulateEfficiency(context.Background(), f.node.Generate(), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, companydomain.ErrNotFound)
}

func TestNewResultZeroBaseline(t *testing.T) {
	res := simulationdomain.NewResult(simulationdomain.TypeCustom, "", simulationdomain.Parameters{},
		simulationdomain.Values{}, simulationdomain.Values{AiKwh: decimal.NewFromInt(5)})
	assert.True(t, res.Impact.PercentChange.IsZero())
	assertDecimal(t, "5", res.Impact.EnergyDeltaKwh)
}

func TestScenarioLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	months := 2

	res, err := f.svc.SimulateGrowth(ctx, f.company.ID, decimal.NewFromInt(10), &months)
	require.NoError(t, err)

	saved, err := f.svc.SaveScenario(ctx, simulationdomain.SaveScenarioRequest{
		CompanyID:      f.company.ID,
		Description:    res.Description,
		SimulationType: "growth",
		Parameters:     res.Parameters,
		Baseline:       res.Baseline,
		Projected:      res.Projected,
		Impact:         res.Impact,
	})
	require.NoError(t, err)
	assert.Equal(t, "GROWTH Simulation", saved.Name)

	f.clock.Advance(time.Minute)
	custom, err := f.svc.SaveScenario(ctx, simulationdomain.SaveScenarioRequest{
		CompanyID:      f.company.ID,
		Name:           "Board ask",
		SimulationType: "CUSTOM",
		Parameters:     simulationdomain.Parameters{Custom: map[string]any{"gpus": float64(64)}},
	})
	require.NoError(t, err)

	got, err := f.svc.GetScenario(ctx, f.company.ID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, simulationdomain.TypeGrowth, got.SimulationType)
	assert.Equal(t, res.Description, got.Description)
	assertDecimal(t, "1210", got.Projected.AiKwh)
	assertDecimal(t, "386", got.Baseline.Co2eKg)
	assertDecimal(t, "21", got.Impact.PercentChange)
	require.NotNil(t, got.Parameters.GrowthPercent)
	assertDecimal(t, "10", *got.Parameters.GrowthPercent)

	list, err := f.svc.ListScenarios(ctx, f.company.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, custom.ID, list[0].ID)
	assert.Equal(t, float64(64), list[0].Parameters.Custom["gpus"])

	require.NoError(t, f.svc.DeleteScenario(ctx, f.company.ID, saved.ID))
	_, err = f.svc.GetScenario(ctx, f.company.ID, saved.ID)
	assert.ErrorIs(t, err, simulationdomain.ErrScenarioNotFound)
	assert.ErrorIs(t, f.svc.DeleteScenario(ctx, f.company.ID, saved.ID), simulationdomain.ErrScenarioNotFound)
}

func TestSaveScenarioRejectsUnencodableParameters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SaveScenario(ctx, simulationdomain.SaveScenarioRequest{
		CompanyID:      f.company.ID,
		SimulationType: "CUSTOM",
		Parameters:     simulationdomain.Parameters{Custom: map[string]any{"bad": make(chan int)}},
	})
	assert.ErrorIs(t, err, simulationdomain.ErrScenarioSerialization)

	list, err := f.svc.ListScenarios(ctx, f.company.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.svc.SaveScenario(ctx, simulationdomain.SaveScenarioRequest{CompanyID: f.company.ID, SimulationType: "WHATEVER"})
	assert.ErrorIs(t, err, simulationdomain.ErrInvalidSimulationType)
}

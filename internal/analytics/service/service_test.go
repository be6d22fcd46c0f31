package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	analyticsdomain "github.com/smallbiznis/ecoai/internal/analytics/domain"
	"github.com/smallbiznis/ecoai/internal/analytics/export"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	carbonrepo "github.com/smallbiznis/ecoai/internal/carbon/repository"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	companyrepo "github.com/smallbiznis/ecoai/internal/company/repository"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	energyrepo "github.com/smallbiznis/ecoai/internal/energy/repository"
	"github.com/smallbiznis/ecoai/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db        *gorm.DB
	node      *snowflake.Node
	companyID snowflake.ID
	svc       analyticsdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	node := testutil.MustNode(t)

	company := &companydomain.Company{
		ID: node.Generate(), Name: "Acme", Slug: "acme", Region: "US", Currency: "USD",
		BaseAiPercentage:      decimal.RequireFromString("0.3"),
		ElectricityCostPerKwh: decimal.RequireFromString("0.12"),
		CreatedAt:             testNow, UpdatedAt: testNow,
	}
	require.NoError(t, companyrepo.Provide().Insert(context.Background(), db, company))

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Clock:       clock.NewFakeClock(testNow),
		CompanyRepo: companyrepo.Provide(),
		EnergyRepo:  energyrepo.Provide(),
	})
	return &fixture{db: db, node: node, companyID: company.ID, svc: svc}
}

func (f *fixture) add(t *testing.T, date time.Time, total, ai, cost, co2eKg string) {
	t.Helper()
	ctx := context.Background()
	rec := &energydomain.UsageRecord{
		ID: f.node.Generate(), CompanyID: f.companyID,
		TotalKwh:        decimal.RequireFromString(total),
		AiAttributedKwh: decimal.NewNullDecimal(decimal.RequireFromString(ai)),
		Cost:            decimal.NewNullDecimal(decimal.RequireFromString(cost)),
		Currency:        "USD", UsageDate: date, PeriodType: energydomain.PeriodDaily,
		Region: "US", DataSource: energydomain.SourceManual, CreatedAt: testNow,
	}
	require.NoError(t, energyrepo.Provide().Insert(ctx, f.db, rec))
	if co2eKg == "" {
		return
	}
	kg := decimal.RequireFromString(co2eKg)
	require.NoError(t, carbonrepo.Provide().InsertEmission(ctx, f.db, &carbondomain.Emission{
		ID: f.node.Generate(), EnergyUsageID: rec.ID, CompanyID: f.companyID,
		Co2eGrams: kg.Mul(decimal.NewFromInt(1000)), Co2eKg: kg,
		CarbonIntensityUsed: decimal.NewFromInt(386), RegionUsed: "US", CalculatedAt: testNow,
	}))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHistoricalTrendsZeroFillsAndOrders(t *testing.T) {
	f := newFixture(t)
	f.add(t, day(2026, 10, 2), "1000", "300", "120", "115.8")
	f.add(t, day(2026, 10, 9), "500", "150", "60", "")
	f.add(t, day(2026, 8, 20), "200", "60", "24", "23.16")
	f.add(t, day(2026, 3, 1), "999", "999", "999", "999")

	trends, err := f.svc.HistoricalTrends(context.Background(), f.companyID, 3)
	require.NoError(t, err)
	require.Len(t, trends, 3)

	assert.Equal(t, "Aug 2026", trends[0].Period)
	assert.Equal(t, day(2026, 8, 1), trends[0].Date)
	assert.True(t, trends[0].AiEnergyKwh.Equal(decimal.NewFromInt(60)))

	assert.Equal(t, "Sep 2026", trends[1].Period)
	assert.True(t, trends[1].TotalEnergyKwh.IsZero())
	assert.True(t, trends[1].Co2eKg.IsZero())

	assert.Equal(t, "Oct 2026", trends[2].Period)
	assert.True(t, trends[2].TotalEnergyKwh.Equal(decimal.NewFromInt(1500)))
	assert.True(t, trends[2].AiEnergyKwh.Equal(decimal.NewFromInt(450)))
	assert.True(t, trends[2].Cost.Equal(decimal.NewFromInt(180)))
	assert.True(t, trends[2].Co2eKg.Equal(decimal.RequireFromString("115.8")))
}

func TestHistoricalTrendsRejectsNonPositiveMonths(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.HistoricalTrends(context.Background(), f.companyID, 0)
	assert.ErrorIs(t, err, analyticsdomain.ErrInvalidMonths)
}

func TestHistoricalTrendsUnknownCompany(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.HistoricalTrends(context.Background(), 1, 6)
	assert.ErrorIs(t, err, companydomain.ErrNotFound)
}

func TestForecastAppliesHalfOverHalfGrowth(t *testing.T) {
	f := newFixture(t)
	for _, m := range []time.Month{time.May, time.June, time.July} {
		f.add(t, day(2026, m, 10), "1000", "100", "10", "")
	}
	for _, m := range []time.Month{time.August, time.September, time.October} {
		f.add(t, day(2026, m, 10), "1000", "200", "10", "")
	}

	forecast, err := f.svc.Forecast(context.Background(), f.companyID, 2)
	require.NoError(t, err)
	require.Len(t, forecast, 2)

	first := forecast[0]
	assert.Equal(t, day(2026, 11, 1), first.Date)
	assert.Equal(t, "Nov 2026", first.Period)
	assert.True(t, first.IsProjection)
	assert.Equal(t, "300", first.PredictedAiKwh.String())
	assert.Equal(t, "20", first.PredictedCost.String())
	assert.Equal(t, "255", first.ConfidenceLow.String())
	assert.Equal(t, "345", first.ConfidenceHigh.String())

	assert.Equal(t, day(2026, 12, 1), forecast[1].Date)
	assert.Equal(t, "600", forecast[1].PredictedAiKwh.String())
}

func TestForecastWithoutHistoryIsEmpty(t *testing.T) {
	f := newFixture(t)
	forecast, err := f.svc.Forecast(context.Background(), f.companyID, 3)
	require.NoError(t, err)
	assert.NotNil(t, forecast)
	assert.Empty(t, forecast)
}

func TestForecastFlatHistoryUsesDefaultGrowth(t *testing.T) {
	f := newFixture(t)
	f.add(t, day(2026, 10, 2), "1000", "0", "0", "")

	forecast, err := f.svc.Forecast(context.Background(), f.companyID, 3)
	require.NoError(t, err)
	require.Len(t, forecast, 3)
	for _, p := range forecast {
		assert.True(t, p.PredictedAiKwh.IsZero())
	}
	assert.Equal(t, day(2027, 1, 1), forecast[2].Date)
}

func TestMonthsAboveLimitAreRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.HistoricalTrends(ctx, f.companyID, analyticsdomain.MaxMonths+1)
	assert.ErrorIs(t, err, analyticsdomain.ErrInvalidMonths)
	_, err = f.svc.Forecast(ctx, f.companyID, analyticsdomain.MaxMonths+1)
	assert.ErrorIs(t, err, analyticsdomain.ErrInvalidMonths)

	trends, err := f.svc.HistoricalTrends(ctx, f.companyID, analyticsdomain.MaxMonths)
	require.NoError(t, err)
	assert.Len(t, trends, analyticsdomain.MaxMonths)
}

func TestGrowthRateDefaultsWhenFirstHalfIsZero(t *testing.T) {
	history := []analyticsdomain.TrendPoint{
		{AiEnergyKwh: decimal.Zero},
		{AiEnergyKwh: decimal.NewFromInt(100)},
	}
	assert.Equal(t, "0.05", growthRate(history).String())
}

func TestYearOverYear(t *testing.T) {
	f := newFixture(t)
	f.add(t, day(2026, 2, 1), "500", "150", "60", "")
	f.add(t, day(2025, 2, 1), "500", "100", "60", "")
	f.add(t, day(2025, 11, 1), "9000", "9000", "0", "")

	yoy, err := f.svc.YearOverYear(context.Background(), f.companyID)
	require.NoError(t, err)
	assert.Equal(t, "2026 vs 2025", yoy.Period)
	assert.True(t, yoy.LastYearAiKwh.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "50", yoy.AiKwhChangePercent.String())
	assert.True(t, yoy.TotalKwhChangePercent.IsZero())
}

func TestYearOverYearEdgeCases(t *testing.T) {
	f := newFixture(t)
	f.add(t, day(2026, 1, 5), "10", "5", "1", "")

	yoy, err := f.svc.YearOverYear(context.Background(), f.companyID)
	require.NoError(t, err)
	assert.Equal(t, "100", yoy.AiKwhChangePercent.String())
	assert.True(t, yoy.LastYearAiKwh.IsZero())

	g := newFixture(t)
	g.add(t, day(2025, 1, 5), "10", "5", "1", "")
	yoy, err = g.svc.YearOverYear(context.Background(), g.companyID)
	require.NoError(t, err)
	assert.Equal(t, "-100", yoy.AiKwhChangePercent.String())
}

func TestPercentChange(t *testing.T) {
	null := decimal.NullDecimal{}
	v := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.RequireFromString(s)) }

	assert.Equal(t, "100", analyticsdomain.PercentChange(null, v("5"), 2).String())
	assert.Equal(t, "0", analyticsdomain.PercentChange(v("0"), v("0"), 2).String())
	assert.Equal(t, "-100", analyticsdomain.PercentChange(v("5"), null, 2).String())
	assert.Equal(t, "33.33", analyticsdomain.PercentChange(v("3"), v("4"), 2).String())
	assert.Equal(t, "33.3", analyticsdomain.PercentChange(v("3"), v("4"), 1).String())
}

func TestExportWorkbook(t *testing.T) {
	f := newFixture(t)
	f.add(t, day(2026, 10, 2), "1000", "300", "120", "")

	data, err := f.svc.ExportWorkbook(context.Background(), f.companyID, 2, 1)
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{export.TrendsSheet, export.ForecastSheet}, book.GetSheetList())
	month, err := book.GetCellValue(export.TrendsSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Oct 2026", month)
	ai, err := book.GetCellValue(export.TrendsSheet, "D3")
	require.NoError(t, err)
	assert.Equal(t, "300", ai)

	rows, err := book.GetRows(export.ForecastSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/snowflake"
	"github.com/golang/mock/gomock"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	"github.com/smallbiznis/ecoai/internal/carbon/repository"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	companyrepo "github.com/smallbiznis/ecoai/internal/company/repository"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	energyrepo "github.com/smallbiznis/ecoai/internal/energy/repository"
	"github.com/smallbiznis/ecoai/internal/lock"
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
	svc     carbondomain.Service
	company *companydomain.Company
}

func newFixture(t *testing.T, locker *lock.Locker) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	node := testutil.MustNode(t)

	company := &companydomain.Company{
		ID:                    node.Generate(),
		Name:                  "Acme",
		Slug:                  "acme",
		Region:                "IN",
		BaseAiPercentage:      decimal.RequireFromString("0.30"),
		ElectricityCostPerKwh: decimal.RequireFromString("0.12"),
		Currency:              "USD",
		CreatedAt:             testNow,
		UpdatedAt:             testNow,
	}
	require.NoError(t, companyrepo.Provide().Insert(context.Background(), db, company))

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clock.NewFakeClock(testNow),
		Repo:        repository.Provide(),
		CompanyRepo: companyrepo.Provide(),
		EnergyRepo:  energyrepo.Provide(),
		Locker:      locker,
	})
	return &fixture{db: db, node: node, svc: svc, company: company}
}

func (f *fixture) insertRecord(t *testing.T, aiKwh string, region string) *energydomain.UsageRecord {
	t.Helper()
	rec := &energydomain.UsageRecord{
		ID:         f.node.Generate(),
		CompanyID:  f.company.ID,
		TotalKwh:   decimal.RequireFromString("1000"),
		Currency:   "USD",
		UsageDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		PeriodType: energydomain.PeriodDaily,
		Region:     region,
		DataSource: energydomain.SourceManual,
		CreatedAt:  testNow,
	}
	if aiKwh != "" {
		rec.AiAttributedKwh = decimal.NewNullDecimal(decimal.RequireFromString(aiKwh))
	}
	require.NoError(t, energyrepo.Provide().Insert(context.Background(), f.db, rec))
	return rec
}

func TestEffectiveIntensityResolutionOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := carbondomain.NewMockRepository(ctrl)
	companyID := snowflake.ID(7)

	repo.EXPECT().FindConfig(gomock.Any(), gomock.Any(), companyID, "DE").
		Return(&carbondomain.Config{CarbonIntensity: decimal.NewFromInt(120)}, nil)
	repo.EXPECT().FindConfig(gomock.Any(), gomock.Any(), companyID, "IN").Return(nil, nil)
	repo.EXPECT().FindConfig(gomock.Any(), gomock.Any(), companyID, "MARS").Return(nil, nil)

	svc := New(Params{Log: zap.NewNop(), Clock: clock.NewFakeClock(testNow), Repo: repo})
	ctx := context.Background()

	override, err := svc.EffectiveIntensity(ctx, companyID, "de")
	require.NoError(t, err)
	assert.Equal(t, "120", override.String())

	table, err := svc.EffectiveIntensity(ctx, companyID, " in ")
	require.NoError(t, err)
	assert.Equal(t, "708", table.String())

	fallback, err := svc.EffectiveIntensity(ctx, companyID, "mars")
	require.NoError(t, err)
	assert.Equal(t, "400", fallback.String())
}

func TestConfigureIntensityRejectsBadInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := New(Params{Log: zap.NewNop(), Clock: clock.NewFakeClock(testNow), Repo: carbondomain.NewMockRepository(ctrl)})
	ctx := context.Background()

	_, err := svc.ConfigureIntensity(ctx, carbondomain.ConfigureRequest{Region: " ", CarbonIntensity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, carbondomain.ErrInvalidRegion)

	_, err = svc.ConfigureIntensity(ctx, carbondomain.ConfigureRequest{Region: "US", CarbonIntensity: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, carbondomain.ErrInvalidIntensity)
}

func TestCalculateAndSaveEmission(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	rec := f.insertRecord(t, "100", "in")

	emission, err := f.svc.CalculateAndSaveEmission(ctx, f.db, rec, f.company.Region)
	require.NoError(t, err)
	require.NotNil(t, emission)

	assert.Equal(t, "70800", emission.Co2eGrams.String())
	assert.Equal(t, "70.8", emission.Co2eKg.String())
	assert.True(t, emission.Co2eKg.Equal(emission.Co2eGrams.DivRound(decimal.NewFromInt(1000), 4)))
	assert.Equal(t, "IN", emission.RegionUsed)
}

func TestCalculateSkipsUnattributedRecord(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.insertRecord(t, "", "US")

	emission, err := f.svc.CalculateAndSaveEmission(context.Background(), f.db, rec, "US")
	require.NoError(t, err)
	assert.Nil(t, emission)
}

func TestCalculateFallsBackToCompanyRegion(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.insertRecord(t, "10", "")

	emission, err := f.svc.CalculateAndSaveEmission(context.Background(), f.db, rec, "fr")
	require.NoError(t, err)
	assert.Equal(t, "FR", emission.RegionUsed)
	assert.Equal(t, "560", emission.Co2eGrams.String())
}

func TestRecalculateIsIdempotentAndUsesOverrides(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	first := f.insertRecord(t, "100", "IN")
	f.insertRecord(t, "50", "IN")
	f.insertRecord(t, "", "IN")

	count, err := f.svc.RecalculateEmissions(ctx, f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = f.svc.ConfigureIntensity(ctx, carbondomain.ConfigureRequest{
		CompanyID:       f.company.ID,
		Region:          "in",
		CarbonIntensity: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		count, err = f.svc.RecalculateEmissions(ctx, f.company.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	}

	var rows int64
	require.NoError(t, f.db.Raw(`SELECT COUNT(*) FROM carbon_emissions`).Scan(&rows).Error)
	assert.EqualValues(t, 2, rows)

	emission, err := repository.Provide().FindEmissionByUsageID(ctx, f.db, first.ID)
	require.NoError(t, err)
	assert.True(t, emission.Co2eKg.Equal(decimal.NewFromInt(50)))
	assert.True(t, emission.CarbonIntensityUsed.Equal(decimal.NewFromInt(500)))
}

func TestRecalculateReportsHeldLock(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := newFixture(t, lock.NewLocker(client))
	require.NoError(t, srv.Set("ecoai:carbon:recalculate:"+f.company.ID.String(), "other"))

	_, err := f.svc.RecalculateEmissions(context.Background(), f.company.ID)
	assert.ErrorIs(t, err, carbondomain.ErrRecalculationInProgress)
}

func TestConfigureIntensityUpsertsPerRegion(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	first, err := f.svc.ConfigureIntensity(ctx, carbondomain.ConfigureRequest{CompanyID: f.company.ID, Region: "us", CarbonIntensity: decimal.NewFromInt(300)})
	require.NoError(t, err)
	second, err := f.svc.ConfigureIntensity(ctx, carbondomain.ConfigureRequest{CompanyID: f.company.ID, Region: "US", CarbonIntensity: decimal.NewFromInt(250)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	configs, err := f.svc.ListConfigs(ctx, f.company.ID)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.True(t, configs[0].CarbonIntensity.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, carbondomain.DefaultValidYear, configs[0].ValidYear)

	require.NoError(t, f.svc.DeleteConfig(ctx, f.company.ID, "us"))
	assert.ErrorIs(t, f.svc.DeleteConfig(ctx, f.company.ID, "us"), carbondomain.ErrConfigNotFound)
}

func TestListDefaults(t *testing.T) {
	svc := New(Params{Log: zap.NewNop(), Clock: clock.NewFakeClock(testNow)})
	defaults := svc.ListDefaults()
	require.Len(t, defaults, 20)
	assert.Equal(t, "IN", defaults[0].Region)
	assert.True(t, defaults[0].IsDefault)
	assert.Equal(t, 2024, defaults[0].ValidYear)
	assert.Equal(t, "gCO2/kWh", defaults[0].Unit)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	analyticsdomain "github.com/smallbiznis/ecoai/internal/analytics/domain"
	"github.com/smallbiznis/ecoai/internal/analytics/export"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	"github.com/smallbiznis/ecoai/internal/config"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	monthKeyLayout  = "2006-01"
	forecastHistory = 6
)

var defaultGrowthRate = decimal.RequireFromString("0.05")

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	CompanyRepo companydomain.Repository
	EnergyRepo  energydomain.Repository
	Engine      *config.EngineConfigHolder `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	companyRepo companydomain.Repository
	energyRepo  energydomain.Repository
	engine      *config.EngineConfigHolder
}

func New(p Params) analyticsdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("analytics.service"),
		clock:       p.Clock,
		companyRepo: p.CompanyRepo,
		energyRepo:  p.EnergyRepo,
		engine:      p.Engine,
	}
}

func (s *Service) HistoricalTrends(ctx context.Context, companyID snowflake.ID, months int) ([]analyticsdomain.TrendPoint, error) {
	if months <= 0 || months > analyticsdomain.MaxMonths {
		return nil, analyticsdomain.ErrInvalidMonths
	}
	trends, _, err := s.monthlyTrends(ctx, companyID, months)
	return trends, err
}

// monthlyTrends buckets the last months of records and reports how many records it saw.
func (s *Service) monthlyTrends(ctx context.Context, companyID snowflake.ID, months int) ([]analyticsdomain.TrendPoint, int, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, 0, err
	}

	today := clock.Today(s.clock)
	records, err := s.energyRepo.ListWithEmissions(ctx, s.db, companyID, clock.AddMonths(today, -months), today)
	if err != nil {
		return nil, 0, err
	}

	buckets := make(map[string]*analyticsdomain.TrendPoint, months)
	for _, r := range records {
		key := r.UsageDate.UTC().Format(monthKeyLayout)
		point, ok := buckets[key]
		if !ok {
			point = &analyticsdomain.TrendPoint{}
			buckets[key] = point
		}
		point.TotalEnergyKwh = point.TotalEnergyKwh.Add(r.TotalKwh)
		point.AiEnergyKwh = point.AiEnergyKwh.Add(r.AiAttributedKwh.Decimal)
		point.Cost = point.Cost.Add(r.Cost.Decimal)
		point.Co2eKg = point.Co2eKg.Add(r.Co2eKg.Decimal)
	}

	thisMonth := clock.StartOfMonth(today)
	trends := make([]analyticsdomain.TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		month := clock.AddMonths(thisMonth, -i)
		point := analyticsdomain.TrendPoint{}
		if b, ok := buckets[month.Format(monthKeyLayout)]; ok {
			point = *b
		}
		point.Date = month
		point.Period = month.Format(analyticsdomain.PeriodLayout)
		trends = append(trends, point)
	}
	return trends, len(records), nil
}

func (s *Service) Forecast(ctx context.Context, companyID snowflake.ID, monthsAhead int) ([]analyticsdomain.ForecastPoint, error) {
	if monthsAhead < 0 || monthsAhead > analyticsdomain.MaxMonths {
		return nil, analyticsdomain.ErrInvalidMonths
	}
	history, seen, err := s.monthlyTrends(ctx, companyID, forecastHistory)
	if err != nil {
		return nil, err
	}
	forecast := []analyticsdomain.ForecastPoint{}
	if seen == 0 {
		return forecast, nil
	}

	n := len(history)
	var aiSum, co2eSum, costSum decimal.Decimal
	for _, p := range history {
		aiSum = aiSum.Add(p.AiEnergyKwh)
		co2eSum = co2eSum.Add(p.Co2eKg)
		costSum = costSum.Add(p.Cost)
	}
	count := decimal.NewFromInt(int64(n))
	kwh := aiSum.DivRound(count, 2)
	co2e := co2eSum.DivRound(count, 2)
	cost := costSum.DivRound(count, 2)

	growth := growthRate(history)
	factor := decimal.NewFromInt(1).Add(growth)

	engine := s.engine.Get()
	low := decimal.NewFromFloat(engine.ForecastBandLow)
	high := decimal.NewFromFloat(engine.ForecastBandHigh)

	start := clock.AddMonths(clock.StartOfMonth(clock.Today(s.clock)), 1)
	for i := 0; i < monthsAhead; i++ {
		date := clock.AddMonths(start, i)
		kwh = kwh.Mul(factor).Round(2)
		co2e = co2e.Mul(factor).Round(2)
		cost = cost.Mul(factor).Round(2)
		forecast = append(forecast, analyticsdomain.ForecastPoint{
			Date:            date,
			Period:          date.Format(analyticsdomain.PeriodLayout),
			PredictedAiKwh:  kwh,
			PredictedCo2eKg: co2e,
			PredictedCost:   cost,
			ConfidenceLow:   kwh.Mul(low).Round(2),
			ConfidenceHigh:  kwh.Mul(high).Round(2),
			IsProjection:    true,
		})
	}
	return forecast, nil
}

// growthRate compares the average AI kWh of the later half of history with the earlier half.
func growthRate(history []analyticsdomain.TrendPoint) decimal.Decimal {
	n := len(history)
	mid := n / 2

	var first, second decimal.Decimal
	for i, p := range history {
		if i < mid {
			first = first.Add(p.AiEnergyKwh)
		} else {
			second = second.Add(p.AiEnergyKwh)
		}
	}
	firstAvg := first.DivRound(decimal.NewFromInt(int64(max(mid, 1))), 4)
	secondAvg := second.DivRound(decimal.NewFromInt(int64(n-mid)), 4)

	if !firstAvg.IsPositive() {
		return defaultGrowthRate
	}
	return secondAvg.Sub(firstAvg).DivRound(firstAvg, 4)
}

func (s *Service) YearOverYear(ctx context.Context, companyID snowflake.ID) (*analyticsdomain.YearOverYear, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}

	today := clock.Today(s.clock)
	thisYearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	lastYearStart := clock.AddYears(thisYearStart, -1)

	current, err := s.energyRepo.SumByRange(ctx, s.db, companyID, thisYearStart, today)
	if err != nil {
		return nil, err
	}
	previous, err := s.energyRepo.SumByRange(ctx, s.db, companyID, lastYearStart, clock.AddYears(today, -1))
	if err != nil {
		return nil, err
	}

	return &analyticsdomain.YearOverYear{
		ThisYearAiKwh:         current.AiKwh.Decimal,
		ThisYearTotalKwh:      current.TotalKwh.Decimal,
		LastYearAiKwh:         previous.AiKwh.Decimal,
		LastYearTotalKwh:      previous.TotalKwh.Decimal,
		AiKwhChangePercent:    analyticsdomain.PercentChange(previous.AiKwh, current.AiKwh, 2),
		TotalKwhChangePercent: analyticsdomain.PercentChange(previous.TotalKwh, current.TotalKwh, 2),
		Period:                fmt.Sprintf("%d vs %d", thisYearStart.Year(), lastYearStart.Year()),
	}, nil
}

func (s *Service) ExportWorkbook(ctx context.Context, companyID snowflake.ID, months, monthsAhead int) ([]byte, error) {
	trends, err := s.HistoricalTrends(ctx, companyID, months)
	if err != nil {
		return nil, err
	}
	forecast, err := s.Forecast(ctx, companyID, monthsAhead)
	if err != nil {
		return nil, err
	}
	data, err := export.Workbook(trends, forecast)
	if err != nil {
		return nil, fmt.Errorf("export analytics workbook: %w", err)
	}
	s.log.Debug("analytics workbook exported",
		zap.String("company_id", companyID.String()),
		zap.Int("bytes", len(data)),
	)
	return data, nil
}

func (s *Service) ensureCompany(ctx context.Context, companyID snowflake.ID) error {
	company, err := s.companyRepo.FindByID(ctx, s.db, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return companydomain.ErrNotFound
	}
	return nil
}

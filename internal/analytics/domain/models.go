package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

const PeriodLayout = "Jan 2006"

// MaxMonths bounds both the trend window and the forecast horizon.
const MaxMonths = 120

type TrendPoint struct {
	Date           time.Time       `json:"date"`
	Period         string          `json:"period"`
	TotalEnergyKwh decimal.Decimal `json:"total_energy_kwh"`
	AiEnergyKwh    decimal.Decimal `json:"ai_energy_kwh"`
	Co2eKg         decimal.Decimal `json:"co2e_kg"`
	Cost           decimal.Decimal `json:"cost"`
}

type ForecastPoint struct {
	Date            time.Time       `json:"date"`
	Period          string          `json:"period"`
	PredictedAiKwh  decimal.Decimal `json:"predicted_ai_kwh"`
	PredictedCo2eKg decimal.Decimal `json:"predicted_co2e_kg"`
	PredictedCost   decimal.Decimal `json:"predicted_cost"`
	ConfidenceLow   decimal.Decimal `json:"confidence_low"`
	ConfidenceHigh  decimal.Decimal `json:"confidence_high"`
	IsProjection    bool            `json:"is_projection"`
}

type YearOverYear struct {
	ThisYearAiKwh         decimal.Decimal `json:"this_year_ai_kwh"`
	ThisYearTotalKwh      decimal.Decimal `json:"this_year_total_kwh"`
	LastYearAiKwh         decimal.Decimal `json:"last_year_ai_kwh"`
	LastYearTotalKwh      decimal.Decimal `json:"last_year_total_kwh"`
	AiKwhChangePercent    decimal.Decimal `json:"ai_kwh_change_percent"`
	TotalKwhChangePercent decimal.Decimal `json:"total_kwh_change_percent"`
	Period                string          `json:"period"`
}

type Service interface {
	// HistoricalTrends returns exactly months monthly buckets, oldest first, zero-filled.
	HistoricalTrends(ctx context.Context, companyID snowflake.ID, months int) ([]TrendPoint, error)
	// Forecast projects monthsAhead months from the last six months of trends. It is
	// empty when those months hold no records.
	Forecast(ctx context.Context, companyID snowflake.ID, monthsAhead int) ([]ForecastPoint, error)
	YearOverYear(ctx context.Context, companyID snowflake.ID) (*YearOverYear, error)
	// ExportWorkbook renders trends and forecast as an XLSX file.
	ExportWorkbook(ctx context.Context, companyID snowflake.ID, months, monthsAhead int) ([]byte, error)
}

var (
	ErrInvalidMonths = errors.New("invalid_months")
)

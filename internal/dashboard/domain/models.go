package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
	analyticsdomain "github.com/smallbiznis/ecoai/internal/analytics/domain"
	attributiondomain "github.com/smallbiznis/ecoai/internal/attribution/domain"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
)

const PeriodLast30Days = "LAST_30_DAYS"

// Summary compares the last 30 days with the 30 days before them.
type Summary struct {
	TotalEnergyKwh      decimal.Decimal `json:"total_energy_kwh"`
	AiEnergyKwh         decimal.Decimal `json:"ai_energy_kwh"`
	AiPercentage        decimal.Decimal `json:"ai_percentage"`
	TotalCo2eKg         decimal.Decimal `json:"total_co2e_kg"`
	AiCo2eKg            decimal.Decimal `json:"ai_co2e_kg"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	AiCost              decimal.Decimal `json:"ai_cost"`
	Currency            string          `json:"currency"`
	EnergyChangePercent decimal.Decimal `json:"energy_change_percent"`
	CarbonChangePercent decimal.Decimal `json:"carbon_change_percent"`
	CostChangePercent   decimal.Decimal `json:"cost_change_percent"`
	PeriodType          string          `json:"period_type"`
	DepartmentCount     int             `json:"department_count"`
	DataPointCount      int             `json:"data_point_count"`
}

type Dashboard struct {
	Summary             *Summary                            `json:"summary"`
	DepartmentBreakdown []attributiondomain.DepartmentShare `json:"department_breakdown"`
	Trends              []analyticsdomain.TrendPoint        `json:"trends"`
	Forecasts           []analyticsdomain.ForecastPoint     `json:"forecasts"`
	Alerts              []alertdomain.Alert                 `json:"alerts"`
	Insights            []alertdomain.Insight               `json:"insights"`
	RegionBreakdown     []energydomain.RegionTotals         `json:"region_breakdown"`
}

type Service interface {
	ExecutiveSummary(ctx context.Context, companyID snowflake.ID) (*Summary, error)
	DepartmentBreakdown(ctx context.Context, companyID snowflake.ID) ([]attributiondomain.DepartmentShare, error)
	// RegionBreakdown sums all recorded kWh per region, largest first.
	RegionBreakdown(ctx context.Context, companyID snowflake.ID) ([]energydomain.RegionTotals, error)
	FullDashboard(ctx context.Context, companyID snowflake.ID) (*Dashboard, error)
	// Report renders the summary, departments and six-month trend as a PDF.
	Report(ctx context.Context, companyID snowflake.ID) ([]byte, error)
}

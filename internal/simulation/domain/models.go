package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type SimulationType string

const (
	TypeGrowth       SimulationType = "GROWTH"
	TypeRegionChange SimulationType = "REGION_CHANGE"
	TypeEfficiency   SimulationType = "EFFICIENCY"
	TypeCustom       SimulationType = "CUSTOM"
)

func ParseSimulationType(v string) (SimulationType, error) {
	switch t := SimulationType(strings.ToUpper(strings.TrimSpace(v))); t {
	case TypeGrowth, TypeRegionChange, TypeEfficiency, TypeCustom:
		return t, nil
	default:
		return "", ErrInvalidSimulationType
	}
}

// DocumentVersion is written into every stored scenario document.
const DocumentVersion = 1

// Parameters are the inputs of a run. Only the fields of its type are set.
type Parameters struct {
	GrowthPercent     *decimal.Decimal `json:"growth_percent,omitempty"`
	MonthsAhead       *int             `json:"months_ahead,omitempty"`
	FromRegion        string           `json:"from_region,omitempty"`
	ToRegion          string           `json:"to_region,omitempty"`
	EfficiencyPercent *decimal.Decimal `json:"efficiency_percent,omitempty"`
	Custom            map[string]any   `json:"custom,omitempty"`
}

// Values is one leg of a run.
type Values struct {
	AiKwh  decimal.Decimal `json:"ai_kwh"`
	Co2eKg decimal.Decimal `json:"co2e_kg"`
	Cost   decimal.Decimal `json:"cost"`
}

type Impact struct {
	EnergyDeltaKwh decimal.Decimal `json:"energy_delta_kwh"`
	CarbonDeltaKg  decimal.Decimal `json:"carbon_delta_kg"`
	CostDelta      decimal.Decimal `json:"cost_delta"`
	PercentChange  decimal.Decimal `json:"percent_change"`
}

// Result is a computed what-if run.
type Result struct {
	SimulationType SimulationType `json:"simulation_type"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Parameters     Parameters     `json:"parameters"`
	Baseline       Values         `json:"baseline"`
	Projected      Values         `json:"projected"`
	Impact         Impact         `json:"impact"`
}

// NewResult derives the impact of projected against baseline.
func NewResult(t SimulationType, description string, params Parameters, baseline, projected Values) *Result {
	energyDelta := projected.AiKwh.Sub(baseline.AiKwh)
	percent := decimal.Zero
	if baseline.AiKwh.IsPositive() {
		percent = energyDelta.DivRound(baseline.AiKwh, 4).Mul(decimal.NewFromInt(100))
	}
	return &Result{
		SimulationType: t,
		Name:           string(t) + " Simulation",
		Description:    description,
		Parameters:     params,
		Baseline:       baseline,
		Projected:      projected,
		Impact: Impact{
			EnergyDeltaKwh: energyDelta,
			CarbonDeltaKg:  projected.Co2eKg.Sub(baseline.Co2eKg),
			CostDelta:      projected.Cost.Sub(baseline.Cost),
			PercentChange:  percent,
		},
	}
}

// Scenario is a saved run. The JSON columns are snapshots and are never recomputed.
type Scenario struct {
	ID             snowflake.ID   `json:"id" gorm:"primaryKey"`
	CompanyID      snowflake.ID   `json:"company_id" gorm:"not null;index:ix_simulation_scenarios_company"`
	Name           string         `json:"name" gorm:"type:text;not null"`
	Description    string         `json:"description,omitempty" gorm:"type:text"`
	SimulationType SimulationType `json:"simulation_type" gorm:"type:text;not null"`
	Parameters     datatypes.JSON `json:"parameters" gorm:"not null"`
	BaselineValues datatypes.JSON `json:"baseline_values" gorm:"not null"`
	Results        datatypes.JSON `json:"results" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null"`
}

func (Scenario) TableName() string { return "simulation_scenarios" }

type ParametersDocument struct {
	Version int `json:"version"`
	Parameters
}

type BaselineDocument struct {
	Version int `json:"version"`
	Values
}

type ResultsDocument struct {
	Version   int    `json:"version"`
	Projected Values `json:"projected"`
	Impact
}

// ScenarioView is a saved scenario with its documents decoded.
type ScenarioView struct {
	ID             snowflake.ID   `json:"id"`
	CompanyID      snowflake.ID   `json:"company_id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	SimulationType SimulationType `json:"simulation_type"`
	Parameters     Parameters     `json:"parameters"`
	Baseline       Values         `json:"baseline"`
	Projected      Values         `json:"projected"`
	Impact         Impact         `json:"impact"`
	CreatedAt      time.Time      `json:"created_at"`
}

package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	// SimulateGrowth compounds the baseline monthly. monthsAhead nil means 12.
	SimulateGrowth(ctx context.Context, companyID snowflake.ID, growthPercent decimal.Decimal, monthsAhead *int) (*Result, error)
	// SimulateRegionChange keeps kWh and cost and swaps the default-table intensity.
	SimulateRegionChange(ctx context.Context, companyID snowflake.ID, fromRegion, toRegion string) (*Result, error)
	SimulateEfficiency(ctx context.Context, companyID snowflake.ID, efficiencyPercent decimal.Decimal) (*Result, error)

	SaveScenario(ctx context.Context, req SaveScenarioRequest) (*ScenarioView, error)
	ListScenarios(ctx context.Context, companyID snowflake.ID) ([]ScenarioView, error)
	GetScenario(ctx context.Context, companyID, id snowflake.ID) (*ScenarioView, error)
	DeleteScenario(ctx context.Context, companyID, id snowflake.ID) error
}

type SaveScenarioRequest struct {
	CompanyID      snowflake.ID `json:"-"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	SimulationType string       `json:"simulation_type"`
	Parameters     Parameters   `json:"parameters"`
	Baseline       Values       `json:"baseline"`
	Projected      Values       `json:"projected"`
	Impact         Impact       `json:"impact"`
}

// MaxMonthsAhead bounds the growth horizon.
const MaxMonthsAhead = 600

var (
	ErrInvalidSimulationType = errors.New("invalid_simulation_type")
	ErrInvalidMonthsAhead    = errors.New("invalid_months_ahead")
	ErrInvalidRegion         = errors.New("invalid_region")
	ErrScenarioNotFound      = errors.New("scenario_not_found")
	ErrScenarioSerialization = errors.New("scenario_serialization_failed")
)

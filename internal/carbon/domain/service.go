package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"gorm.io/gorm"
)

type Service interface {
	// EffectiveIntensity resolves the company override, then the built-in
	// table, then the fallback.
	EffectiveIntensity(ctx context.Context, companyID snowflake.ID, region string) (decimal.Decimal, error)
	// CalculateAndSaveEmission upserts the emission of record on tx. It returns
	// nil when the record has no AI attribution.
	CalculateAndSaveEmission(ctx context.Context, tx *gorm.DB, record *energydomain.UsageRecord, companyRegion string) (*Emission, error)
	// RecalculateEmissions recomputes every attributed record of the company
	// with the current intensities and returns how many were written.
	RecalculateEmissions(ctx context.Context, companyID snowflake.ID) (int, error)

	ConfigureIntensity(ctx context.Context, req ConfigureRequest) (*Config, error)
	ListConfigs(ctx context.Context, companyID snowflake.ID) ([]Config, error)
	DeleteConfig(ctx context.Context, companyID snowflake.ID, region string) error
	ListDefaults() []DefaultIntensity
	RegionName(code string) string
}

type ConfigureRequest struct {
	CompanyID       snowflake.ID    `json:"-"`
	Region          string          `json:"region"`
	CarbonIntensity decimal.Decimal `json:"carbon_intensity"`
	ValidYear       *int            `json:"valid_year,omitempty"`
}

var (
	ErrInvalidRegion           = errors.New("invalid_region")
	ErrInvalidIntensity        = errors.New("invalid_carbon_intensity")
	ErrInvalidValidYear        = errors.New("invalid_valid_year")
	ErrConfigNotFound          = errors.New("carbon_config_not_found")
	ErrRecalculationInProgress = errors.New("recalculation_in_progress")
)

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

const (
	DefaultUnit      = "gCO2/kWh"
	DefaultValidYear = 2024
)

// Config is a company override of the built-in intensity for one region.
type Config struct {
	ID              snowflake.ID    `json:"id" gorm:"primaryKey"`
	CompanyID       snowflake.ID    `json:"company_id" gorm:"not null;uniqueIndex:ux_carbon_configs_company_region,priority:1"`
	Region          string          `json:"region" gorm:"type:text;not null;uniqueIndex:ux_carbon_configs_company_region,priority:2"`
	CarbonIntensity decimal.Decimal `json:"carbon_intensity" gorm:"type:numeric(10,4);not null"`
	Unit            string          `json:"unit" gorm:"type:text;not null"`
	ValidYear       int             `json:"valid_year" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"not null"`
}

func (Config) TableName() string { return "carbon_configs" }

// Emission is the CO2e derived from one usage record's AI kWh.
type Emission struct {
	ID                  snowflake.ID    `json:"id" gorm:"primaryKey"`
	EnergyUsageID       snowflake.ID    `json:"energy_usage_id" gorm:"not null;uniqueIndex:ux_carbon_emissions_usage"`
	CompanyID           snowflake.ID    `json:"company_id" gorm:"not null;index:ix_carbon_emissions_company"`
	Co2eGrams           decimal.Decimal `json:"co2e_grams" gorm:"type:numeric(15,4);not null"`
	Co2eKg              decimal.Decimal `json:"co2e_kg" gorm:"type:numeric(15,4);not null"`
	CarbonIntensityUsed decimal.Decimal `json:"carbon_intensity_used" gorm:"type:numeric(10,4);not null"`
	RegionUsed          string          `json:"region_used" gorm:"type:text;not null"`
	CalculatedAt        time.Time       `json:"calculated_at" gorm:"not null"`
}

func (Emission) TableName() string { return "carbon_emissions" }

// DefaultIntensity is a built-in table row as exposed to clients.
type DefaultIntensity struct {
	Region          string          `json:"region"`
	Name            string          `json:"name"`
	CarbonIntensity decimal.Decimal `json:"carbon_intensity"`
	Unit            string          `json:"unit"`
	ValidYear       int             `json:"valid_year"`
	IsDefault       bool            `json:"is_default"`
}

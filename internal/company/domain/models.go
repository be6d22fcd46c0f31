package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

var (
	DefaultAiPercentage     = decimal.RequireFromString("0.30")
	DefaultCostPerKwh       = decimal.RequireFromString("0.12")
	DefaultDepartmentWeight = decimal.RequireFromString("0.50")
)

const (
	DefaultCurrency      = "USD"
	DefaultEmployeeCount = 10
)

// Company is the aggregate root owning departments, usage records, carbon
// overrides, thresholds and saved scenarios.
type Company struct {
	ID                    snowflake.ID    `json:"id" gorm:"primaryKey"`
	Name                  string          `json:"name" gorm:"type:text;not null"`
	Slug                  string          `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_companies_slug"`
	Industry              string          `json:"industry,omitempty" gorm:"type:text"`
	Country               string          `json:"country,omitempty" gorm:"type:text"`
	Region                string          `json:"region" gorm:"type:text;not null"`
	BaseAiPercentage      decimal.Decimal `json:"base_ai_percentage" gorm:"type:numeric(9,4);not null"`
	ElectricityCostPerKwh decimal.Decimal `json:"electricity_cost_per_kwh" gorm:"type:numeric(10,4);not null"`
	Currency              string          `json:"currency" gorm:"type:text;not null"`
	CreatedAt             time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt             time.Time       `json:"updated_at" gorm:"not null"`
}

func (Company) TableName() string { return "companies" }

type Department struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	CompanyID     snowflake.ID    `json:"company_id" gorm:"not null;index:ix_departments_company"`
	Name          string          `json:"name" gorm:"type:text;not null"`
	Team          string          `json:"team,omitempty" gorm:"type:text"`
	Product       string          `json:"product,omitempty" gorm:"type:text"`
	Description   string          `json:"description,omitempty" gorm:"type:text"`
	AiUsageWeight decimal.Decimal `json:"ai_usage_weight" gorm:"type:numeric(9,4);not null"`
	EmployeeCount int             `json:"employee_count" gorm:"not null"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null"`
}

func (Department) TableName() string { return "departments" }

package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Company, error)
	List(ctx context.Context) ([]Company, error)
	Get(ctx context.Context, id snowflake.ID) (*Company, error)
	Update(ctx context.Context, req UpdateRequest) (*Company, error)
	Delete(ctx context.Context, id snowflake.ID) error

	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*Department, error)
	ListDepartments(ctx context.Context, companyID snowflake.ID) ([]Department, error)
	GetDepartment(ctx context.Context, id snowflake.ID) (*Department, error)
	FindDepartmentByName(ctx context.Context, companyID snowflake.ID, name string) (*Department, error)
	UpdateDepartment(ctx context.Context, req UpdateDepartmentRequest) (*Department, error)
	DeleteDepartment(ctx context.Context, id snowflake.ID) error
}

type CreateRequest struct {
	Name                  string           `json:"name"`
	Industry              string           `json:"industry"`
	Country               string           `json:"country"`
	Region                string           `json:"region"`
	BaseAiPercentage      *decimal.Decimal `json:"base_ai_percentage"`
	ElectricityCostPerKwh *decimal.Decimal `json:"electricity_cost_per_kwh"`
	Currency              string           `json:"currency"`
}

type UpdateRequest struct {
	ID                    snowflake.ID     `json:"-"`
	Name                  *string          `json:"name,omitempty"`
	Industry              *string          `json:"industry,omitempty"`
	Country               *string          `json:"country,omitempty"`
	Region                *string          `json:"region,omitempty"`
	BaseAiPercentage      *decimal.Decimal `json:"base_ai_percentage,omitempty"`
	ElectricityCostPerKwh *decimal.Decimal `json:"electricity_cost_per_kwh,omitempty"`
	Currency              *string          `json:"currency,omitempty"`
}

type CreateDepartmentRequest struct {
	CompanyID     snowflake.ID     `json:"-"`
	Name          string           `json:"name"`
	Team          string           `json:"team"`
	Product       string           `json:"product"`
	Description   string           `json:"description"`
	AiUsageWeight *decimal.Decimal `json:"ai_usage_weight"`
	EmployeeCount *int             `json:"employee_count"`
}

type UpdateDepartmentRequest struct {
	ID            snowflake.ID     `json:"-"`
	Name          *string          `json:"name,omitempty"`
	Team          *string          `json:"team,omitempty"`
	Product       *string          `json:"product,omitempty"`
	Description   *string          `json:"description,omitempty"`
	AiUsageWeight *decimal.Decimal `json:"ai_usage_weight,omitempty"`
	EmployeeCount *int             `json:"employee_count,omitempty"`
}

var (
	ErrNotFound             = errors.New("company_not_found")
	ErrDepartmentNotFound   = errors.New("department_not_found")
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidRegion        = errors.New("invalid_region")
	ErrInvalidAiPercentage  = errors.New("invalid_base_ai_percentage")
	ErrInvalidCostPerKwh    = errors.New("invalid_electricity_cost_per_kwh")
	ErrInvalidCurrency      = errors.New("invalid_currency")
	ErrInvalidWeight        = errors.New("invalid_ai_usage_weight")
	ErrInvalidEmployeeCount = errors.New("invalid_employee_count")
	ErrDuplicateDepartment  = errors.New("duplicate_department")
	ErrConflict             = errors.New("company_conflict")
)

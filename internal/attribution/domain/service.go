package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	// DepartmentBreakdown lists every department of the company with its stored AI
	// kWh and share of the company total, largest first.
	DepartmentBreakdown(ctx context.Context, companyID snowflake.ID) ([]DepartmentShare, error)
}

type DepartmentShare struct {
	DepartmentID  snowflake.ID    `json:"department_id"`
	Name          string          `json:"name"`
	Team          string          `json:"team,omitempty"`
	AiUsageWeight decimal.Decimal `json:"ai_usage_weight"`
	AiKwh         decimal.Decimal `json:"ai_kwh"`
	SharePercent  decimal.Decimal `json:"share_percent"`
}

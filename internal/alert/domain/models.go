package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type MetricType string

const (
	MetricAiUsageKwh       MetricType = "AI_USAGE_KWH"
	MetricTotalEnergyKwh   MetricType = "TOTAL_ENERGY_KWH"
	MetricCarbonEmissionKg MetricType = "CARBON_EMISSION_KG"
	MetricMonthlyCost      MetricType = "MONTHLY_COST"
	MetricAiPercentage     MetricType = "AI_PERCENTAGE"
	MetricEnergyGrowthRate MetricType = "ENERGY_GROWTH_RATE"
)

func ParseMetricType(v string) (MetricType, error) {
	switch m := MetricType(strings.ToUpper(strings.TrimSpace(v))); m {
	case MetricAiUsageKwh, MetricTotalEnergyKwh, MetricCarbonEmissionKg,
		MetricMonthlyCost, MetricAiPercentage, MetricEnergyGrowthRate:
		return m, nil
	default:
		return "", ErrInvalidMetricType
	}
}

// Label is the title prefix used for alerts on this metric.
func (m MetricType) Label() string {
	switch m {
	case MetricAiUsageKwh:
		return "AI Energy Usage"
	case MetricTotalEnergyKwh:
		return "Total Energy"
	case MetricCarbonEmissionKg:
		return "Carbon Emission"
	case MetricMonthlyCost:
		return "Monthly Cost"
	default:
		return "Alert:"
	}
}

type Operator string

const (
	OperatorGreaterThan    Operator = "GREATER_THAN"
	OperatorGreaterOrEqual Operator = "GREATER_THAN_OR_EQUALS"
	OperatorLessThan       Operator = "LESS_THAN"
	OperatorLessOrEqual    Operator = "LESS_THAN_OR_EQUALS"
	OperatorEquals         Operator = "EQUALS"
)

// ParseOperator accepts the operator names or their symbols. Empty means GREATER_THAN.
func ParseOperator(v string) (Operator, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "", string(OperatorGreaterThan), ">":
		return OperatorGreaterThan, nil
	case string(OperatorGreaterOrEqual), ">=", "≥":
		return OperatorGreaterOrEqual, nil
	case string(OperatorLessThan), "<":
		return OperatorLessThan, nil
	case string(OperatorLessOrEqual), "<=", "≤":
		return OperatorLessOrEqual, nil
	case string(OperatorEquals), "=", "==":
		return OperatorEquals, nil
	default:
		return "", ErrInvalidOperator
	}
}

// Evaluate applies the operator to current against threshold.
func (o Operator) Evaluate(current, threshold decimal.Decimal) bool {
	c := current.Cmp(threshold)
	switch o {
	case OperatorGreaterThan:
		return c > 0
	case OperatorGreaterOrEqual:
		return c >= 0
	case OperatorLessThan:
		return c < 0
	case OperatorLessOrEqual:
		return c <= 0
	case OperatorEquals:
		return c == 0
	default:
		return false
	}
}

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

var (
	criticalPercent = decimal.NewFromInt(100)
	warningPercent  = decimal.NewFromInt(90)
)

// SeverityFor grades a percent-of-threshold value.
func SeverityFor(percent decimal.Decimal) Severity {
	switch {
	case percent.GreaterThanOrEqual(criticalPercent):
		return SeverityCritical
	case percent.GreaterThanOrEqual(warningPercent):
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Threshold is the single alert rule a company keeps per metric type.
type Threshold struct {
	ID             snowflake.ID    `json:"id" gorm:"primaryKey"`
	CompanyID      snowflake.ID    `json:"company_id" gorm:"not null;uniqueIndex:ux_alert_thresholds_company_metric,priority:1"`
	MetricType     MetricType      `json:"metric_type" gorm:"type:text;not null;uniqueIndex:ux_alert_thresholds_company_metric,priority:2"`
	Operator       Operator        `json:"operator" gorm:"type:text;not null"`
	ThresholdValue decimal.Decimal `json:"threshold_value" gorm:"type:numeric(15,4);not null"`
	Active         bool            `json:"active" gorm:"not null"`
	AlertMessage   string          `json:"alert_message,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"not null"`
}

func (Threshold) TableName() string { return "alert_thresholds" }

// Alert is a threshold evaluation surfaced to the caller. It is not persisted.
type Alert struct {
	ThresholdID        snowflake.ID    `json:"threshold_id"`
	CompanyID          snowflake.ID    `json:"company_id"`
	MetricType         MetricType      `json:"metric_type"`
	Title              string          `json:"alert_title"`
	Message            string          `json:"alert_message"`
	ThresholdValue     decimal.Decimal `json:"threshold_value"`
	CurrentValue       decimal.Decimal `json:"current_value"`
	PercentOfThreshold decimal.Decimal `json:"percent_of_threshold"`
	Triggered          bool            `json:"triggered"`
	Severity           Severity        `json:"severity"`
	TriggeredAt        time.Time       `json:"triggered_at"`
}

type InsightCategory string

const (
	CategoryRegion       InsightCategory = "REGION"
	CategoryBatching     InsightCategory = "BATCHING"
	CategoryEfficiency   InsightCategory = "EFFICIENCY"
	CategoryScheduling   InsightCategory = "SCHEDULING"
	CategoryCarbonBudget InsightCategory = "CARBON_BUDGET"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

type Insight struct {
	Category    InsightCategory `json:"category"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Impact      string          `json:"impact"`
	Priority    Priority        `json:"priority"`
	Actionable  string          `json:"actionable"`
}

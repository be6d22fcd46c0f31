package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	// ConfigureThreshold overwrites the company's threshold for the metric in place,
	// creating it on first use.
	ConfigureThreshold(ctx context.Context, req ConfigureThresholdRequest) (*Threshold, error)
	ListThresholds(ctx context.Context, companyID snowflake.ID) ([]Threshold, error)
	DeleteThreshold(ctx context.Context, companyID, id snowflake.ID) error

	// CheckThresholds evaluates active thresholds against month-to-date values,
	// most severe first.
	CheckThresholds(ctx context.Context, companyID snowflake.ID) ([]Alert, error)
	OptimizationSuggestions(ctx context.Context, companyID snowflake.ID) ([]Insight, error)
	// Dispatch checks thresholds and delivers every alert to the configured sinks.
	Dispatch(ctx context.Context, companyID snowflake.ID) (*DispatchResult, error)
}

type ConfigureThresholdRequest struct {
	CompanyID      snowflake.ID    `json:"-"`
	MetricType     string          `json:"metric_type"`
	Operator       string          `json:"operator,omitempty"`
	ThresholdValue decimal.Decimal `json:"threshold_value"`
	AlertMessage   string          `json:"alert_message,omitempty"`
	Active         *bool           `json:"active,omitempty"`
}

type DispatchResult struct {
	Alerts    int      `json:"alerts"`
	Sinks     []string `json:"sinks"`
	Delivered int      `json:"delivered"`
	Failed    int      `json:"failed"`
}

var (
	ErrNotFound              = errors.New("alert_threshold_not_found")
	ErrInvalidMetricType     = errors.New("invalid_metric_type")
	ErrInvalidOperator       = errors.New("invalid_operator")
	ErrInvalidThresholdValue = errors.New("invalid_threshold_value")
)

package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/ecoai/pkg/db/pagination"
)

type Service interface {
	// Record stores a manual reading, attributes its AI share and writes its emission
	// in one transaction.
	Record(ctx context.Context, req RecordRequest) (*RecordResponse, error)
	// ImportCSV ingests rows of date,totalKwh[,departmentName[,region]]. Bad rows are
	// skipped and reported, never fatal.
	ImportCSV(ctx context.Context, companyID snowflake.ID, r io.Reader) (*ImportResult, error)
	Get(ctx context.Context, companyID, id snowflake.ID) (*RecordResponse, error)
	ListByRange(ctx context.Context, companyID snowflake.ID, start, end time.Time) ([]UsageRecord, error)
	List(ctx context.Context, companyID snowflake.ID, page pagination.Pagination) (*ListResponse, error)
	ListByRegion(ctx context.Context, companyID snowflake.ID, region string) ([]UsageRecord, error)
	Delete(ctx context.Context, companyID, id snowflake.ID) error
}

type RecordRequest struct {
	CompanyID    snowflake.ID    `json:"-"`
	DepartmentID *snowflake.ID   `json:"department_id,omitempty"`
	TotalKwh     decimal.Decimal `json:"total_kwh"`
	UsageDate    time.Time       `json:"usage_date"`
	PeriodType   string          `json:"period_type,omitempty"`
	Region       string          `json:"region,omitempty"`
	Currency     string          `json:"currency,omitempty"`

	dataSource DataSource
}

// WithDataSource tags a request created by an importer or the seeder.
func (r RecordRequest) WithDataSource(src DataSource) RecordRequest {
	r.dataSource = src
	return r
}

func (r RecordRequest) DataSource() DataSource {
	if r.dataSource == "" {
		return SourceManual
	}
	return r.dataSource
}

type RecordResponse struct {
	UsageRecord
	Co2eKg      decimal.NullDecimal `json:"co2e_kg"`
	Explanation string              `json:"attribution_explanation"`
}

type ImportResult struct {
	BatchID  string        `json:"batch_id"`
	Imported []UsageRecord `json:"imported"`
	Skipped  []SkippedRow  `json:"skipped"`
}

type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ListResponse struct {
	Records  []UsageRecord       `json:"records"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

var (
	ErrNotFound          = errors.New("energy_record_not_found")
	ErrInvalidTotalKwh   = errors.New("invalid_total_kwh")
	ErrInvalidUsageDate  = errors.New("invalid_usage_date")
	ErrInvalidPeriodType = errors.New("invalid_period_type")
	ErrInvalidDateRange  = errors.New("invalid_date_range")
	ErrInvalidCSV        = errors.New("invalid_csv")
)

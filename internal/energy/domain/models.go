package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type PeriodType string

const (
	PeriodDaily   PeriodType = "DAILY"
	PeriodWeekly  PeriodType = "WEEKLY"
	PeriodMonthly PeriodType = "MONTHLY"
)

// ParsePeriodType defaults to DAILY for an empty value.
func ParsePeriodType(v string) (PeriodType, error) {
	switch p := PeriodType(strings.ToUpper(strings.TrimSpace(v))); p {
	case "":
		return PeriodDaily, nil
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	default:
		return "", ErrInvalidPeriodType
	}
}

type DataSource string

const (
	SourceManual     DataSource = "MANUAL"
	SourceCSVImport  DataSource = "CSV_IMPORT"
	SourceSampleData DataSource = "SAMPLE_DATA"
)

// UsageRecord is one metered electricity reading with its derived AI share and cost.
type UsageRecord struct {
	ID              snowflake.ID        `json:"id" gorm:"primaryKey"`
	CompanyID       snowflake.ID        `json:"company_id" gorm:"not null;index:ix_energy_company_date,priority:1"`
	DepartmentID    *snowflake.ID       `json:"department_id,omitempty" gorm:"index:ix_energy_department"`
	TotalKwh        decimal.Decimal     `json:"total_kwh" gorm:"type:numeric(15,4);not null"`
	AiAttributedKwh decimal.NullDecimal `json:"ai_attributed_kwh" gorm:"type:numeric(15,4)"`
	Cost            decimal.NullDecimal `json:"cost" gorm:"type:numeric(15,2)"`
	Currency        string              `json:"currency" gorm:"type:text;not null"`
	UsageDate       time.Time           `json:"usage_date" gorm:"type:date;not null;index:ix_energy_company_date,priority:2"`
	PeriodType      PeriodType          `json:"period_type" gorm:"type:text;not null"`
	Region          string              `json:"region" gorm:"type:text;not null"`
	DataSource      DataSource          `json:"data_source" gorm:"type:text;not null"`
	CreatedAt       time.Time           `json:"created_at" gorm:"not null"`
}

func (UsageRecord) TableName() string { return "energy_usage_records" }

// RecordWithEmission joins a record with the CO2e of its emission row, if any.
type RecordWithEmission struct {
	UsageRecord
	Co2eKg decimal.NullDecimal `json:"co2e_kg"`
}

// Totals are sums over a set of records. A field is invalid when no record
// carried a value for it, which callers distinguish from an actual zero.
type Totals struct {
	Count    int64               `json:"count"`
	TotalKwh decimal.NullDecimal `json:"total_kwh"`
	AiKwh    decimal.NullDecimal `json:"ai_kwh"`
	Cost     decimal.NullDecimal `json:"cost"`
	Co2eKg   decimal.NullDecimal `json:"co2e_kg"`
}

type RegionTotals struct {
	Region   string          `json:"region"`
	TotalKwh decimal.Decimal `json:"total_kwh"`
	AiKwh    decimal.Decimal `json:"ai_kwh"`
}

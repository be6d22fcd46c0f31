package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository reads and writes usage records. Date bounds are inclusive calendar days.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, r *UsageRecord) error
	// Delete removes the record and its emission row.
	Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*UsageRecord, error)
	FindWithEmission(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*RecordWithEmission, error)

	ListByRange(ctx context.Context, db *gorm.DB, companyID snowflake.ID, start, end time.Time) ([]UsageRecord, error)
	// ListPage returns up to limit records newest first, strictly after the (date, id) cursor when given.
	ListPage(ctx context.Context, db *gorm.DB, companyID snowflake.ID, after *PageCursor, limit int) ([]UsageRecord, error)
	ListByRegion(ctx context.Context, db *gorm.DB, companyID snowflake.ID, region string) ([]UsageRecord, error)
	ListWithEmissions(ctx context.Context, db *gorm.DB, companyID snowflake.ID, start, end time.Time) ([]RecordWithEmission, error)
	// ListAttributed returns every record of the company with an AI attribution, oldest first.
	ListAttributed(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]UsageRecord, error)

	SumByRange(ctx context.Context, db *gorm.DB, companyID snowflake.ID, start, end time.Time) (Totals, error)
	SumAiKwhByDepartment(ctx context.Context, db *gorm.DB, companyID snowflake.ID) (map[snowflake.ID]decimal.Decimal, error)
	SumByRegion(ctx context.Context, db *gorm.DB, companyID snowflake.ID, start, end time.Time) ([]RegionTotals, error)
}

type PageCursor struct {
	UsageDate time.Time
	ID        snowflake.ID
}

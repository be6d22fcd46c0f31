package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, t *Threshold) error
	Update(ctx context.Context, db *gorm.DB, t *Threshold) error
	FindByMetric(ctx context.Context, db *gorm.DB, companyID snowflake.ID, metric MetricType) (*Threshold, error)
	List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, activeOnly bool) ([]Threshold, error)
	Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (int64, error)
}

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, s *Scenario) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*Scenario, error)
	List(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]Scenario, error)
	Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (int64, error)
}

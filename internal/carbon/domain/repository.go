package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=domain

type Repository interface {
	InsertConfig(ctx context.Context, db *gorm.DB, c *Config) error
	UpdateConfig(ctx context.Context, db *gorm.DB, c *Config) error
	FindConfig(ctx context.Context, db *gorm.DB, companyID snowflake.ID, region string) (*Config, error)
	ListConfigs(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]Config, error)
	DeleteConfig(ctx context.Context, db *gorm.DB, companyID snowflake.ID, region string) (int64, error)

	InsertEmission(ctx context.Context, db *gorm.DB, e *Emission) error
	UpdateEmission(ctx context.Context, db *gorm.DB, e *Emission) error
	FindEmissionByUsageID(ctx context.Context, db *gorm.DB, energyUsageID snowflake.ID) (*Emission, error)
}

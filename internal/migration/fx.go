package migration

import (
	"context"

	"github.com/smallbiznis/ecoai/internal/config"
	"github.com/smallbiznis/ecoai/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, seeder *seed.Seeder, log *zap.Logger) error {
		if err := Run(conn); err != nil {
			return err
		}
		log.Info("database schema up to date")

		if !cfg.SeedSampleData {
			return nil
		}
		return seeder.EnsureSampleData(context.Background())
	}),
)

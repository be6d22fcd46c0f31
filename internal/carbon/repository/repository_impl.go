package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	"gorm.io/gorm"
)

const configColumns = `id, company_id, region, carbon_intensity, unit, valid_year, created_at, updated_at`

const emissionColumns = `id, energy_usage_id, company_id, co2e_grams, co2e_kg, carbon_intensity_used,
	region_used, calculated_at`

type repo struct{}

func Provide() carbondomain.Repository {
	return &repo{}
}

func (r *repo) InsertConfig(ctx context.Context, db *gorm.DB, c *carbondomain.Config) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO carbon_configs (`+configColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.CompanyID,
		c.Region,
		c.CarbonIntensity,
		c.Unit,
		c.ValidYear,
		c.CreatedAt,
		c.UpdatedAt,
	).Error
}

func (r *repo) UpdateConfig(ctx context.Context, db *gorm.DB, c *carbondomain.Config) error {
	return db.WithContext(ctx).Exec(
		`UPDATE carbon_configs SET carbon_intensity = ?, unit = ?, valid_year = ?, updated_at = ? WHERE id = ?`,
		c.CarbonIntensity,
		c.Unit,
		c.ValidYear,
		c.UpdatedAt,
		c.ID,
	).Error
}

func (r *repo) FindConfig(ctx context.Context, db *gorm.DB, companyID snowflake.ID, region string) (*carbondomain.Config, error) {
	var cfg carbondomain.Config
	err := db.WithContext(ctx).Raw(
		`SELECT `+configColumns+` FROM carbon_configs WHERE company_id = ? AND region = ?`,
		companyID, region,
	).Scan(&cfg).Error
	if err != nil {
		return nil, err
	}
	if cfg.ID == 0 {
		return nil, nil
	}
	return &cfg, nil
}

func (r *repo) ListConfigs(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]carbondomain.Config, error) {
	var configs []carbondomain.Config
	err := db.WithContext(ctx).Raw(
		`SELECT `+configColumns+` FROM carbon_configs WHERE company_id = ? ORDER BY region ASC`,
		companyID,
	).Scan(&configs).Error
	if err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *repo) DeleteConfig(ctx context.Context, db *gorm.DB, companyID snowflake.ID, region string) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM carbon_configs WHERE company_id = ? AND region = ?`,
		companyID, region,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) InsertEmission(ctx context.Context, db *gorm.DB, e *carbondomain.Emission) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO carbon_emissions (`+emissionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.EnergyUsageID,
		e.CompanyID,
		e.Co2eGrams,
		e.Co2eKg,
		e.CarbonIntensityUsed,
		e.RegionUsed,
		e.CalculatedAt,
	).Error
}

func (r *repo) UpdateEmission(ctx context.Context, db *gorm.DB, e *carbondomain.Emission) error {
	return db.WithContext(ctx).Exec(
		`UPDATE carbon_emissions
		 SET co2e_grams = ?, co2e_kg = ?, carbon_intensity_used = ?, region_used = ?, calculated_at = ?
		 WHERE id = ?`,
		e.Co2eGrams,
		e.Co2eKg,
		e.CarbonIntensityUsed,
		e.RegionUsed,
		e.CalculatedAt,
		e.ID,
	).Error
}

func (r *repo) FindEmissionByUsageID(ctx context.Context, db *gorm.DB, energyUsageID snowflake.ID) (*carbondomain.Emission, error) {
	var emission carbondomain.Emission
	err := db.WithContext(ctx).Raw(
		`SELECT `+emissionColumns+` FROM carbon_emissions WHERE energy_usage_id = ?`,
		energyUsageID,
	).Scan(&emission).Error
	if err != nil {
		return nil, err
	}
	if emission.ID == 0 {
		return nil, nil
	}
	return &emission, nil
}

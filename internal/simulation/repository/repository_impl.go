package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	simulationdomain "github.com/smallbiznis/ecoai/internal/simulation/domain"
	"gorm.io/gorm"
)

const scenarioColumns = `id, company_id, name, description, simulation_type, parameters,
	baseline_values, results, created_at`

type repo struct{}

func Provide() simulationdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, s *simulationdomain.Scenario) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO simulation_scenarios (`+scenarioColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.CompanyID,
		s.Name,
		s.Description,
		s.SimulationType,
		s.Parameters,
		s.BaselineValues,
		s.Results,
		s.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*simulationdomain.Scenario, error) {
	var scenario simulationdomain.Scenario
	err := db.WithContext(ctx).Raw(
		`SELECT `+scenarioColumns+` FROM simulation_scenarios WHERE id = ? AND company_id = ?`,
		id, companyID,
	).Scan(&scenario).Error
	if err != nil {
		return nil, err
	}
	if scenario.ID == 0 {
		return nil, nil
	}
	return &scenario, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]simulationdomain.Scenario, error) {
	var scenarios []simulationdomain.Scenario
	err := db.WithContext(ctx).Raw(
		`SELECT `+scenarioColumns+` FROM simulation_scenarios
		 WHERE company_id = ? ORDER BY created_at DESC, id DESC`,
		companyID,
	).Scan(&scenarios).Error
	if err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM simulation_scenarios WHERE id = ? AND company_id = ?`,
		id, companyID,
	)
	return res.RowsAffected, res.Error
}

package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	"gorm.io/gorm"
)

const companyColumns = `id, name, slug, industry, country, region, base_ai_percentage,
	electricity_cost_per_kwh, currency, created_at, updated_at`

const departmentColumns = `id, company_id, name, team, product, description, ai_usage_weight,
	employee_count, created_at, updated_at`

type repo struct{}

func Provide() companydomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, c *companydomain.Company) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO companies (`+companyColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Name,
		c.Slug,
		c.Industry,
		c.Country,
		c.Region,
		c.BaseAiPercentage,
		c.ElectricityCostPerKwh,
		c.Currency,
		c.CreatedAt,
		c.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, c *companydomain.Company) error {
	return db.WithContext(ctx).Exec(
		`UPDATE companies
		 SET name = ?, industry = ?, country = ?, region = ?, base_ai_percentage = ?,
		     electricity_cost_per_kwh = ?, currency = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name,
		c.Industry,
		c.Country,
		c.Region,
		c.BaseAiPercentage,
		c.ElectricityCostPerKwh,
		c.Currency,
		c.UpdatedAt,
		c.ID,
	).Error
}

func (r *repo) DeleteCascade(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	statements := []string{
		`DELETE FROM carbon_emissions WHERE energy_usage_id IN (SELECT id FROM energy_usage_records WHERE company_id = ?)`,
		`DELETE FROM energy_usage_records WHERE company_id = ?`,
		`DELETE FROM carbon_configs WHERE company_id = ?`,
		`DELETE FROM alert_thresholds WHERE company_id = ?`,
		`DELETE FROM simulation_scenarios WHERE company_id = ?`,
		`DELETE FROM departments WHERE company_id = ?`,
		`DELETE FROM companies WHERE id = ?`,
	}
	for _, stmt := range statements {
		if err := db.WithContext(ctx).Exec(stmt, id).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*companydomain.Company, error) {
	var company companydomain.Company
	err := db.WithContext(ctx).Raw(
		`SELECT `+companyColumns+` FROM companies WHERE id = ?`,
		id,
	).Scan(&company).Error
	if err != nil {
		return nil, err
	}
	if company.ID == 0 {
		return nil, nil
	}
	return &company, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*companydomain.Company, error) {
	var company companydomain.Company
	err := db.WithContext(ctx).Raw(
		`SELECT `+companyColumns+` FROM companies WHERE slug = ?`,
		slug,
	).Scan(&company).Error
	if err != nil {
		return nil, err
	}
	if company.ID == 0 {
		return nil, nil
	}
	return &company, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]companydomain.Company, error) {
	var companies []companydomain.Company
	err := db.WithContext(ctx).Raw(
		`SELECT ` + companyColumns + ` FROM companies ORDER BY created_at ASC, id ASC`,
	).Scan(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM companies`).Scan(&count).Error
	return count, err
}

func (r *repo) InsertDepartment(ctx context.Context, db *gorm.DB, d *companydomain.Department) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO departments (`+departmentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.CompanyID,
		d.Name,
		d.Team,
		d.Product,
		d.Description,
		d.AiUsageWeight,
		d.EmployeeCount,
		d.CreatedAt,
		d.UpdatedAt,
	).Error
}

func (r *repo) UpdateDepartment(ctx context.Context, db *gorm.DB, d *companydomain.Department) error {
	return db.WithContext(ctx).Exec(
		`UPDATE departments
		 SET name = ?, team = ?, product = ?, description = ?, ai_usage_weight = ?,
		     employee_count = ?, updated_at = ?
		 WHERE id = ?`,
		d.Name,
		d.Team,
		d.Product,
		d.Description,
		d.AiUsageWeight,
		d.EmployeeCount,
		d.UpdatedAt,
		d.ID,
	).Error
}

func (r *repo) DeleteDepartment(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	if err := db.WithContext(ctx).Exec(
		`UPDATE energy_usage_records SET department_id = NULL WHERE department_id = ?`,
		id,
	).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(`DELETE FROM departments WHERE id = ?`, id).Error
}

func (r *repo) FindDepartmentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*companydomain.Department, error) {
	var department companydomain.Department
	err := db.WithContext(ctx).Raw(
		`SELECT `+departmentColumns+` FROM departments WHERE id = ?`,
		id,
	).Scan(&department).Error
	if err != nil {
		return nil, err
	}
	if department.ID == 0 {
		return nil, nil
	}
	return &department, nil
}

func (r *repo) FindDepartmentByName(ctx context.Context, db *gorm.DB, companyID snowflake.ID, name string) (*companydomain.Department, error) {
	var department companydomain.Department
	err := db.WithContext(ctx).Raw(
		`SELECT `+departmentColumns+` FROM departments
		 WHERE company_id = ? AND LOWER(name) = ?
		 ORDER BY created_at ASC, id ASC LIMIT 1`,
		companyID,
		strings.ToLower(strings.TrimSpace(name)),
	).Scan(&department).Error
	if err != nil {
		return nil, err
	}
	if department.ID == 0 {
		return nil, nil
	}
	return &department, nil
}

func (r *repo) ListDepartments(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]companydomain.Department, error) {
	var departments []companydomain.Department
	err := db.WithContext(ctx).Raw(
		`SELECT `+departmentColumns+` FROM departments
		 WHERE company_id = ? ORDER BY created_at ASC, id ASC`,
		companyID,
	).Scan(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

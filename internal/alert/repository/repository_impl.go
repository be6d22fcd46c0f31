package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
	"gorm.io/gorm"
)

const thresholdColumns = `id, company_id, metric_type, operator, threshold_value, active,
	alert_message, created_at, updated_at`

type repo struct{}

func Provide() alertdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, t *alertdomain.Threshold) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO alert_thresholds (`+thresholdColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.CompanyID,
		t.MetricType,
		t.Operator,
		t.ThresholdValue,
		t.Active,
		t.AlertMessage,
		t.CreatedAt,
		t.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, t *alertdomain.Threshold) error {
	return db.WithContext(ctx).Exec(
		`UPDATE alert_thresholds
		 SET operator = ?, threshold_value = ?, active = ?, alert_message = ?, updated_at = ?
		 WHERE id = ?`,
		t.Operator,
		t.ThresholdValue,
		t.Active,
		t.AlertMessage,
		t.UpdatedAt,
		t.ID,
	).Error
}

func (r *repo) FindByMetric(ctx context.Context, db *gorm.DB, companyID snowflake.ID, metric alertdomain.MetricType) (*alertdomain.Threshold, error) {
	var threshold alertdomain.Threshold
	err := db.WithContext(ctx).Raw(
		`SELECT `+thresholdColumns+` FROM alert_thresholds WHERE company_id = ? AND metric_type = ?`,
		companyID, metric,
	).Scan(&threshold).Error
	if err != nil {
		return nil, err
	}
	if threshold.ID == 0 {
		return nil, nil
	}
	return &threshold, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, activeOnly bool) ([]alertdomain.Threshold, error) {
	query := `SELECT ` + thresholdColumns + ` FROM alert_thresholds WHERE company_id = ?`
	args := []any{companyID}
	if activeOnly {
		query += ` AND active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	var thresholds []alertdomain.Threshold
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&thresholds).Error; err != nil {
		return nil, err
	}
	return thresholds, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM alert_thresholds WHERE id = ? AND company_id = ?`,
		id, companyID,
	)
	return res.RowsAffected, res.Error
}

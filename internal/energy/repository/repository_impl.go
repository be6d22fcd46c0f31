package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"gorm.io/gorm"
)

const recordColumns = `r.id, r.company_id, r.department_id, r.total_kwh, r.ai_attributed_kwh,
	r.cost, r.currency, r.usage_date, r.period_type, r.region, r.data_source, r.created_at`

type repo struct{}

func Provide() energydomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rec *energydomain.UsageRecord) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO energy_usage_records (id, company_id, department_id, total_kwh,
			ai_attributed_kwh, cost, currency, usage_date, period_type, region, data_source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CompanyID,
		rec.DepartmentID,
		rec.TotalKwh,
		rec.AiAttributedKwh,
		rec.Cost,
		rec.Currency,
		rec.UsageDate,
		rec.PeriodType,
		strings.ToUpper(rec.Region),
		rec.DataSource,
		rec.CreatedAt,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) error {
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM carbon_emissions WHERE energy_usage_id = ?`, id,
	).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(
		`DELETE FROM energy_usage_records WHERE id = ? AND company_id = ?`, id, companyID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*energydomain.UsageRecord, error) {
	var rec energydomain.UsageRecord
	err := db.WithContext(ctx).Raw(
		`SELECT `+recordColumns+` FROM energy_usage_records r WHERE r.id = ? AND r.company_id = ?`,
		id, companyID,
	).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == 0 {
		return nil, nil
	}
	return &rec, nil
}

func (r *repo) FindWithEmission(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*energydomain.RecordWithEmission, error) {
	var rec energydomain.RecordWithEmission
	err := db.WithContext(ctx).Raw(
		`SELECT `+recordColumns+`, e.co2e_kg FROM energy_usage_records r
		 LEFT JOIN carbon_emissions e ON e.energy_usage_id = r.id
		 WHERE r.id = ? AND r.company_id = ?`,
		id, companyID,
	).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == 0 {
		return nil, nil
	}
	return &rec, nil
}

func (r *repo) ListByRange(ctx context.Context, db *gorm.DB, companyID snowflake.ID, start, end time.Time) ([]energydomain.UsageRecord, error) {
	var records []energydomain.UsageRecord
	err := db.WithContext(ctx).Raw(
		`SELECT `+recordColumns+` FROM energy_usage_records r
		 WHERE r.company_id = ? AND r.usage_date >= ? AND r.usage_date <= ?
		 ORDER BY r.usage_date ASC, r.id ASC`,
		companyID, start, end,
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListPage(ctx context.Context, db *gorm.DB, companyID snowflake.ID, after *energydomain.PageCursor, limit int) ([]energydomain.UsageRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM energy_usage_records r WHERE r.company_id = ?`
	args := []any{companyID}
	if after != nil {
		query += ` AND (r.usage_date < ? OR (r.usage_date = ? AND r.id < ?))`
		args = append(args, after.UsageDate, after.UsageDate, after.ID)
	}
	query += ` ORDER BY r.usage_date DESC, r.id DESC LIMIT ?`
	args = append(args, limit)

	var records []energydomain.UsageRecord
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListByRegion(ctx context.Context, db *gorm.DB, companyID snowflake.ID, region string) ([]energydomain.UsageRecord, error) {
	var records []energydomain.UsageRecord
	err := db.WithContext(ctx).Raw(
		`SELECT `+recordColumns+` FROM energy_usage_records r
		 WHERE r.company_id = ? AND r.region = ?
		 ORDER BY r.usage_date DESC, r.id DESC`,
		companyID, strings.ToUpper(strings.TrimSpace(region)),
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListWithEmissions(ctx context.Context, db *gorm.DB, companyID snowflake.ID, start, end time.Time) ([]energydomain.RecordWithEmission, error) {
	var records []energydomain.RecordWithEmission
	err := db.WithContext(ctx).Raw(
		`SELECT `+recordColumns+`, e.co2e_kg FROM energy_usage_records r
		 LEFT JOIN carbon_emissions e ON e.energy_usage_id = r.id
		 WHERE r.company_id = ? AND r.usage_date >= ? AND r.usage_date <= ?
		 ORDER BY r.usage_date ASC, r.id ASC`,
		companyID, start, end,
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListAttributed(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]energydomain.UsageRecord, error) {
	var records []energydomain.UsageRecord
	err := db.WithContext(ctx).Raw(
		`SELECT `+recordColumns+` FROM energy_usage_records r
		 WHERE r.company_id = ? AND r.ai_attributed_kwh IS NOT NULL
		 ORDER BY r.usage_date ASC, r.id ASC`,
		companyID,
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// SumByRange streams the matching rows and adds them up with decimal
// arithmetic so every dialect returns the same scale.
func (r *repo) SumByRange(ctx context.Context, db *gorm.DB, companyID snowflake.ID, start, end time.Time) (energydomain.Totals, error) {
	var totals energydomain.Totals
	rows, err := db.WithContext(ctx).Raw(
		`SELECT r.total_kwh, r.ai_attributed_kwh, r.cost, e.co2e_kg FROM energy_usage_records r
		 LEFT JOIN carbon_emissions e ON e.energy_usage_id = r.id
		 WHERE r.company_id = ? AND r.usage_date >= ? AND r.usage_date <= ?`,
		companyID, start, end,
	).Rows()
	if err != nil {
		return totals, err
	}
	defer rows.Close()

	for rows.Next() {
		var total, ai, cost, co2e decimal.NullDecimal
		if err := rows.Scan(&total, &ai, &cost, &co2e); err != nil {
			return totals, err
		}
		totals.Count++
		totals.TotalKwh = addNull(totals.TotalKwh, total)
		totals.AiKwh = addNull(totals.AiKwh, ai)
		totals.Cost = addNull(totals.Cost, cost)
		totals.Co2eKg = addNull(totals.Co2eKg, co2e)
	}
	return totals, rows.Err()
}

func (r *repo) SumAiKwhByDepartment(ctx context.Context, db *gorm.DB, companyID snowflake.ID) (map[snowflake.ID]decimal.Decimal, error) {
	rows, err := db.WithContext(ctx).Raw(
		`SELECT r.department_id, r.ai_attributed_kwh FROM energy_usage_records r
		 WHERE r.company_id = ? AND r.department_id IS NOT NULL AND r.ai_attributed_kwh IS NOT NULL`,
		companyID,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[snowflake.ID]decimal.Decimal)
	for rows.Next() {
		var (
			departmentID int64
			ai           decimal.Decimal
		)
		if err := rows.Scan(&departmentID, &ai); err != nil {
			return nil, err
		}
		id := snowflake.ID(departmentID)
		sums[id] = sums[id].Add(ai)
	}
	return sums, rows.Err()
}

// SumByRegion groups by region, largest total first.
func (r *repo) SumByRegion(ctx context.Context, db *gorm.DB, companyID snowflake.ID, start, end time.Time) ([]energydomain.RegionTotals, error) {
	rows, err := db.WithContext(ctx).Raw(
		`SELECT r.region, r.total_kwh, r.ai_attributed_kwh FROM energy_usage_records r
		 WHERE r.company_id = ? AND r.usage_date >= ? AND r.usage_date <= ?`,
		companyID, start, end,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]int)
	var out []energydomain.RegionTotals
	for rows.Next() {
		var (
			region    string
			total, ai decimal.NullDecimal
		)
		if err := rows.Scan(&region, &total, &ai); err != nil {
			return nil, err
		}
		i, ok := index[region]
		if !ok {
			i = len(out)
			index[region] = i
			out = append(out, energydomain.RegionTotals{Region: region})
		}
		out[i].TotalKwh = out[i].TotalKwh.Add(total.Decimal)
		out[i].AiKwh = out[i].AiKwh.Add(ai.Decimal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(a, b int) bool {
		if c := out[a].TotalKwh.Cmp(out[b].TotalKwh); c != 0 {
			return c > 0
		}
		return out[a].Region < out[b].Region
	})
	return out, nil
}

func addNull(acc, v decimal.NullDecimal) decimal.NullDecimal {
	if !v.Valid {
		return acc
	}
	if !acc.Valid {
		return v
	}
	return decimal.NewNullDecimal(acc.Decimal.Add(v.Decimal))
}

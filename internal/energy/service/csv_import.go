package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"go.uber.org/zap"
)

// ImportCSV reads date,totalKwh[,departmentName[,region]] after a header row.
// Each accepted row commits on its own.
func (s *Service) ImportCSV(ctx context.Context, companyID snowflake.ID, r io.Reader) (*energydomain.ImportResult, error) {
	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := &energydomain.ImportResult{
		BatchID:  ulid.Make().String(),
		Imported: []energydomain.UsageRecord{},
		Skipped:  []energydomain.SkippedRow{},
	}
	log := s.log.With(
		zap.String("company_id", companyID.String()),
		zap.String("batch_id", result.BatchID),
	)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		return nil, fmt.Errorf("%w: %v", energydomain.ErrInvalidCSV, err)
	}

	departments := map[string]*companydomain.Department{}
	skip := func(line int, reason string) {
		result.Skipped = append(result.Skipped, energydomain.SkippedRow{Line: line, Reason: reason})
		s.engineMetrics.IncCSVRowSkipped()
		log.Warn("csv row skipped", zap.Int("line", line), zap.String("reason", reason))
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skip(parseErr.Line, parseErr.Err.Error())
				continue
			}
			return nil, fmt.Errorf("%w: %v", energydomain.ErrInvalidCSV, err)
		}
		line, _ := reader.FieldPos(0)

		req, department, reason, err := s.parseRow(ctx, company, row, departments)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			skip(line, reason)
			continue
		}

		resp, err := s.record(ctx, company, department, req.WithDataSource(energydomain.SourceCSVImport))
		if err != nil {
			skip(line, err.Error())
			continue
		}
		result.Imported = append(result.Imported, resp.UsageRecord)
	}

	s.metrics.RecordCSVImport(ctx, len(result.Imported))
	log.Info("csv import finished",
		zap.Int("imported", len(result.Imported)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// parseRow returns a non-empty reason when the row must be skipped.
func (s *Service) parseRow(ctx context.Context, company *companydomain.Company, row []string, departments map[string]*companydomain.Department) (energydomain.RecordRequest, *companydomain.Department, string, error) {
	var req energydomain.RecordRequest
	if len(row) < 2 {
		return req, nil, "expected at least date and total_kwh columns", nil
	}

	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(row[0]), time.UTC)
	if err != nil {
		return req, nil, fmt.Sprintf("invalid date %q", row[0]), nil
	}
	total, err := decimal.NewFromString(strings.TrimSpace(row[1]))
	if err != nil {
		return req, nil, fmt.Sprintf("invalid total_kwh %q", row[1]), nil
	}
	if total.IsNegative() {
		return req, nil, "total_kwh cannot be negative", nil
	}

	req = energydomain.RecordRequest{
		CompanyID: company.ID,
		TotalKwh:  total,
		UsageDate: date,
	}
	if len(row) > 3 {
		req.Region = row[3]
	}

	var department *companydomain.Department
	if len(row) > 2 {
		name := strings.ToLower(strings.TrimSpace(row[2]))
		if name != "" {
			cached, ok := departments[name]
			if !ok {
				cached, err = s.companyRepo.FindDepartmentByName(ctx, s.db, company.ID, name)
				if err != nil {
					return req, nil, "", err
				}
				departments[name] = cached
			}
			department = cached
		}
	}
	return req, department, "", nil
}

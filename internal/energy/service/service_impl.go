package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	attributiondomain "github.com/smallbiznis/ecoai/internal/attribution/domain"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"github.com/smallbiznis/ecoai/internal/observability/metrics"
	"github.com/smallbiznis/ecoai/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          energydomain.Repository
	CompanyRepo   companydomain.Repository
	Carbon        carbondomain.Service
	Metrics       *metrics.Metrics       `optional:"true"`
	EngineMetrics *metrics.EngineMetrics `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          energydomain.Repository
	companyRepo   companydomain.Repository
	carbon        carbondomain.Service
	metrics       *metrics.Metrics
	engineMetrics *metrics.EngineMetrics
}

func New(p Params) energydomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("energy.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		companyRepo:   p.CompanyRepo,
		carbon:        p.Carbon,
		metrics:       p.Metrics,
		engineMetrics: p.EngineMetrics,
	}
}

func (s *Service) Record(ctx context.Context, req energydomain.RecordRequest) (*energydomain.RecordResponse, error) {
	if req.TotalKwh.IsNegative() {
		return nil, energydomain.ErrInvalidTotalKwh
	}
	if req.UsageDate.IsZero() {
		return nil, energydomain.ErrInvalidUsageDate
	}

	company, err := s.company(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	var department *companydomain.Department
	if req.DepartmentID != nil {
		department, err = s.companyRepo.FindDepartmentByID(ctx, s.db, *req.DepartmentID)
		if err != nil {
			return nil, err
		}
		if department == nil || department.CompanyID != company.ID {
			return nil, companydomain.ErrDepartmentNotFound
		}
	}

	return s.record(ctx, company, department, req)
}

func (s *Service) record(ctx context.Context, company *companydomain.Company, department *companydomain.Department, req energydomain.RecordRequest) (*energydomain.RecordResponse, error) {
	period, err := energydomain.ParsePeriodType(req.PeriodType)
	if err != nil {
		return nil, err
	}

	region := normalizeRegion(req.Region)
	if region == "" {
		region = company.Region
	}
	currency := normalizeRegion(req.Currency)
	if currency == "" {
		currency = company.Currency
	}

	total := decimal.NewNullDecimal(req.TotalKwh)
	pct := decimal.NewNullDecimal(company.BaseAiPercentage)
	var weight decimal.NullDecimal
	if department != nil {
		weight = decimal.NewNullDecimal(department.AiUsageWeight)
	}
	aiKwh := attributiondomain.CalculateAiAttribution(total, pct, weight)

	record := &energydomain.UsageRecord{
		ID:              s.genID.Generate(),
		CompanyID:       company.ID,
		TotalKwh:        req.TotalKwh,
		AiAttributedKwh: decimal.NewNullDecimal(aiKwh),
		Cost:            decimal.NewNullDecimal(req.TotalKwh.Mul(company.ElectricityCostPerKwh).Round(2)),
		Currency:        currency,
		UsageDate:       clock.StartOfDay(req.UsageDate),
		PeriodType:      period,
		Region:          region,
		DataSource:      req.DataSource(),
		CreatedAt:       s.clock.Now(),
	}
	if department != nil {
		id := department.ID
		record.DepartmentID = &id
	}

	var emission *carbondomain.Emission
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, record); err != nil {
			return err
		}
		var err error
		emission, err = s.carbon.CalculateAndSaveEmission(ctx, tx, record, company.Region)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("record usage: %w", err)
	}

	s.metrics.RecordUsage(ctx, string(record.DataSource), record.Region)

	resp := &energydomain.RecordResponse{
		UsageRecord: *record,
		Explanation: attributiondomain.Explain(total, pct, weight),
	}
	if emission != nil {
		resp.Co2eKg = decimal.NewNullDecimal(emission.Co2eKg)
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, companyID, id snowflake.ID) (*energydomain.RecordResponse, error) {
	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.FindWithEmission(ctx, s.db, companyID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, energydomain.ErrNotFound
	}

	var weight decimal.NullDecimal
	if rec.DepartmentID != nil {
		department, err := s.companyRepo.FindDepartmentByID(ctx, s.db, *rec.DepartmentID)
		if err != nil {
			return nil, err
		}
		if department != nil {
			weight = decimal.NewNullDecimal(department.AiUsageWeight)
		}
	}

	return &energydomain.RecordResponse{
		UsageRecord: rec.UsageRecord,
		Co2eKg:      rec.Co2eKg,
		Explanation: attributiondomain.Explain(
			decimal.NewNullDecimal(rec.TotalKwh),
			decimal.NewNullDecimal(company.BaseAiPercentage),
			weight,
		),
	}, nil
}

func (s *Service) ListByRange(ctx context.Context, companyID snowflake.ID, start, end time.Time) ([]energydomain.UsageRecord, error) {
	start, end = clock.StartOfDay(start), clock.StartOfDay(end)
	if start.After(end) {
		return nil, energydomain.ErrInvalidDateRange
	}
	if _, err := s.company(ctx, companyID); err != nil {
		return nil, err
	}
	return s.repo.ListByRange(ctx, s.db, companyID, start, end)
}

func (s *Service) List(ctx context.Context, companyID snowflake.ID, page pagination.Pagination) (*energydomain.ListResponse, error) {
	if _, err := s.company(ctx, companyID); err != nil {
		return nil, err
	}

	var after *energydomain.PageCursor
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		after, err = parseCursor(cursor)
		if err != nil {
			return nil, err
		}
	}

	limit := page.Size()
	records, err := s.repo.ListPage(ctx, s.db, companyID, after, limit+1)
	if err != nil {
		return nil, err
	}
	records, info, err := pagination.Trim(records, limit, func(r energydomain.UsageRecord) pagination.Cursor {
		return pagination.Cursor{ID: r.ID.String(), SortKey: r.UsageDate.Format(dateLayout)}
	})
	if err != nil {
		return nil, err
	}
	return &energydomain.ListResponse{Records: records, PageInfo: info}, nil
}

func (s *Service) ListByRegion(ctx context.Context, companyID snowflake.ID, region string) ([]energydomain.UsageRecord, error) {
	if _, err := s.company(ctx, companyID); err != nil {
		return nil, err
	}
	return s.repo.ListByRegion(ctx, s.db, companyID, region)
}

func (s *Service) Delete(ctx context.Context, companyID, id snowflake.ID) error {
	rec, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return energydomain.ErrNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, companyID, id)
	})
}

func (s *Service) company(ctx context.Context, id snowflake.ID) (*companydomain.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, companydomain.ErrNotFound
	}
	return company, nil
}

func normalizeRegion(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func parseCursor(c *pagination.Cursor) (*energydomain.PageCursor, error) {
	date, err := time.ParseInLocation(dateLayout, c.SortKey, time.UTC)
	if err != nil {
		return nil, pagination.ErrInvalidPageToken
	}
	id, err := snowflake.ParseString(c.ID)
	if err != nil {
		return nil, pagination.ErrInvalidPageToken
	}
	return &energydomain.PageCursor{UsageDate: date, ID: id}, nil
}

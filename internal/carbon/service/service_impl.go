package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	"github.com/smallbiznis/ecoai/internal/carbon/intensity"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"github.com/smallbiznis/ecoai/internal/lock"
	"github.com/smallbiznis/ecoai/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recalculationLockTTL = 5 * time.Minute

var gramsPerKg = decimal.NewFromInt(1000)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        carbondomain.Repository
	CompanyRepo companydomain.Repository
	EnergyRepo  energydomain.Repository
	Locker      *lock.Locker           `optional:"true"`
	Metrics     *metrics.EngineMetrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        carbondomain.Repository
	companyRepo companydomain.Repository
	energyRepo  energydomain.Repository
	locker      *lock.Locker
	metrics     *metrics.EngineMetrics
	table       *intensity.Table
}

func New(p Params) carbondomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("carbon.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		companyRepo: p.CompanyRepo,
		energyRepo:  p.EnergyRepo,
		locker:      p.Locker,
		metrics:     p.Metrics,
		table:       intensity.Default(),
	}
}

func (s *Service) EffectiveIntensity(ctx context.Context, companyID snowflake.ID, region string) (decimal.Decimal, error) {
	return s.effectiveIntensity(ctx, s.db, companyID, region)
}

func (s *Service) effectiveIntensity(ctx context.Context, db *gorm.DB, companyID snowflake.ID, region string) (decimal.Decimal, error) {
	code := intensity.Normalize(region)
	if code != "" {
		override, err := s.repo.FindConfig(ctx, db, companyID, code)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if override != nil {
			return override.CarbonIntensity, nil
		}
	}
	return s.table.Intensity(code), nil
}

func (s *Service) CalculateAndSaveEmission(ctx context.Context, tx *gorm.DB, record *energydomain.UsageRecord, companyRegion string) (*carbondomain.Emission, error) {
	if record == nil || !record.AiAttributedKwh.Valid {
		return nil, nil
	}

	region := intensity.Normalize(record.Region)
	if region == "" {
		region = intensity.Normalize(companyRegion)
	}
	factor, err := s.effectiveIntensity(ctx, tx, record.CompanyID, region)
	if err != nil {
		return nil, err
	}

	grams := record.AiAttributedKwh.Decimal.Mul(factor).Round(4)
	emission := &carbondomain.Emission{
		EnergyUsageID:       record.ID,
		CompanyID:           record.CompanyID,
		Co2eGrams:           grams,
		Co2eKg:              grams.DivRound(gramsPerKg, 4),
		CarbonIntensityUsed: factor,
		RegionUsed:          region,
		CalculatedAt:        s.clock.Now(),
	}

	existing, err := s.repo.FindEmissionByUsageID(ctx, tx, record.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		emission.ID = existing.ID
		err = s.repo.UpdateEmission(ctx, tx, emission)
	} else {
		emission.ID = s.genID.Generate()
		err = s.repo.InsertEmission(ctx, tx, emission)
	}
	if err != nil {
		return nil, fmt.Errorf("save emission for record %s: %w", record.ID, err)
	}

	s.metrics.IncEmissionCalculated(region)
	return emission, nil
}

func (s *Service) RecalculateEmissions(ctx context.Context, companyID snowflake.ID) (int, error) {
	company, err := s.companyRepo.FindByID(ctx, s.db, companyID)
	if err != nil {
		return 0, err
	}
	if company == nil {
		return 0, companydomain.ErrNotFound
	}

	start := time.Now()
	defer s.metrics.ObserveOperation("recalculate_emissions", start)

	var count int
	key := fmt.Sprintf("ecoai:carbon:recalculate:%s", companyID)
	err = s.locker.WithLock(ctx, key, recalculationLockTTL, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			records, err := s.energyRepo.ListAttributed(ctx, tx, companyID)
			if err != nil {
				return err
			}
			for i := range records {
				emission, err := s.CalculateAndSaveEmission(ctx, tx, &records[i], company.Region)
				if err != nil {
					return err
				}
				if emission != nil {
					count++
				}
			}
			return nil
		})
	})
	if errors.Is(err, lock.ErrLockHeld) {
		return 0, carbondomain.ErrRecalculationInProgress
	}
	if err != nil {
		return 0, err
	}

	s.metrics.AddRecalculated(count)
	s.log.Info("emissions recalculated",
		zap.String("company_id", companyID.String()),
		zap.Int("count", count),
	)
	return count, nil
}

func (s *Service) ConfigureIntensity(ctx context.Context, req carbondomain.ConfigureRequest) (*carbondomain.Config, error) {
	region := intensity.Normalize(req.Region)
	if region == "" {
		return nil, carbondomain.ErrInvalidRegion
	}
	if req.CarbonIntensity.IsNegative() {
		return nil, carbondomain.ErrInvalidIntensity
	}
	validYear := carbondomain.DefaultValidYear
	if req.ValidYear != nil {
		if *req.ValidYear <= 0 {
			return nil, carbondomain.ErrInvalidValidYear
		}
		validYear = *req.ValidYear
	}

	company, err := s.companyRepo.FindByID(ctx, s.db, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, companydomain.ErrNotFound
	}

	now := s.clock.Now()
	existing, err := s.repo.FindConfig(ctx, s.db, req.CompanyID, region)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.CarbonIntensity = req.CarbonIntensity
		existing.ValidYear = validYear
		existing.Unit = carbondomain.DefaultUnit
		existing.UpdatedAt = now
		if err := s.repo.UpdateConfig(ctx, s.db, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	cfg := &carbondomain.Config{
		ID:              s.genID.Generate(),
		CompanyID:       req.CompanyID,
		Region:          region,
		CarbonIntensity: req.CarbonIntensity,
		Unit:            carbondomain.DefaultUnit,
		ValidYear:       validYear,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.InsertConfig(ctx, s.db, cfg); err != nil {
		return nil, err
	}
	s.log.Info("carbon intensity configured",
		zap.String("company_id", req.CompanyID.String()),
		zap.String("region", region),
	)
	return cfg, nil
}

func (s *Service) ListConfigs(ctx context.Context, companyID snowflake.ID) ([]carbondomain.Config, error) {
	return s.repo.ListConfigs(ctx, s.db, companyID)
}

func (s *Service) DeleteConfig(ctx context.Context, companyID snowflake.ID, region string) error {
	affected, err := s.repo.DeleteConfig(ctx, s.db, companyID, intensity.Normalize(region))
	if err != nil {
		return err
	}
	if affected == 0 {
		return carbondomain.ErrConfigNotFound
	}
	return nil
}

func (s *Service) ListDefaults() []carbondomain.DefaultIntensity {
	regions := s.table.Regions()
	out := make([]carbondomain.DefaultIntensity, 0, len(regions))
	for _, r := range regions {
		out = append(out, carbondomain.DefaultIntensity{
			Region:          r.Code,
			Name:            r.Name,
			CarbonIntensity: r.Intensity,
			Unit:            s.table.Unit,
			ValidYear:       s.table.ValidYear,
			IsDefault:       true,
		})
	}
	return out
}

func (s *Service) RegionName(code string) string {
	return s.table.Name(code)
}

package service

import (
	"context"
	"sort"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	attributiondomain "github.com/smallbiznis/ecoai/internal/attribution/domain"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	CompanyRepo companydomain.Repository
	EnergyRepo  energydomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	companyRepo companydomain.Repository
	energyRepo  energydomain.Repository
}

func New(p Params) attributiondomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("attribution.service"),
		companyRepo: p.CompanyRepo,
		energyRepo:  p.EnergyRepo,
	}
}

func (s *Service) DepartmentBreakdown(ctx context.Context, companyID snowflake.ID) ([]attributiondomain.DepartmentShare, error) {
	company, err := s.companyRepo.FindByID(ctx, s.db, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, companydomain.ErrNotFound
	}

	departments, err := s.companyRepo.ListDepartments(ctx, s.db, companyID)
	if err != nil {
		return nil, err
	}
	sums, err := s.energyRepo.SumAiKwhByDepartment(ctx, s.db, companyID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, d := range departments {
		total = total.Add(sums[d.ID])
	}

	shares := make([]attributiondomain.DepartmentShare, 0, len(departments))
	for _, d := range departments {
		ai := sums[d.ID]
		share := decimal.Zero
		if total.IsPositive() {
			share = ai.DivRound(total, 4).Mul(hundred)
		}
		shares = append(shares, attributiondomain.DepartmentShare{
			DepartmentID:  d.ID,
			Name:          d.Name,
			Team:          d.Team,
			AiUsageWeight: d.AiUsageWeight,
			AiKwh:         ai,
			SharePercent:  share,
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].AiKwh.GreaterThan(shares[j].AiKwh)
	})
	return shares, nil
}

package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	"github.com/smallbiznis/ecoai/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  companydomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  companydomain.Repository
}

func New(p Params) companydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req companydomain.CreateRequest) (*companydomain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, companydomain.ErrInvalidName
	}
	region := normalizeRegion(req.Region)
	if region == "" {
		return nil, companydomain.ErrInvalidRegion
	}

	pct := companydomain.DefaultAiPercentage
	if req.BaseAiPercentage != nil {
		pct = *req.BaseAiPercentage
	}
	if err := validatePercentage(pct); err != nil {
		return nil, err
	}

	cost := companydomain.DefaultCostPerKwh
	if req.ElectricityCostPerKwh != nil {
		cost = *req.ElectricityCostPerKwh
	}
	if cost.IsNegative() {
		return nil, companydomain.ErrInvalidCostPerKwh
	}

	currency, err := normalizeCurrency(req.Currency)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	company := &companydomain.Company{
		ID:                    s.genID.Generate(),
		Name:                  name,
		Industry:              strings.TrimSpace(req.Industry),
		Country:               strings.TrimSpace(req.Country),
		Region:                region,
		BaseAiPercentage:      pct,
		ElectricityCostPerKwh: cost,
		Currency:              currency,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	company.Slug, err = s.uniqueSlug(ctx, name, company.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, company); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, companydomain.ErrConflict
		}
		return nil, err
	}

	s.log.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("region", company.Region),
	)
	return company, nil
}

func (s *Service) List(ctx context.Context) ([]companydomain.Company, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*companydomain.Company, error) {
	company, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, companydomain.ErrNotFound
	}
	return company, nil
}

func (s *Service) Update(ctx context.Context, req companydomain.UpdateRequest) (*companydomain.Company, error) {
	company, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, companydomain.ErrInvalidName
		}
		company.Name = name
	}
	if req.Industry != nil {
		company.Industry = strings.TrimSpace(*req.Industry)
	}
	if req.Country != nil {
		company.Country = strings.TrimSpace(*req.Country)
	}
	if req.Region != nil {
		region := normalizeRegion(*req.Region)
		if region == "" {
			return nil, companydomain.ErrInvalidRegion
		}
		company.Region = region
	}
	if req.BaseAiPercentage != nil {
		if err := validatePercentage(*req.BaseAiPercentage); err != nil {
			return nil, err
		}
		company.BaseAiPercentage = *req.BaseAiPercentage
	}
	if req.ElectricityCostPerKwh != nil {
		if req.ElectricityCostPerKwh.IsNegative() {
			return nil, companydomain.ErrInvalidCostPerKwh
		}
		company.ElectricityCostPerKwh = *req.ElectricityCostPerKwh
	}
	if req.Currency != nil {
		currency, err := normalizeCurrency(*req.Currency)
		if err != nil {
			return nil, err
		}
		company.Currency = currency
	}

	company.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.DeleteCascade(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("company deleted", zap.String("company_id", id.String()))
	return nil
}

func (s *Service) CreateDepartment(ctx context.Context, req companydomain.CreateDepartmentRequest) (*companydomain.Department, error) {
	if _, err := s.Get(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, companydomain.ErrInvalidName
	}
	existing, err := s.repo.FindDepartmentByName(ctx, s.db, req.CompanyID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, companydomain.ErrDuplicateDepartment
	}

	weight := companydomain.DefaultDepartmentWeight
	if req.AiUsageWeight != nil {
		weight = *req.AiUsageWeight
	}
	if err := validateWeight(weight); err != nil {
		return nil, err
	}

	employees := companydomain.DefaultEmployeeCount
	if req.EmployeeCount != nil {
		employees = *req.EmployeeCount
	}
	if employees < 0 {
		return nil, companydomain.ErrInvalidEmployeeCount
	}

	now := s.clock.Now()
	department := &companydomain.Department{
		ID:            s.genID.Generate(),
		CompanyID:     req.CompanyID,
		Name:          name,
		Team:          strings.TrimSpace(req.Team),
		Product:       strings.TrimSpace(req.Product),
		Description:   strings.TrimSpace(req.Description),
		AiUsageWeight: weight,
		EmployeeCount: employees,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.InsertDepartment(ctx, s.db, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *Service) ListDepartments(ctx context.Context, companyID snowflake.ID) ([]companydomain.Department, error) {
	if _, err := s.Get(ctx, companyID); err != nil {
		return nil, err
	}
	return s.repo.ListDepartments(ctx, s.db, companyID)
}

func (s *Service) GetDepartment(ctx context.Context, id snowflake.ID) (*companydomain.Department, error) {
	department, err := s.repo.FindDepartmentByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, companydomain.ErrDepartmentNotFound
	}
	return department, nil
}

// FindDepartmentByName matches case-insensitively and returns nil when nothing matches.
func (s *Service) FindDepartmentByName(ctx context.Context, companyID snowflake.ID, name string) (*companydomain.Department, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	return s.repo.FindDepartmentByName(ctx, s.db, companyID, name)
}

func (s *Service) UpdateDepartment(ctx context.Context, req companydomain.UpdateDepartmentRequest) (*companydomain.Department, error) {
	department, err := s.GetDepartment(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, companydomain.ErrInvalidName
		}
		department.Name = name
	}
	if req.Team != nil {
		department.Team = strings.TrimSpace(*req.Team)
	}
	if req.Product != nil {
		department.Product = strings.TrimSpace(*req.Product)
	}
	if req.Description != nil {
		department.Description = strings.TrimSpace(*req.Description)
	}
	if req.AiUsageWeight != nil {
		if err := validateWeight(*req.AiUsageWeight); err != nil {
			return nil, err
		}
		department.AiUsageWeight = *req.AiUsageWeight
	}
	if req.EmployeeCount != nil {
		if *req.EmployeeCount < 0 {
			return nil, companydomain.ErrInvalidEmployeeCount
		}
		department.EmployeeCount = *req.EmployeeCount
	}

	department.UpdatedAt = s.clock.Now()
	if err := s.repo.UpdateDepartment(ctx, s.db, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, id snowflake.ID) error {
	if _, err := s.GetDepartment(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.DeleteDepartment(ctx, tx, id)
	})
}

func (s *Service) uniqueSlug(ctx context.Context, name string, id snowflake.ID) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "company"
	}
	existing, err := s.repo.FindBySlug(ctx, s.db, base)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return base, nil
	}
	return base + "-" + strings.ToLower(id.Base36()), nil
}

func normalizeRegion(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}

func normalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return companydomain.DefaultCurrency, nil
	}
	if len(currency) != 3 {
		return "", companydomain.ErrInvalidCurrency
	}
	return currency, nil
}

// validatePercentage only rejects negatives; attribution assumes [0,1] but does not require it.
func validatePercentage(pct decimal.Decimal) error {
	if pct.IsNegative() {
		return companydomain.ErrInvalidAiPercentage
	}
	return nil
}

// validateWeight only rejects negatives; a weight is a multiplier and may exceed 1.
func validateWeight(weight decimal.Decimal) error {
	if weight.IsNegative() {
		return companydomain.ErrInvalidWeight
	}
	return nil
}

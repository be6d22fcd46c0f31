// Package seed loads the TechCorp demo dataset into an empty database.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	sampleCompanyName = "TechCorp AI Solutions"
	sampleMonths      = 6
	randomSeed        = 42
)

var Module = fx.Module("seed",
	fx.Provide(New),
)

type sampleDepartment struct {
	name    string
	team    string
	product string
	weight  string
	base    float64
	spread  float64
}

var sampleDepartments = []sampleDepartment{
	{name: "Machine Learning", team: "ML Engineering", product: "AI Platform", weight: "0.85", base: 250, spread: 100},
	{name: "Data Science", team: "Analytics", product: "Insights Engine", weight: "0.65", base: 150, spread: 60},
	{name: "Software Development", team: "Platform", product: "Core Product", weight: "0.30", base: 100, spread: 40},
	{name: "Operations", team: "Infrastructure", weight: "0.20", base: 80, spread: 30},
}

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Companies companydomain.Service
	Energy    energydomain.Service
	Alerts    alertdomain.Service
}

type Seeder struct {
	log       *zap.Logger
	clock     clock.Clock
	companies companydomain.Service
	energy    energydomain.Service
	alerts    alertdomain.Service
}

func New(p Params) *Seeder {
	return &Seeder{
		log:       p.Log.Named("seed"),
		clock:     p.Clock,
		companies: p.Companies,
		energy:    p.Energy,
		alerts:    p.Alerts,
	}
}

// EnsureSampleData seeds one demo company with six months of daily usage.
// It does nothing when any company already exists.
func (s *Seeder) EnsureSampleData(ctx context.Context) error {
	existing, err := s.companies.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.log.Info("sample data already present, skipping")
		return nil
	}

	pct := decimal.RequireFromString("0.35")
	cost := decimal.RequireFromString("0.12")
	company, err := s.companies.Create(ctx, companydomain.CreateRequest{
		Name:                  sampleCompanyName,
		Industry:              "Technology",
		Country:               "United States",
		Region:                "US",
		BaseAiPercentage:      &pct,
		ElectricityCostPerKwh: &cost,
		Currency:              "USD",
	})
	if err != nil {
		return fmt.Errorf("seed company: %w", err)
	}

	rng := rand.New(rand.NewSource(randomSeed))

	departments := make([]*companydomain.Department, 0, len(sampleDepartments))
	for _, d := range sampleDepartments {
		weight := decimal.RequireFromString(d.weight)
		employees := 10 + rng.Intn(40)
		dept, err := s.companies.CreateDepartment(ctx, companydomain.CreateDepartmentRequest{
			CompanyID:     company.ID,
			Name:          d.name,
			Team:          d.team,
			Product:       d.product,
			AiUsageWeight: &weight,
			EmployeeCount: &employees,
		})
		if err != nil {
			return fmt.Errorf("seed department %s: %w", d.name, err)
		}
		departments = append(departments, dept)
	}

	today := clock.Today(s.clock)
	records := 0
	for month := sampleMonths - 1; month >= 0; month-- {
		monthStart := clock.StartOfMonth(clock.AddMonths(today, -month))
		growth := 1.0 + float64(sampleMonths-1-month)*0.03

		for day := monthStart; day.Month() == monthStart.Month() && !day.After(today); day = day.AddDate(0, 0, 1) {
			for i, d := range sampleDepartments {
				usage := (d.base + rng.Float64()*d.spread) * growth * (0.9 + rng.Float64()*0.2)
				if isWeekend(day) {
					usage *= 0.4
				}

				deptID := departments[i].ID
				req := energydomain.RecordRequest{
					CompanyID:    company.ID,
					DepartmentID: &deptID,
					TotalKwh:     decimal.NewFromFloat(usage).Round(2),
					UsageDate:    day,
					PeriodType:   string(energydomain.PeriodDaily),
				}.WithDataSource(energydomain.SourceSampleData)
				if _, err := s.energy.Record(ctx, req); err != nil {
					return fmt.Errorf("seed usage %s: %w", day.Format("2006-01-02"), err)
				}
				records++
			}
		}
	}

	thresholds := []alertdomain.ConfigureThresholdRequest{
		{
			CompanyID:      company.ID,
			MetricType:     string(alertdomain.MetricAiUsageKwh),
			ThresholdValue: decimal.NewFromInt(15000),
			AlertMessage:   "Monthly AI energy usage approaching limit",
		},
		{
			CompanyID:      company.ID,
			MetricType:     string(alertdomain.MetricCarbonEmissionKg),
			ThresholdValue: decimal.NewFromInt(6000),
			AlertMessage:   "Monthly carbon emissions near budget",
		},
	}
	for _, t := range thresholds {
		if _, err := s.alerts.ConfigureThreshold(ctx, t); err != nil {
			return fmt.Errorf("seed threshold %s: %w", t.MetricType, err)
		}
	}

	s.log.Info("sample data seeded",
		zap.String("company_id", company.ID.String()),
		zap.Int("departments", len(departments)),
		zap.Int("records", records),
	)
	return nil
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

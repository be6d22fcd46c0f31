package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
	"github.com/smallbiznis/ecoai/internal/alert/notify"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	"github.com/smallbiznis/ecoai/internal/config"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"github.com/smallbiznis/ecoai/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          alertdomain.Repository
	CompanyRepo   companydomain.Repository
	EnergyRepo    energydomain.Repository
	Engine        *config.EngineConfigHolder `optional:"true"`
	Notifier      *notify.Notifier           `optional:"true"`
	EngineMetrics *metrics.EngineMetrics     `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          alertdomain.Repository
	companyRepo   companydomain.Repository
	energyRepo    energydomain.Repository
	engine        *config.EngineConfigHolder
	notifier      *notify.Notifier
	engineMetrics *metrics.EngineMetrics
}

func New(p Params) alertdomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("alert.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		companyRepo:   p.CompanyRepo,
		energyRepo:    p.EnergyRepo,
		engine:        p.Engine,
		notifier:      p.Notifier,
		engineMetrics: p.EngineMetrics,
	}
}

func (s *Service) ConfigureThreshold(ctx context.Context, req alertdomain.ConfigureThresholdRequest) (*alertdomain.Threshold, error) {
	metric, err := alertdomain.ParseMetricType(req.MetricType)
	if err != nil {
		return nil, err
	}
	if req.ThresholdValue.IsNegative() {
		return nil, alertdomain.ErrInvalidThresholdValue
	}
	if _, err := s.company(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	message := strings.TrimSpace(req.AlertMessage)

	existing, err := s.repo.FindByMetric(ctx, s.db, req.CompanyID, metric)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.ThresholdValue = req.ThresholdValue
		existing.AlertMessage = message
		if req.Operator != "" {
			op, err := alertdomain.ParseOperator(req.Operator)
			if err != nil {
				return nil, err
			}
			existing.Operator = op
		}
		if req.Active != nil {
			existing.Active = *req.Active
		}
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, s.db, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	op, err := alertdomain.ParseOperator(req.Operator)
	if err != nil {
		return nil, err
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	threshold := &alertdomain.Threshold{
		ID:             s.genID.Generate(),
		CompanyID:      req.CompanyID,
		MetricType:     metric,
		Operator:       op,
		ThresholdValue: req.ThresholdValue,
		Active:         active,
		AlertMessage:   message,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Insert(ctx, s.db, threshold); err != nil {
		return nil, err
	}
	return threshold, nil
}

func (s *Service) ListThresholds(ctx context.Context, companyID snowflake.ID) ([]alertdomain.Threshold, error) {
	if _, err := s.company(ctx, companyID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, s.db, companyID, false)
}

func (s *Service) DeleteThreshold(ctx context.Context, companyID, id snowflake.ID) error {
	affected, err := s.repo.Delete(ctx, s.db, companyID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return alertdomain.ErrNotFound
	}
	return nil
}

func (s *Service) CheckThresholds(ctx context.Context, companyID snowflake.ID) ([]alertdomain.Alert, error) {
	if _, err := s.company(ctx, companyID); err != nil {
		return nil, err
	}
	thresholds, err := s.repo.List(ctx, s.db, companyID, true)
	if err != nil {
		return nil, err
	}
	alerts := []alertdomain.Alert{}
	if len(thresholds) == 0 {
		return alerts, nil
	}

	today := clock.Today(s.clock)
	totals, err := s.energyRepo.SumByRange(ctx, s.db, companyID, clock.StartOfMonth(today), today)
	if err != nil {
		return nil, err
	}
	near := decimal.NewFromFloat(s.engine.Get().NearThresholdPercent)
	now := s.clock.Now()

	for _, t := range thresholds {
		current := currentValue(t.MetricType, totals)
		if !current.Valid {
			continue
		}

		percent := decimal.Zero
		if !t.ThresholdValue.IsZero() {
			percent = current.Decimal.DivRound(t.ThresholdValue, 4).Mul(hundred)
		}
		triggered := t.Operator.Evaluate(current.Decimal, t.ThresholdValue)
		if percent.LessThan(near) && !triggered {
			continue
		}

		severity := alertdomain.SeverityFor(percent)
		alerts = append(alerts, alertdomain.Alert{
			ThresholdID:        t.ID,
			CompanyID:          companyID,
			MetricType:         t.MetricType,
			Title:              alertTitle(t.MetricType, triggered),
			Message:            alertMessage(t, percent),
			ThresholdValue:     t.ThresholdValue,
			CurrentValue:       current.Decimal,
			PercentOfThreshold: percent,
			Triggered:          triggered,
			Severity:           severity,
			TriggeredAt:        now,
		})
		s.engineMetrics.IncAlertTriggered(string(severity))
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() > alerts[j].Severity.Rank()
	})
	return alerts, nil
}

// currentValue maps a metric to its month-to-date source. Metrics without a
// direct source come back invalid and are skipped.
func currentValue(metric alertdomain.MetricType, totals energydomain.Totals) decimal.NullDecimal {
	switch metric {
	case alertdomain.MetricAiUsageKwh:
		return totals.AiKwh
	case alertdomain.MetricTotalEnergyKwh:
		return totals.TotalKwh
	case alertdomain.MetricCarbonEmissionKg:
		return totals.Co2eKg
	case alertdomain.MetricMonthlyCost:
		return totals.Cost
	case alertdomain.MetricAiPercentage, alertdomain.MetricEnergyGrowthRate:
		return decimal.NullDecimal{}
	default:
		return decimal.NullDecimal{}
	}
}

func alertTitle(metric alertdomain.MetricType, triggered bool) string {
	status := "Approaching Threshold"
	if triggered {
		status = "Threshold Exceeded"
	}
	return metric.Label() + " " + status
}

func alertMessage(t alertdomain.Threshold, percent decimal.Decimal) string {
	if t.AlertMessage != "" {
		return t.AlertMessage
	}
	words := strings.ToLower(strings.ReplaceAll(string(t.MetricType), "_", " "))
	return fmt.Sprintf("Current %s is at %s%% of the configured threshold.", words, percent.StringFixed(1))
}

func (s *Service) OptimizationSuggestions(ctx context.Context, companyID snowflake.ID) ([]alertdomain.Insight, error) {
	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	today := clock.Today(s.clock)
	totals, err := s.energyRepo.SumByRange(ctx, s.db, companyID, clock.StartOfMonth(today), today)
	if err != nil {
		return nil, err
	}
	return evaluateInsights(snapshot{
		Region:           company.Region,
		MonthToDateAiKwh: totals.AiKwh,
		Engine:           s.engine.Get(),
	}), nil
}

func (s *Service) Dispatch(ctx context.Context, companyID snowflake.ID) (*alertdomain.DispatchResult, error) {
	alerts, err := s.CheckThresholds(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := &alertdomain.DispatchResult{
		Alerts: len(alerts),
		Sinks:  s.notifier.SinkNames(),
	}
	if len(alerts) == 0 || len(result.Sinks) == 0 {
		return result, nil
	}

	now := s.clock.Now()
	events := make([]notify.Event, 0, len(alerts))
	for _, a := range alerts {
		events = append(events, notify.Event{
			Version:      notify.EventVersion,
			CompanyID:    companyID.String(),
			Alert:        a,
			DispatchedAt: now,
		})
	}
	delivery := s.notifier.Notify(ctx, events)
	result.Delivered = delivery.Delivered
	result.Failed = delivery.Failed

	s.log.Info("alerts dispatched",
		zap.String("company_id", companyID.String()),
		zap.Int("alerts", result.Alerts),
		zap.Int("delivered", result.Delivered),
		zap.Int("failed", result.Failed),
	)
	return result, nil
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

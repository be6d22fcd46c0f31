// Package notify delivers triggered alerts to external sinks.
package notify

import (
	"context"
	"time"

	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
	"github.com/smallbiznis/ecoai/internal/config"
	"github.com/smallbiznis/ecoai/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const EventVersion = 1

// Event is the payload written to every sink.
type Event struct {
	Version      int               `json:"version"`
	CompanyID    string            `json:"company_id"`
	Alert        alertdomain.Alert `json:"alert"`
	DispatchedAt time.Time         `json:"dispatched_at"`
}

type Sink interface {
	Name() string
	Send(ctx context.Context, event Event) error
	Close() error
}

type Result struct {
	Delivered int
	Failed    int
}

// Notifier fans events out to its sinks. A failing sink never stops the others.
type Notifier struct {
	sinks   []Sink
	log     *zap.Logger
	metrics *metrics.Metrics
}

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
	Metrics   *metrics.Metrics `optional:"true"`
}

// New builds sinks from the notify configuration and closes them on shutdown.
func New(p Params) *Notifier {
	log := p.Log.Named("alert.notify")
	cfg := p.Config.Notify
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	var sinks []Sink
	if cfg.WebhookURL != "" {
		sinks = append(sinks, NewWebhookSink(cfg.WebhookURL, cfg.WebhookSecret, timeout))
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic != "" {
		sinks = append(sinks, NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic, timeout))
	}

	n := NewNotifier(log, p.Metrics, sinks...)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return n.Close()
		},
	})
	for _, s := range sinks {
		log.Info("alert sink enabled", zap.String("sink", s.Name()))
	}
	return n
}

func NewNotifier(log *zap.Logger, m *metrics.Metrics, sinks ...Sink) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{sinks: sinks, log: log, metrics: m}
}

// SinkNames lists the enabled sinks in delivery order.
func (n *Notifier) SinkNames() []string {
	if n == nil {
		return []string{}
	}
	names := make([]string, 0, len(n.sinks))
	for _, s := range n.sinks {
		names = append(names, s.Name())
	}
	return names
}

func (n *Notifier) Notify(ctx context.Context, events []Event) Result {
	var res Result
	if n == nil {
		return res
	}
	for _, event := range events {
		for _, sink := range n.sinks {
			if err := sink.Send(ctx, event); err != nil {
				res.Failed++
				n.metrics.RecordAlertDelivery(ctx, sink.Name(), "failed")
				n.log.Warn("alert delivery failed",
					zap.String("sink", sink.Name()),
					zap.String("company_id", event.CompanyID),
					zap.String("metric_type", string(event.Alert.MetricType)),
					zap.Error(err),
				)
				continue
			}
			res.Delivered++
			n.metrics.RecordAlertDelivery(ctx, sink.Name(), "delivered")
		}
	}
	return res
}

func (n *Notifier) Close() error {
	if n == nil {
		return nil
	}
	var first error
	for _, s := range n.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

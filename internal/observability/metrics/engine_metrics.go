package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics captures calculation engine signals scraped from /metrics.
type EngineMetrics struct {
	emissionsCalculated *prometheus.CounterVec
	alertsTriggered     *prometheus.CounterVec
	simulations         *prometheus.CounterVec
	csvRowsSkipped      prometheus.Counter
	recalculated        prometheus.Counter
	operationDuration   *prometheus.HistogramVec
}

var (
	engineMetricsOnce sync.Once
	engineMetrics     *EngineMetrics
)

// Engine returns the singleton engine metrics registry.
func Engine() *EngineMetrics {
	return EngineWithConfig(Config{})
}

// EngineWithConfig returns the singleton engine metrics registry using config labels.
func EngineWithConfig(cfg Config) *EngineMetrics {
	engineMetricsOnce.Do(func() {
		engineMetrics = newEngineMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return engineMetrics
}

// NewEngineMetrics registers engine metrics on registerer. Tests pass their own registry.
func NewEngineMetrics(registerer prometheus.Registerer, cfg Config) *EngineMetrics {
	return newEngineMetrics(registerer, cfg)
}

func newEngineMetrics(registerer prometheus.Registerer, cfg Config) *EngineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "ecoai"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &EngineMetrics{
		emissionsCalculated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ecoai_emissions_calculated_total",
			Help:        "Carbon emission rows written, by region used.",
			ConstLabels: constLabels,
		}, []string{"region"}),
		alertsTriggered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ecoai_alerts_triggered_total",
			Help:        "Threshold alerts produced by evaluations, by severity.",
			ConstLabels: constLabels,
		}, []string{"severity"}),
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ecoai_simulations_total",
			Help:        "What-if simulations run, by type.",
			ConstLabels: constLabels,
		}, []string{"type"}),
		csvRowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ecoai_csv_rows_skipped_total",
			Help:        "Malformed CSV rows skipped during import.",
			ConstLabels: constLabels,
		}),
		recalculated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ecoai_emissions_recalculated_total",
			Help:        "Emission rows rewritten by bulk recalculation.",
			ConstLabels: constLabels,
		}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "ecoai_engine_operation_duration_seconds",
			Help:        "Latency of analytics, alert and simulation operations.",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}

	registerer.MustRegister(
		m.emissionsCalculated,
		m.alertsTriggered,
		m.simulations,
		m.csvRowsSkipped,
		m.recalculated,
		m.operationDuration,
	)
	return m
}

func (m *EngineMetrics) IncEmissionCalculated(region string) {
	if m == nil {
		return
	}
	m.emissionsCalculated.WithLabelValues(normalizeLabel(region)).Inc()
}

func (m *EngineMetrics) IncAlertTriggered(severity string) {
	if m == nil {
		return
	}
	m.alertsTriggered.WithLabelValues(normalizeLabel(severity)).Inc()
}

func (m *EngineMetrics) IncSimulation(simType string) {
	if m == nil {
		return
	}
	m.simulations.WithLabelValues(normalizeLabel(simType)).Inc()
}

func (m *EngineMetrics) IncCSVRowSkipped() {
	if m == nil {
		return
	}
	m.csvRowsSkipped.Inc()
}

func (m *EngineMetrics) AddRecalculated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recalculated.Add(float64(n))
}

// ObserveOperation records the time since start under operation.
func (m *EngineMetrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(normalizeLabel(operation)).Observe(time.Since(start).Seconds())
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}

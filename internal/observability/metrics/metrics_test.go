package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("region", "US"),
		attribute.String("company_id", "456"),
		attribute.String("data_source", "CSV_IMPORT"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key == "company_id" {
			t.Fatalf("expected company_id to be dropped")
		}
	}
}

func TestEngineMetricsCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewEngineMetrics(registry, Config{ServiceName: "ecoai", Environment: "test"})

	m.IncAlertTriggered("CRITICAL")
	m.IncAlertTriggered("CRITICAL")
	m.IncSimulation("")
	m.AddRecalculated(3)
	m.AddRecalculated(-1)

	if got := testutil.ToFloat64(m.alertsTriggered.WithLabelValues("CRITICAL")); got != 2 {
		t.Fatalf("expected 2 critical alerts, got %v", got)
	}
	if got := testutil.ToFloat64(m.simulations.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty type to map to unknown, got %v", got)
	}
	if got := testutil.ToFloat64(m.recalculated); got != 3 {
		t.Fatalf("expected 3 recalculated, got %v", got)
	}
}

func TestEngineMetricsObserveOperation(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewEngineMetrics(registry, Config{})
	m.ObserveOperation("forecast", time.Now())

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var histogram *dto.Histogram
	for _, f := range families {
		if f.GetName() == "ecoai_engine_operation_duration_seconds" {
			histogram = f.GetMetric()[0].GetHistogram()
		}
	}
	if histogram == nil || histogram.GetSampleCount() != 1 {
		t.Fatalf("expected one forecast sample, got %+v", histogram)
	}
}

func TestNilEngineMetricsIsSafe(t *testing.T) {
	var m *EngineMetrics
	m.IncEmissionCalculated("US")
	m.IncCSVRowSkipped()
	m.ObserveOperation("x", time.Now())
}

func TestHTTPMiddlewareObservesRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	m := newHTTPMetrics(registry, Config{ServiceName: "ecoai"})

	r := gin.New()
	r.Use(GinMiddleware(m))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if got := testutil.CollectAndCount(m.requests); got != 1 {
		t.Fatalf("expected one series, got %d", got)
	}
}

package observability

import (
	"testing"

	"github.com/smallbiznis/ecoai/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigMapsTelemetry(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppVersion:  "1.2.3",
		Environment: "production",
		Telemetry: config.TelemetryConfig{
			LogLevel:      "info",
			LogFormat:     "json",
			OtelEnabled:   true,
			OTLPEndpoint:  "collector:4317",
			OTLPProtocol:  "grpc",
			SamplingRatio: 4,
		},
		Redis:     config.RedisConfig{Addr: "localhost:6379"},
		RateLimit: config.RateLimitConfig{Enabled: true},
		Notify:    config.NotifyConfig{KafkaBrokers: []string{"k1:9092"}},
	})

	assert.Equal(t, "ecoai", cfg.ServiceName)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "collector:4317", cfg.OtelExporterEndpoint)
	assert.Equal(t, 0.1, cfg.OtelSamplingRatio)
	assert.Equal(t, []string{"recalculation_lock", "ingest_rate_limit", "alert_kafka", "otel"}, cfg.Features)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigWithoutOptionalIntegrations(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:   "ecoai-api",
		RateLimit: config.RateLimitConfig{Enabled: true},
	})

	assert.Equal(t, "ecoai-api", cfg.ServiceName)
	assert.Empty(t, cfg.Features)
}

func TestDebug(t *testing.T) {
	assert.True(t, Config{LogLevel: "debug", Environment: "production"}.Debug())
	assert.True(t, Config{LogLevel: "info", Environment: "Development"}.Debug())
	assert.False(t, Config{LogLevel: "info", Environment: "staging"}.Debug())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadReadsNotifyAndRedis(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ALERT_KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("SEED_SAMPLE_DATA", "yes")
	t.Setenv("DATABASE_TYPE", "SQLite")

	cfg := Load()

	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Notify.KafkaBrokers)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "ecoai.alerts", cfg.Notify.KafkaTopic)
}

func TestLoadRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_INGEST_PER_SECOND", "2.5")
	t.Setenv("RATE_LIMIT_INGEST_BURST", "not-a-number")

	cfg := Load()

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 2.5, cfg.RateLimit.IngestRate)
	assert.Equal(t, 20, cfg.RateLimit.IngestBurst)
}

func TestLoadTelemetryPrefersOtelVariables(t *testing.T) {
	t.Setenv("OTLP_ENDPOINT", "short:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", " collector:4318 ")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "HTTP")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DEPLOYMENT_ENV", "staging")

	cfg := Load()

	assert.Equal(t, "collector:4318", cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, "http", cfg.Telemetry.OTLPProtocol)
	assert.Equal(t, "debug", cfg.Telemetry.LogLevel)
	assert.False(t, cfg.Telemetry.OtelEnabled)
	assert.Equal(t, "staging", cfg.Environment)
}

func TestEngineConfigDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	holder, err := NewEngineConfigHolder(zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, []string{"IN", "AU", "CN"}, cfg.HighIntensityRegions)
	assert.Equal(t, 5000.0, cfg.HighVolumeAiKwh)
	assert.Equal(t, 1000.0, cfg.SimulationBaselineKwh)
	assert.True(t, cfg.IsHighIntensityRegion("in"))
	assert.False(t, cfg.IsHighIntensityRegion("SE"))
}

func TestEngineConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	body := []byte("engine:\n  highIntensityRegions: [ZA]\n  highVolumeAiKwh: 100\n  nearThresholdPercent: 75\n  simulationBaselineKwh: 10\n  forecastBandLow: 0.9\n  forecastBandHigh: 1.1\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "engine.yml"), body, 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	holder, err := NewEngineConfigHolder(zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, []string{"ZA"}, cfg.HighIntensityRegions)
	assert.Equal(t, 100.0, cfg.HighVolumeAiKwh)
	assert.Equal(t, 75.0, cfg.NearThresholdPercent)
}

func TestValidateEngineConfigRejectsBadBand(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.ForecastBandHigh = 0.5
	assert.Error(t, validateEngineConfig(cfg))
	assert.NoError(t, validateEngineConfig(DefaultEngineConfig()))
}

func TestNilHolderFallsBackToDefaults(t *testing.T) {
	var holder *EngineConfigHolder
	assert.Equal(t, DefaultEngineConfig(), holder.Get())
}

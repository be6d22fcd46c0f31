package observability

import (
	"strings"

	"github.com/smallbiznis/ecoai/internal/config"
)

const defaultServiceName = "ecoai"

// Config is the observability view of the application config.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64

	// Features lists the optional integrations that are switched on, for the startup log.
	Features []string
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	ratio := cfg.Telemetry.SamplingRatio
	if ratio < 0 || ratio > 1 {
		ratio = 0.1
	}

	return Config{
		ServiceName:          serviceName,
		Environment:          strings.TrimSpace(cfg.Environment),
		Version:              strings.TrimSpace(cfg.AppVersion),
		LogLevel:             cfg.Telemetry.LogLevel,
		LogFormat:            cfg.Telemetry.LogFormat,
		OtelEnabled:          cfg.Telemetry.OtelEnabled,
		OtelExporterEndpoint: cfg.Telemetry.OTLPEndpoint,
		OtelExporterProtocol: cfg.Telemetry.OTLPProtocol,
		OtelSamplingRatio:    ratio,
		Features:             enabledFeatures(cfg),
	}
}

func enabledFeatures(cfg config.Config) []string {
	var features []string
	if cfg.Redis.Enabled() {
		features = append(features, "recalculation_lock")
		if cfg.RateLimit.Enabled {
			features = append(features, "ingest_rate_limit")
		}
	}
	if strings.TrimSpace(cfg.Notify.WebhookURL) != "" {
		features = append(features, "alert_webhook")
	}
	if len(cfg.Notify.KafkaBrokers) > 0 {
		features = append(features, "alert_kafka")
	}
	if cfg.SeedSampleData {
		features = append(features, "sample_data")
	}
	if cfg.Telemetry.OtelEnabled {
		features = append(features, "otel")
	}
	return features
}

func (c Config) Debug() bool {
	if c.LogLevel == "debug" {
		return true
	}
	switch strings.ToLower(c.Environment) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EngineConfig carries the tunable cut-offs used by the alert and simulation engines.
type EngineConfig struct {
	HighIntensityRegions  []string `mapstructure:"highIntensityRegions"`
	HighVolumeAiKwh       float64  `mapstructure:"highVolumeAiKwh"`
	NearThresholdPercent  float64  `mapstructure:"nearThresholdPercent"`
	SimulationBaselineKwh float64  `mapstructure:"simulationBaselineKwh"`
	ForecastBandLow       float64  `mapstructure:"forecastBandLow"`
	ForecastBandHigh      float64  `mapstructure:"forecastBandHigh"`
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		HighIntensityRegions:  []string{"IN", "AU", "CN"},
		HighVolumeAiKwh:       5000,
		NearThresholdPercent:  80,
		SimulationBaselineKwh: 1000,
		ForecastBandLow:       0.85,
		ForecastBandHigh:      1.15,
	}
}

// IsHighIntensityRegion reports whether region is in the configured high-intensity set.
func (c EngineConfig) IsHighIntensityRegion(region string) bool {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return false
	}
	for _, r := range c.HighIntensityRegions {
		if strings.ToUpper(strings.TrimSpace(r)) == region {
			return true
		}
	}
	return false
}

type EngineConfigHolder struct {
	current atomic.Value // holds EngineConfig
}

// NewStaticEngineConfigHolder returns a holder that never reloads.
func NewStaticEngineConfigHolder(cfg EngineConfig) *EngineConfigHolder {
	holder := &EngineConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewEngineConfigHolder(log *zap.Logger) (*EngineConfigHolder, error) {
	log = log.Named("engine-config")
	v := viper.New()

	v.SetConfigName("engine")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/ecoai/config")
	v.AddConfigPath("/etc/ecoai")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ECOAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultEngineConfig()
	v.SetDefault("engine.highIntensityRegions", defaults.HighIntensityRegions)
	v.SetDefault("engine.highVolumeAiKwh", defaults.HighVolumeAiKwh)
	v.SetDefault("engine.nearThresholdPercent", defaults.NearThresholdPercent)
	v.SetDefault("engine.simulationBaselineKwh", defaults.SimulationBaselineKwh)
	v.SetDefault("engine.forecastBandLow", defaults.ForecastBandLow)
	v.SetDefault("engine.forecastBandHigh", defaults.ForecastBandHigh)

	watch := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		watch = false
	}

	var cfg EngineConfig
	if err := v.UnmarshalKey("engine", &cfg); err != nil {
		return nil, err
	}
	if err := validateEngineConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticEngineConfigHolder(cfg)
	if !watch {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated EngineConfig
		if err := v.UnmarshalKey("engine", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateEngineConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *EngineConfigHolder) Get() EngineConfig {
	if h == nil {
		return DefaultEngineConfig()
	}
	return h.current.Load().(EngineConfig)
}

func validateEngineConfig(cfg EngineConfig) error {
	if cfg.HighVolumeAiKwh < 0 {
		return errors.New("engine.highVolumeAiKwh cannot be negative")
	}
	if cfg.NearThresholdPercent <= 0 || cfg.NearThresholdPercent > 100 {
		return errors.New("engine.nearThresholdPercent must be within (0, 100]")
	}
	if cfg.SimulationBaselineKwh < 0 {
		return errors.New("engine.simulationBaselineKwh cannot be negative")
	}
	if cfg.ForecastBandLow <= 0 || cfg.ForecastBandHigh < cfg.ForecastBandLow {
		return errors.New("engine.forecastBand is invalid")
	}
	return nil
}

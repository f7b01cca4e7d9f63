// Package common provides shared utilities for RatingEngine
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the rating analytics engine.
type Config struct {
	Environment string        `toml:"environment"`
	Logging     LoggingConfig `toml:"logging"`
	Engine      EngineConfig  `toml:"engine"`
	RTSI        RTSIConfig    `toml:"rtsi"`
	IRSI        IRSIConfig    `toml:"irsi"`
	MSCI        MSCIConfig    `toml:"msci"`
}

// EngineConfig holds AnalysisEngine orchestration configuration.
type EngineConfig struct {
	CacheTTLSeconds int  `toml:"cache_ttl_s" validate:"gte=0"`
	MaxWorkers      int  `toml:"max_workers" validate:"gte=1"`
	TimeoutSeconds  int  `toml:"timeout_s" validate:"gte=1"`
	Parallel        bool `toml:"parallel"`
}

// CacheTTL returns the cache lifetime as a duration.
func (c EngineConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Timeout returns the per-run wall-clock budget as a duration.
func (c EngineConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RTSIConfig holds RtsiCalculator configuration.
type RTSIConfig struct {
	MinDataPoints int        `toml:"min_data_points" validate:"gte=1"`
	PThreshold    float64    `toml:"p_threshold" validate:"gte=0,lte=1"`
	Weights       [3]float64 `toml:"weights"`
	BaseFloor     float64    `toml:"base_floor" validate:"gte=0,lte=100"`
	TimeWindow    int        `toml:"time_window" validate:"gte=1"`
	Enhanced      bool       `toml:"enhanced"`
}

// WeightsSum returns the sum of the three RTSI sub-score weights, which
// must equal 1 (consistency + significance + amplitude).
func (c RTSIConfig) WeightsSum() float64 {
	return c.Weights[0] + c.Weights[1] + c.Weights[2]
}

// IRSIConfig holds IrsiCalculator configuration.
type IRSIConfig struct {
	MinStocks int `toml:"min_stocks" validate:"gte=1"`
}

// MSCIConfig holds MsciCalculator configuration.
type MSCIConfig struct {
	MinRatedPerDay    int  `toml:"min_rated_per_day" validate:"gte=0"`
	UseEnhanced       bool `toml:"use_enhanced"`
	VolumeRatioJitter bool `toml:"volume_ratio_jitter"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string   `toml:"level" validate:"oneof=trace debug info warn error"`
	Format  string   `toml:"format"`
	Outputs []string `toml:"outputs"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "json",
			Outputs: []string{"console"},
		},
		Engine: EngineConfig{
			CacheTTLSeconds: 300,
			MaxWorkers:      4,
			TimeoutSeconds:  300,
			Parallel:        true,
		},
		RTSI: RTSIConfig{
			MinDataPoints: 3,
			PThreshold:    0.1,
			Weights:       [3]float64{0.3, 0.3, 0.4},
			BaseFloor:     5,
			TimeWindow:    60,
			Enhanced:      false,
		},
		IRSI: IRSIConfig{
			MinStocks: 2,
		},
		MSCI: MSCIConfig{
			MinRatedPerDay:    30,
			UseEnhanced:       false,
			VolumeRatioJitter: false,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("RATINGENGINE_ENV"); env != "" {
		config.Environment = env
	}
	if level := os.Getenv("RATINGENGINE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if v := os.Getenv("RATINGENGINE_MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.MaxWorkers = n
		}
	}
	if v := os.Getenv("RATINGENGINE_CACHE_TTL_S"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.CacheTTLSeconds = n
		}
	}
	if v := os.Getenv("RATINGENGINE_TIMEOUT_S"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("RATINGENGINE_PARALLEL"); v != "" {
		config.Engine.Parallel = strings.EqualFold(v, "true") || v == "1"
	}
}

var validate = validator.New()

// Validate checks configuration invariants beyond simple struct tags: the
// RTSI sub-score weights must sum to 1, per the consistency/significance/
// amplitude composite.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if sum := c.RTSI.WeightsSum(); sum < 1-1e-9 || sum > 1+1e-9 {
		return fmt.Errorf("invalid config: rtsi.weights must sum to 1, got %.6f", sum)
	}
	return nil
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

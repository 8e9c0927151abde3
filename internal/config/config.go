// Package config provides configuration loading for calendard.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (SERVER_PORT, ENGINE_MODEL, PIPELINE_MIN_COMPLETED_STEPS, ...)
//  2. YAML config file
//  3. Hardcoded defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the calendard daemon.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Engine   EngineConfig   `koanf:"engine"`
	Store    StoreConfig    `koanf:"store"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	Quality  QualityConfig  `koanf:"quality"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// EngineConfig holds AI engine settings. The engine talks to any
// OpenAI-compatible endpoint; provider selection is opaque to the pipeline.
type EngineConfig struct {
	BaseURL        string   `koanf:"base_url"`
	Model          string   `koanf:"model"`
	APIKey         Secret   `koanf:"api_key"`
	Temperature    float64  `koanf:"temperature"`
	MaxTokens      int      `koanf:"max_tokens"`
	RequestTimeout Duration `koanf:"request_timeout"`
	RateLimit      float64  `koanf:"rate_limit"`
	RateBurst      int      `koanf:"rate_burst"`
}

// StoreConfig holds the content-planning store settings.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// PipelineConfig holds orchestration settings.
type PipelineConfig struct {
	// MinCompletedSteps is the minimum number of steps that must complete
	// successfully for a run to assemble a calendar.
	MinCompletedSteps int `koanf:"min_completed_steps"`

	// StepTimeout bounds each external call made on behalf of a step.
	StepTimeout Duration `koanf:"step_timeout"`
}

// QualityConfig holds quality gate thresholds.
type QualityConfig struct {
	Acceptable float64 `koanf:"acceptable"`
	Good       float64 `koanf:"good"`
	Excellent  float64 `koanf:"excellent"`
}

// NewDefaultConfig returns a configuration with production-ready defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8088,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Engine: EngineConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			Temperature:    0.4,
			MaxTokens:      4096,
			RequestTimeout: Duration(60 * time.Second),
			RateLimit:      2,
			RateBurst:      4,
		},
		Store: StoreConfig{
			Path: "calendard.db",
		},
		Pipeline: PipelineConfig{
			MinCompletedSteps: 9,
			StepTimeout:       Duration(60 * time.Second),
		},
		Quality: QualityConfig{
			Acceptable: 0.7,
			Good:       0.8,
			Excellent:  0.9,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.Engine.BaseURL == "" {
		return fmt.Errorf("engine.base_url is required")
	}
	if c.Engine.Model == "" {
		return fmt.Errorf("engine.model is required")
	}
	if c.Engine.RequestTimeout.Duration() <= 0 {
		return fmt.Errorf("engine.request_timeout must be positive")
	}
	if c.Engine.RateLimit <= 0 {
		return fmt.Errorf("engine.rate_limit must be positive")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if c.Pipeline.MinCompletedSteps < 1 || c.Pipeline.MinCompletedSteps > 12 {
		return fmt.Errorf("pipeline.min_completed_steps must be between 1 and 12, got %d", c.Pipeline.MinCompletedSteps)
	}
	if c.Pipeline.StepTimeout.Duration() <= 0 {
		return fmt.Errorf("pipeline.step_timeout must be positive")
	}
	if err := validateThreshold("quality.acceptable", c.Quality.Acceptable); err != nil {
		return err
	}
	if err := validateThreshold("quality.good", c.Quality.Good); err != nil {
		return err
	}
	if err := validateThreshold("quality.excellent", c.Quality.Excellent); err != nil {
		return err
	}
	if c.Quality.Acceptable > c.Quality.Good || c.Quality.Good > c.Quality.Excellent {
		return fmt.Errorf("quality thresholds must be ordered acceptable <= good <= excellent")
	}
	return nil
}

func validateThreshold(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %v", name, v)
	}
	return nil
}

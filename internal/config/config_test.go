package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 9, cfg.Pipeline.MinCompletedSteps)
	assert.Equal(t, 60*time.Second, cfg.Pipeline.StepTimeout.Duration())
	assert.Equal(t, 0.7, cfg.Quality.Acceptable)
	assert.Equal(t, 0.8, cfg.Quality.Good)
	assert.Equal(t, 0.9, cfg.Quality.Excellent)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"missing model", func(c *Config) { c.Engine.Model = "" }, "engine.model"},
		{"missing base url", func(c *Config) { c.Engine.BaseURL = "" }, "engine.base_url"},
		{"zero timeout", func(c *Config) { c.Engine.RequestTimeout = 0 }, "engine.request_timeout"},
		{"zero rate", func(c *Config) { c.Engine.RateLimit = 0 }, "engine.rate_limit"},
		{"missing store path", func(c *Config) { c.Store.Path = "" }, "store.path"},
		{"min steps too high", func(c *Config) { c.Pipeline.MinCompletedSteps = 13 }, "min_completed_steps"},
		{"threshold out of range", func(c *Config) { c.Quality.Excellent = 1.5 }, "quality.excellent"},
		{"unordered thresholds", func(c *Config) { c.Quality.Acceptable = 0.95 }, "ordered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSecret_Redaction(t *testing.T) {
	s := Secret("sk-super-secret")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "sk-super-secret", s.Value())
	assert.True(t, s.IsSet())

	b, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"[REDACTED]"`, string(b))

	empty := Secret("")
	assert.Equal(t, "", empty.String())
	assert.False(t, empty.IsSet())
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("45s")))
	assert.Equal(t, 45*time.Second, d.Duration())

	assert.Error(t, d.UnmarshalText([]byte("-5s")))
	assert.Error(t, d.UnmarshalText([]byte("not-a-duration")))
}

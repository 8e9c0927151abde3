package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, 9, cfg.Pipeline.MinCompletedSteps)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9999
pipeline:
  min_completed_steps: 10
  step_timeout: 30s
engine:
  model: gpt-4o
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Pipeline.MinCompletedSteps)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.StepTimeout.Duration())
	assert.Equal(t, "gpt-4o", cfg.Engine.Model)
	// Untouched sections keep defaults.
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9999\n")
	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("ENGINE_MODEL", "gemini-pro")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "gemini-pro", cfg.Engine.Model)
}

func TestLoad_RejectsInsecurePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9999\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := writeConfigFile(t, "pipeline:\n  min_completed_steps: 40\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_completed_steps")
}

func TestTransformEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", transformEnvKey("SERVER_PORT"))
	assert.Equal(t, "engine.request_timeout", transformEnvKey("ENGINE_REQUEST_TIMEOUT"))
	assert.Equal(t, "pipeline.min_completed_steps", transformEnvKey("PIPELINE_MIN_COMPLETED_STEPS"))
	assert.Equal(t, "", transformEnvKey("PATH"), "unrelated variables are dropped")
}

package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{Level: "info", Format: "json"}.Validate())
	assert.NoError(t, Config{Level: "trace", Format: "console"}.Validate())
	assert.Error(t, Config{Level: "loud", Format: "json"}.Validate())
	assert.Error(t, Config{Level: "info", Format: "xml"}.Validate())
}

func TestNew(t *testing.T) {
	logger, err := New(Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger.Zap())

	_, err = New(Config{Level: "nope", Format: "json"})
	assert.Error(t, err)
}

func TestLogger_ContextFields(t *testing.T) {
	logger, logs := NewTestLogger()

	ctx := WithRunID(context.Background(), "run-123")
	ctx = WithRequestID(ctx, "req-456")
	logger.Info(ctx, "pipeline started", zap.String("phase", "foundation"))

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "run-123", fields["run.id"])
	assert.Equal(t, "req-456", fields["request.id"])
	assert.Equal(t, "foundation", fields["phase"])
}

func TestLogger_TraceLevel(t *testing.T) {
	logger, logs := NewTestLogger()
	logger.Trace(context.Background(), "raw prompt")
	require.Len(t, logs.All(), 1)
	assert.Equal(t, TraceLevel, logs.All()[0].Level)

	// Filtered when the core is above trace.
	filtered, filteredLogs := NewTestLoggerAt(zapcore.InfoLevel)
	filtered.Trace(context.Background(), "raw prompt")
	assert.Empty(t, filteredLogs.All())
}

func TestLevelFromString(t *testing.T) {
	l, err := LevelFromString("trace")
	require.NoError(t, err)
	assert.Equal(t, TraceLevel, l)

	l, err = LevelFromString("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, l)

	_, err = LevelFromString("bogus")
	assert.Error(t, err)
}

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewTestLogger returns a logger whose output is captured by the returned
// observer, for asserting on log entries in tests.
func NewTestLogger() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(TraceLevel)
	return &Logger{zap: zap.New(core)}, logs
}

// NewTestLoggerAt captures only entries at or above the given level.
func NewTestLoggerAt(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &Logger{zap: zap.New(core)}, logs
}

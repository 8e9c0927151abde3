// Package logging wraps zap with context-aware logging for calendard.
//
// Loggers extract correlation fields (run ID, request ID, OTEL trace/span
// IDs) from the context on every call, so log lines from a single
// generation run can be stitched together without threading fields by hand.
package logging

package orchestrator

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
	"github.com/AJaySi/AI-Writer-sub015/internal/logging"
)

// runMetrics holds the orchestrator's OTEL instruments.
type runMetrics struct {
	meter        metric.Meter
	runsTotal    metric.Int64Counter
	activeRuns   metric.Int64UpDownCounter
	runDuration  metric.Float64Histogram
	stepDuration metric.Float64Histogram
}

func newRunMetrics(logger *logging.Logger) *runMetrics {
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &runMetrics{meter: otel.Meter(instrumentationName)}

	var err error
	m.runsTotal, err = m.meter.Int64Counter(
		"calendard.runs_total",
		metric.WithDescription("Completed generation runs labeled by outcome (assembled, insufficient, cancelled, error)."),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		logger.Warn(context.Background(), "failed to create runs counter", zap.Error(err))
	}

	m.activeRuns, err = m.meter.Int64UpDownCounter(
		"calendard.active_runs",
		metric.WithDescription("Number of generation runs currently in flight."),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		logger.Warn(context.Background(), "failed to create active runs gauge", zap.Error(err))
	}

	m.runDuration, err = m.meter.Float64Histogram(
		"calendard.run_duration_seconds",
		metric.WithDescription("End-to-end generation run duration in seconds, labeled by outcome."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1, 5, 15, 30, 60, 120, 300, 600),
	)
	if err != nil {
		logger.Warn(context.Background(), "failed to create run duration histogram", zap.Error(err))
	}

	m.stepDuration, err = m.meter.Float64Histogram(
		"calendard.step_duration_seconds",
		metric.WithDescription("Step execution duration in seconds, labeled by step and status."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120),
	)
	if err != nil {
		logger.Warn(context.Background(), "failed to create step duration histogram", zap.Error(err))
	}

	return m
}

func (m *runMetrics) runStarted(ctx context.Context) {
	if m.activeRuns != nil {
		m.activeRuns.Add(ctx, 1)
	}
}

func (m *runMetrics) runEnded(ctx context.Context, outcome string, elapsed time.Duration) {
	if m.activeRuns != nil {
		m.activeRuns.Add(ctx, -1)
	}
	if m.runsTotal != nil {
		m.runsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", outcome),
		))
	}
	if m.runDuration != nil {
		m.runDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
			attribute.String("outcome", outcome),
		))
	}
}

func (m *runMetrics) stepExecuted(ctx context.Context, id calendar.StepID, status calendar.StepStatus, elapsed time.Duration) {
	if m.stepDuration != nil {
		m.stepDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
			attribute.String("step", string(id)),
			attribute.String("status", string(status)),
		))
	}
}

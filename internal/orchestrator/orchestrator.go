package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
	"github.com/AJaySi/AI-Writer-sub015/internal/logging"
	"github.com/AJaySi/AI-Writer-sub015/internal/quality"
	"github.com/AJaySi/AI-Writer-sub015/internal/steps"
)

const instrumentationName = "github.com/AJaySi/AI-Writer-sub015/internal/orchestrator"

// Orchestrator drives generation runs. Safe for concurrent use: each run
// owns its own execution context and no state is shared between runs.
type Orchestrator struct {
	steps         []steps.Step
	evaluator     quality.Evaluator
	weights       StepWeights
	minCompleted  int
	weakThreshold float64
	stepTimeout   time.Duration
	progress      ProgressFunc
	logger        *logging.Logger
	tracer        trace.Tracer
	metrics       *runMetrics
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithEvaluator sets the quality gate evaluator. Without one, steps are
// recorded unscored.
func WithEvaluator(e quality.Evaluator) Option {
	return func(o *Orchestrator) { o.evaluator = e }
}

// WithMinCompletedSteps sets the minimum number of completed steps a run
// needs to assemble a calendar.
func WithMinCompletedSteps(n int) Option {
	return func(o *Orchestrator) { o.minCompleted = n }
}

// WithStepWeights overrides the aggregate-score weight table.
func WithStepWeights(w StepWeights) Option {
	return func(o *Orchestrator) { o.weights = w }
}

// WithWeakThreshold sets the quality score below which a completed step is
// still reported as weak.
func WithWeakThreshold(t float64) Option {
	return func(o *Orchestrator) { o.weakThreshold = t }
}

// WithStepTimeout bounds each step's execution, on top of whatever
// per-call timeout the engine applies internally.
func WithStepTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.stepTimeout = d }
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Orchestrator) { o.progress = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New creates an orchestrator over the given step sequence.
func New(stepList []steps.Step, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		steps:         stepList,
		weights:       DefaultStepWeights(),
		minCompleted:  9,
		weakThreshold: 0.7,
		logger:        logging.NewNop(),
		tracer:        otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.metrics = newRunMetrics(o.logger)
	return o
}

// Run executes the full pipeline for one generation request.
//
// Every step gets a recorded result regardless of outcome; a failed step
// degrades the run rather than halting it. If the context is cancelled the
// orchestrator stops scheduling further steps and returns the context
// error; already-completed results are discarded with the abandoned
// context, there is nothing to roll back.
func (o *Orchestrator) Run(ctx context.Context, userID, strategyID string, cfg calendar.Config) (*calendar.FinalCalendar, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx, span := o.tracer.Start(ctx, "orchestrator.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run_id", runID),
		attribute.String("user_id", userID),
		attribute.String("strategy_id", strategyID),
		attribute.Int("duration_weeks", cfg.DurationWeeks),
	)

	o.metrics.runStarted(ctx)
	start := time.Now()

	ec := calendar.NewExecutionContext(userID, strategyID, cfg)
	state := StateNotStarted
	degraded := false
	total := len(o.steps)

	o.logger.Info(ctx, "generation run started",
		zap.String("user_id", userID),
		zap.String("strategy_id", strategyID),
		zap.Int("steps", total),
	)

	for i, step := range o.steps {
		if err := ctx.Err(); err != nil {
			state = StateFailed
			o.metrics.runEnded(ctx, "cancelled", time.Since(start))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			o.logger.Warn(ctx, "run cancelled", zap.String("state", string(state)), zap.Error(err))
			return nil, err
		}

		if next := stateForPhase(step.Phase()); next != state {
			state = next
			o.logger.Info(ctx, "entering phase", zap.String("state", string(state)))
		}
		o.report(Progress{
			RunID:    runID,
			State:    state,
			StepID:   step.ID(),
			StepName: step.Name(),
			Percent:  (i * 100) / total,
		})

		result := o.executeStep(ctx, step, ec)
		if !result.Completed() {
			degraded = true
		}
		if err := ec.Record(result); err != nil {
			// A duplicate step ID is a wiring bug, not a degraded run.
			state = StateFailed
			o.metrics.runEnded(ctx, "error", time.Since(start))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		o.metrics.stepExecuted(ctx, step.ID(), result.Status, result.CompletedAt.Sub(result.StartedAt))

		o.report(Progress{
			RunID:    runID,
			State:    state,
			StepID:   step.ID(),
			StepName: step.Name(),
			Status:   result.Status,
			Percent:  ((i + 1) * 100) / total,
		})
	}

	completed := len(ec.CompletedSteps())
	if completed < o.minCompleted {
		state = StateFailed
		err := &calendar.InsufficientCompletionError{
			Completed: completed,
			Required:  o.minCompleted,
			Missing:   ec.FailedSteps(),
		}
		o.metrics.runEnded(ctx, "insufficient", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Error(ctx, "run failed: insufficient completion",
			zap.Int("completed", completed),
			zap.Int("required", o.minCompleted),
		)
		return nil, err
	}

	cal := o.assemble(runID, ec, degraded, time.Since(start))
	state = StateAssembled
	o.metrics.runEnded(ctx, "assembled", time.Since(start))
	span.SetAttributes(
		attribute.Bool("degraded", cal.Degraded),
		attribute.Float64("aggregate_quality", cal.AggregateQuality),
	)
	o.logger.Info(ctx, "generation run assembled",
		zap.String("state", string(state)),
		zap.Bool("degraded", cal.Degraded),
		zap.Float64("aggregate_quality", cal.AggregateQuality),
		zap.Duration("duration", cal.Duration),
	)
	return cal, nil
}

// executeStep runs one step and scores it. Always returns a result: a
// dependency violation or any other step-level error degrades to a failed
// result here so the pipeline keeps moving.
func (o *Orchestrator) executeStep(ctx context.Context, step steps.Step, ec *calendar.ExecutionContext) *calendar.StepResult {
	started := time.Now()
	stepCtx := ctx
	if o.stepTimeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, o.stepTimeout)
		defer cancel()
	}
	result, err := step.Execute(stepCtx, ec)
	if err != nil {
		o.logger.Warn(ctx, "step failed",
			zap.String("step", string(step.ID())),
			zap.Error(err),
		)
		result = &calendar.StepResult{
			StepID:      step.ID(),
			Status:      calendar.StatusFailed,
			Error:       err.Error(),
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
	}

	if o.evaluator != nil && result.Completed() {
		gate := o.evaluator.Validate(ctx, step.ID(), result, ec)
		result.Quality = gate
		result.QualityScore = gate.AggregateScore
	}
	return result
}

func (o *Orchestrator) report(p Progress) {
	if o.progress != nil {
		o.progress(p)
	}
}

package steps

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AJaySi/AI-Writer-sub015/internal/aiengine"
	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
	"github.com/AJaySi/AI-Writer-sub015/internal/datasource"
	"github.com/AJaySi/AI-Writer-sub015/internal/logging"
)

// Step is one unit of the pipeline.
type Step interface {
	// ID returns the step identifier ("step_01" .. "step_12").
	ID() calendar.StepID

	// Phase returns the phase grouping the step belongs to.
	Phase() calendar.Phase

	// Name returns a human-readable step name.
	Name() string

	// Dependencies returns the step IDs that must have completed before
	// this step may execute.
	Dependencies() []calendar.StepID

	// Execute runs the step against the accumulated context.
	//
	// A missing dependency returns a *calendar.MissingDependencyError
	// before any external call is attempted. Every other failure is
	// absorbed into a StepResult with status failed; Execute does not
	// raise for adapter or engine errors.
	Execute(ctx context.Context, ec *calendar.ExecutionContext) (*calendar.StepResult, error)
}

// llmStep is the shared implementation behind all 12 steps.
type llmStep struct {
	id           calendar.StepID
	phase        calendar.Phase
	name         string
	deps         []calendar.StepID
	requiredKeys []string
	adapters     []datasource.Adapter
	instruction  string
	summary      string

	engine aiengine.Engine
	logger *logging.Logger
}

func (s *llmStep) ID() calendar.StepID             { return s.id }
func (s *llmStep) Phase() calendar.Phase           { return s.phase }
func (s *llmStep) Name() string                    { return s.name }
func (s *llmStep) Dependencies() []calendar.StepID { return s.deps }

func (s *llmStep) Execute(ctx context.Context, ec *calendar.ExecutionContext) (*calendar.StepResult, error) {
	started := time.Now()

	// Dependency check comes first: no adapter or engine call may happen
	// for a step whose prerequisites are absent.
	for _, dep := range s.deps {
		if !ec.HasCompleted(dep) {
			return nil, &calendar.MissingDependencyError{StepID: s.id, Dependency: dep}
		}
	}

	inputs := make(map[string]any)
	for _, adapter := range s.adapters {
		fetched, err := adapter.Fetch(ctx, ec.UserID(), ec.StrategyID(), ec)
		if err != nil {
			s.logger.Warn(ctx, "step data source unavailable",
				zap.String("step", string(s.id)),
				zap.String("adapter", adapter.Name()),
				zap.Error(err),
			)
			// The fields this adapter would have supplied stay absent.
			return s.failed(started, err), nil
		}
		for k, v := range fetched {
			inputs[k] = v
		}
	}

	prompt := buildPrompt(s.instruction, s.requiredKeys, inputs, priorOutputs(ec, s.deps))
	data, err := s.engine.Generate(ctx, prompt, s.requiredKeys)
	if err != nil {
		s.logger.Warn(ctx, "step generation failed",
			zap.String("step", string(s.id)),
			zap.Error(err),
		)
		return s.failed(started, err), nil
	}

	return &calendar.StepResult{
		StepID:      s.id,
		Status:      calendar.StatusCompleted,
		Data:        data,
		Summary:     s.summary,
		StartedAt:   started,
		CompletedAt: time.Now(),
	}, nil
}

// failed builds a best-effort failed result. It carries no fabricated
// values for the data the step could not obtain.
func (s *llmStep) failed(started time.Time, err error) *calendar.StepResult {
	return &calendar.StepResult{
		StepID:      s.id,
		Status:      calendar.StatusFailed,
		Summary:     s.summary,
		Error:       err.Error(),
		StartedAt:   started,
		CompletedAt: time.Now(),
	}
}

// priorOutputs gathers the data maps of the step's completed dependencies.
func priorOutputs(ec *calendar.ExecutionContext, deps []calendar.StepID) map[calendar.StepID]map[string]any {
	out := make(map[calendar.StepID]map[string]any, len(deps))
	for _, dep := range deps {
		if data := ec.Data(dep); data != nil {
			out[dep] = data
		}
	}
	return out
}

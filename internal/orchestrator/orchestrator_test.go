package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
	"github.com/AJaySi/AI-Writer-sub015/internal/logging"
	"github.com/AJaySi/AI-Writer-sub015/internal/steps"
)

// fakeStep is a scriptable pipeline step for orchestrator tests.
type fakeStep struct {
	id      calendar.StepID
	phase   calendar.Phase
	execute func(ctx context.Context, ec *calendar.ExecutionContext) (*calendar.StepResult, error)
}

func (s *fakeStep) ID() calendar.StepID             { return s.id }
func (s *fakeStep) Phase() calendar.Phase           { return s.phase }
func (s *fakeStep) Name() string                    { return string(s.id) }
func (s *fakeStep) Dependencies() []calendar.StepID { return nil }

func (s *fakeStep) Execute(ctx context.Context, ec *calendar.ExecutionContext) (*calendar.StepResult, error) {
	return s.execute(ctx, ec)
}

// pipeline builds 12 scripted steps. Steps named in failing fail; steps
// named in raising return an error from Execute; every other step
// completes with the data from dataFor, if provided.
func pipeline(t *testing.T, failing, raising map[calendar.StepID]bool, dataFor map[calendar.StepID]map[string]any, executed *[]calendar.StepID) []steps.Step {
	t.Helper()

	phases := calendar.AllPhases()
	out := make([]steps.Step, 0, 12)
	for i, id := range calendar.AllStepIDs() {
		id := id
		out = append(out, &fakeStep{
			id:    id,
			phase: phases[i/3],
			execute: func(ctx context.Context, ec *calendar.ExecutionContext) (*calendar.StepResult, error) {
				if executed != nil {
					*executed = append(*executed, id)
				}
				if raising[id] {
					return nil, &calendar.MissingDependencyError{StepID: id, Dependency: calendar.Step01}
				}
				started := time.Now()
				if failing[id] {
					return &calendar.StepResult{
						StepID:      id,
						Status:      calendar.StatusFailed,
						Error:       "engine unavailable",
						StartedAt:   started,
						CompletedAt: time.Now(),
					}, nil
				}
				return &calendar.StepResult{
					StepID:      id,
					Status:      calendar.StatusCompleted,
					Data:        dataFor[id],
					Summary:     fmt.Sprintf("summary for %s", id),
					StartedAt:   started,
					CompletedAt: time.Now(),
				}, nil
			},
		})
	}
	return out
}

// scriptedEvaluator returns a fixed score per step, defaulting to 1.0.
type scriptedEvaluator struct {
	scores map[calendar.StepID]float64
}

func (e *scriptedEvaluator) Validate(_ context.Context, stepID calendar.StepID, _ *calendar.StepResult, _ *calendar.ExecutionContext) *calendar.QualityGateResult {
	score := 1.0
	if s, ok := e.scores[stepID]; ok {
		score = s
	}
	return &calendar.QualityGateResult{
		StepID:         stepID,
		Gates:          map[string]calendar.GateScore{"completeness": {Passed: score >= 0.7, Score: score}},
		AggregateScore: score,
		Passed:         score >= 0.7,
		EvaluatedAt:    time.Now(),
	}
}

func validConfig() calendar.Config {
	return calendar.Config{
		DurationWeeks:    4,
		Platforms:        []string{"linkedin", "twitter"},
		PostingFrequency: 3,
	}
}

func TestRunAllStepsComplete(t *testing.T) {
	var executed []calendar.StepID
	o := New(
		pipeline(t, nil, nil, nil, &executed),
		WithEvaluator(&scriptedEvaluator{}),
		WithLogger(logging.NewNop()),
	)

	cal, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.NoError(t, err)
	require.NotNil(t, cal)

	assert.Equal(t, calendar.AllStepIDs(), executed)
	assert.False(t, cal.Degraded)
	assert.Empty(t, cal.WeakSteps)
	assert.NotEmpty(t, cal.RunID)
	assert.Equal(t, "user-1", cal.UserID)
	assert.Equal(t, "strategy-1", cal.StrategyID)
	assert.Len(t, cal.StepSummaries, 12)
	assert.InDelta(t, 1.0, cal.AggregateQuality, 1e-9)
}

func TestRunSingleFailureDegrades(t *testing.T) {
	failing := map[calendar.StepID]bool{calendar.Step06: true}
	o := New(
		pipeline(t, failing, nil, nil, nil),
		WithEvaluator(&scriptedEvaluator{}),
	)

	cal, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.NoError(t, err)
	require.NotNil(t, cal)

	assert.True(t, cal.Degraded)
	assert.Equal(t, []calendar.StepID{calendar.Step06}, cal.WeakSteps)
	// The failed step still has a recorded summary slot; quality drops by
	// its zero contribution in the weighted mean.
	assert.Less(t, cal.AggregateQuality, 1.0)
}

func TestRunMissingDependencyDegradesNotHalts(t *testing.T) {
	// A step whose Execute raises (dependency violation) degrades that
	// step only; the remaining steps still run.
	raising := map[calendar.StepID]bool{calendar.Step04: true}
	var executed []calendar.StepID
	o := New(pipeline(t, nil, raising, nil, &executed))

	cal, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.NoError(t, err)

	assert.Len(t, executed, 12)
	assert.True(t, cal.Degraded)
	assert.Contains(t, cal.WeakSteps, calendar.Step04)
}

func TestRunInsufficientCompletion(t *testing.T) {
	failing := make(map[calendar.StepID]bool)
	for _, id := range calendar.AllStepIDs()[:8] {
		failing[id] = true
	}
	o := New(pipeline(t, failing, nil, nil, nil), WithEvaluator(&scriptedEvaluator{}))

	cal, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.Error(t, err)
	assert.Nil(t, cal)

	var insufficient *calendar.InsufficientCompletionError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 4, insufficient.Completed)
	assert.Equal(t, 9, insufficient.Required)
	assert.Equal(t, calendar.AllStepIDs()[:8], insufficient.Missing)
}

func TestRunCustomMinCompletedSteps(t *testing.T) {
	failing := make(map[calendar.StepID]bool)
	for _, id := range calendar.AllStepIDs()[:8] {
		failing[id] = true
	}
	o := New(pipeline(t, failing, nil, nil, nil), WithMinCompletedSteps(4))

	cal, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.NoError(t, err)
	assert.True(t, cal.Degraded)
}

func TestRunCancellationStopsScheduling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var executed []calendar.StepID

	stepList := pipeline(t, nil, nil, nil, &executed)
	// Cancel during step 3; steps 4-12 must never execute.
	stepList[2] = &fakeStep{
		id:    calendar.Step03,
		phase: calendar.PhaseFoundation,
		execute: func(_ context.Context, _ *calendar.ExecutionContext) (*calendar.StepResult, error) {
			executed = append(executed, calendar.Step03)
			cancel()
			return &calendar.StepResult{
				StepID:      calendar.Step03,
				Status:      calendar.StatusCompleted,
				StartedAt:   time.Now(),
				CompletedAt: time.Now(),
			}, nil
		},
	}

	o := New(stepList)
	cal, err := o.Run(ctx, "user-1", "strategy-1", validConfig())
	require.Error(t, err)
	assert.Nil(t, cal)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []calendar.StepID{calendar.Step01, calendar.Step02, calendar.Step03}, executed)
}

func TestRunStepTimeoutBoundsEachStep(t *testing.T) {
	var sawDeadline bool
	stepList := pipeline(t, nil, nil, nil, nil)
	stepList[0] = &fakeStep{
		id:    calendar.Step01,
		phase: calendar.PhaseFoundation,
		execute: func(ctx context.Context, _ *calendar.ExecutionContext) (*calendar.StepResult, error) {
			_, sawDeadline = ctx.Deadline()
			return &calendar.StepResult{
				StepID:      calendar.Step01,
				Status:      calendar.StatusCompleted,
				StartedAt:   time.Now(),
				CompletedAt: time.Now(),
			}, nil
		},
	}

	o := New(stepList, WithStepTimeout(time.Minute))
	_, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.NoError(t, err)
	assert.True(t, sawDeadline, "step context must carry the configured deadline")
}

func TestRunInvalidConfig(t *testing.T) {
	var executed []calendar.StepID
	o := New(pipeline(t, nil, nil, nil, &executed))

	cal, err := o.Run(context.Background(), "user-1", "strategy-1", calendar.Config{DurationWeeks: 0})
	require.Error(t, err)
	assert.Nil(t, cal)
	assert.Empty(t, executed)
}

func TestRunWeightedAggregate(t *testing.T) {
	// Foundation steps carry weight 1.5; pull step 1 down and verify the
	// aggregate reflects the heavier weight.
	eval := &scriptedEvaluator{scores: map[calendar.StepID]float64{calendar.Step01: 0.0}}
	o := New(pipeline(t, nil, nil, nil, nil), WithEvaluator(eval))

	cal, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.NoError(t, err)

	// Total weight 3*1.5 + 9*1.0 = 13.5; step 1 contributes 0.
	want := 12.0 / 13.5
	assert.InDelta(t, want, cal.AggregateQuality, 1e-9)
}

func TestRunLowScoreStepIsWeak(t *testing.T) {
	eval := &scriptedEvaluator{scores: map[calendar.StepID]float64{calendar.Step09: 0.4}}
	o := New(pipeline(t, nil, nil, nil, nil), WithEvaluator(eval))

	cal, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.NoError(t, err)

	assert.False(t, cal.Degraded, "low quality is weak, not failed")
	assert.Equal(t, []calendar.StepID{calendar.Step09}, cal.WeakSteps)
}

func TestRunProgressReporting(t *testing.T) {
	var updates []Progress
	o := New(
		pipeline(t, nil, nil, nil, nil),
		WithProgress(func(p Progress) { updates = append(updates, p) }),
	)

	_, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.NoError(t, err)

	// Two updates per step: one before, one after with the status.
	require.Len(t, updates, 24)
	assert.Equal(t, 0, updates[0].Percent)
	assert.Equal(t, calendar.Step01, updates[0].StepID)
	assert.Equal(t, StatePhase1, updates[0].State)
	last := updates[len(updates)-1]
	assert.Equal(t, 100, last.Percent)
	assert.Equal(t, calendar.Step12, last.StepID)
	assert.Equal(t, calendar.StatusCompleted, last.Status)
	assert.Equal(t, StatePhase4, last.State)
}

func TestRunScheduleAssembly(t *testing.T) {
	dataFor := map[calendar.StepID]map[string]any{
		calendar.Step04: {"posting_days": []any{"Monday", "Wednesday", "Friday"}},
		calendar.Step05: {"weekly_focus": []any{"education", "community"}},
		calendar.Step07: {"weekly_themes": []any{"getting started", "deep dives", "case studies", "recap"}},
		calendar.Step08: {"daily_schedule": []any{
			map[string]any{"title": "Why onboarding matters"},
			map[string]any{"title": "Three setup mistakes"},
		}},
	}
	o := New(pipeline(t, nil, nil, dataFor, nil), WithEvaluator(&scriptedEvaluator{}))

	cal, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.NoError(t, err)

	require.Len(t, cal.Schedule, 4*3)
	first := cal.Schedule[0]
	assert.Equal(t, 1, first.Week)
	assert.Equal(t, "Monday", first.Day)
	assert.Equal(t, "linkedin", first.Platform)
	assert.Equal(t, "getting started", first.Theme)
	assert.Equal(t, "education", first.Pillar)
	assert.Equal(t, "Why onboarding matters", first.Title)

	// Themes rotate weekly, platforms rotate per slot.
	assert.Equal(t, "deep dives", cal.Schedule[3].Theme)
	assert.Equal(t, "twitter", cal.Schedule[1].Platform)
}

func TestRunNoEvaluatorLeavesStepsUnscored(t *testing.T) {
	o := New(pipeline(t, nil, nil, nil, nil))

	cal, err := o.Run(context.Background(), "user-1", "strategy-1", validConfig())
	require.NoError(t, err)

	// Every step scores zero without an evaluator, so all are weak and
	// the aggregate bottoms out.
	assert.Zero(t, cal.AggregateQuality)
	assert.Len(t, cal.WeakSteps, 12)
	assert.False(t, cal.Degraded)
}

func TestStateForPhase(t *testing.T) {
	assert.Equal(t, StatePhase1, stateForPhase(calendar.PhaseFoundation))
	assert.Equal(t, StatePhase2, stateForPhase(calendar.PhaseStructure))
	assert.Equal(t, StatePhase3, stateForPhase(calendar.PhaseContent))
	assert.Equal(t, StatePhase4, stateForPhase(calendar.PhaseOptimization))
	assert.Equal(t, StateFailed, stateForPhase(calendar.Phase("bogus")))
}

func TestDefaultStepWeights(t *testing.T) {
	w := DefaultStepWeights()
	require.Len(t, w, 12)
	assert.Equal(t, 1.5, w[calendar.Step01])
	assert.Equal(t, 1.5, w[calendar.Step03])
	assert.Equal(t, 1.0, w[calendar.Step04])
	assert.Equal(t, 1.0, w[calendar.Step12])
}

package orchestrator

import (
	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
)

// RunState is the orchestrator's position in the pipeline state machine.
type RunState string

const (
	StateNotStarted RunState = "not_started"
	StatePhase1     RunState = "phase_1"
	StatePhase2     RunState = "phase_2"
	StatePhase3     RunState = "phase_3"
	StatePhase4     RunState = "phase_4"
	StateAssembled  RunState = "assembled"
	StateFailed     RunState = "failed"
)

// stateForPhase maps a step's phase to the corresponding run state.
func stateForPhase(p calendar.Phase) RunState {
	switch p {
	case calendar.PhaseFoundation:
		return StatePhase1
	case calendar.PhaseStructure:
		return StatePhase2
	case calendar.PhaseContent:
		return StatePhase3
	case calendar.PhaseOptimization:
		return StatePhase4
	default:
		return StateFailed
	}
}

// Progress reports step-level progress during a run.
type Progress struct {
	RunID    string              `json:"run_id"`
	State    RunState            `json:"state"`
	StepID   calendar.StepID     `json:"step_id"`
	StepName string              `json:"step_name"`
	Status   calendar.StepStatus `json:"status,omitempty"`
	Percent  int                 `json:"percent"`
}

// ProgressFunc receives progress updates during execution.
type ProgressFunc func(Progress)

// StepWeights is the per-step weight table for the aggregate quality
// score. Injected so tests can override it.
type StepWeights map[calendar.StepID]float64

// DefaultStepWeights weights the foundation steps higher: strategy
// analysis errors compound through every later step.
func DefaultStepWeights() StepWeights {
	w := make(StepWeights, 12)
	for _, id := range calendar.AllStepIDs() {
		w[id] = 1.0
	}
	w[calendar.Step01] = 1.5
	w[calendar.Step02] = 1.5
	w[calendar.Step03] = 1.5
	return w
}

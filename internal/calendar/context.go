package calendar

import "fmt"

// ExecutionContext accumulates step results for a single generation run.
//
// It is owned by exactly one in-flight run and is not safe for concurrent
// use; the orchestrator executes steps strictly sequentially. Results are
// append-only: recording a step ID twice is an error, so earlier steps'
// outputs are stable references for later steps.
type ExecutionContext struct {
	userID     string
	strategyID string
	config     Config

	order   []StepID
	results map[StepID]*StepResult
}

// NewExecutionContext creates an empty context for one run.
func NewExecutionContext(userID, strategyID string, cfg Config) *ExecutionContext {
	return &ExecutionContext{
		userID:     userID,
		strategyID: strategyID,
		config:     cfg,
		results:    make(map[StepID]*StepResult, 12),
	}
}

// UserID returns the user the run belongs to.
func (ec *ExecutionContext) UserID() string { return ec.userID }

// StrategyID returns the content strategy the run targets.
func (ec *ExecutionContext) StrategyID() string { return ec.strategyID }

// Config returns the calendar configuration for the run.
func (ec *ExecutionContext) Config() Config { return ec.config }

// Record appends a step result. Returns an error if the step already has
// a result or the result is nil.
func (ec *ExecutionContext) Record(result *StepResult) error {
	if result == nil {
		return fmt.Errorf("cannot record nil step result")
	}
	if _, ok := ec.results[result.StepID]; ok {
		return fmt.Errorf("step %s already has a recorded result", result.StepID)
	}
	ec.results[result.StepID] = result
	ec.order = append(ec.order, result.StepID)
	return nil
}

// Result returns the recorded result for a step, if any.
func (ec *ExecutionContext) Result(id StepID) (*StepResult, bool) {
	r, ok := ec.results[id]
	return r, ok
}

// HasCompleted reports whether a step has a result with status completed.
func (ec *ExecutionContext) HasCompleted(id StepID) bool {
	r, ok := ec.results[id]
	return ok && r.Completed()
}

// Results returns all recorded results in insertion order.
func (ec *ExecutionContext) Results() []*StepResult {
	out := make([]*StepResult, 0, len(ec.order))
	for _, id := range ec.order {
		out = append(out, ec.results[id])
	}
	return out
}

// CompletedSteps returns the IDs of all steps that completed successfully,
// in insertion order.
func (ec *ExecutionContext) CompletedSteps() []StepID {
	var out []StepID
	for _, id := range ec.order {
		if ec.results[id].Completed() {
			out = append(out, id)
		}
	}
	return out
}

// FailedSteps returns the IDs of all steps whose status is not completed,
// in insertion order.
func (ec *ExecutionContext) FailedSteps() []StepID {
	var out []StepID
	for _, id := range ec.order {
		if !ec.results[id].Completed() {
			out = append(out, id)
		}
	}
	return out
}

// Data returns the data map of a completed step, or nil if the step is
// absent or did not complete.
func (ec *ExecutionContext) Data(id StepID) map[string]any {
	r, ok := ec.results[id]
	if !ok || !r.Completed() {
		return nil
	}
	return r.Data
}

package calendar

import (
	"fmt"
	"strings"
)

// MissingDependencyError indicates a step was executed before a declared
// prerequisite step completed. Fatal to that step only.
type MissingDependencyError struct {
	StepID     StepID
	Dependency StepID
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependency %s", e.StepID, e.Dependency)
}

// DataUnavailableError indicates an external data source or LLM call could
// not be completed. It is recorded in the step result and never masked with
// synthetic data.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data source %s unavailable: %v", e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// InsufficientCompletionError indicates fewer steps completed than the
// configured minimum. Fatal to the whole run.
type InsufficientCompletionError struct {
	Completed int
	Required  int
	Missing   []StepID
}

func (e *InsufficientCompletionError) Error() string {
	ids := make([]string, 0, len(e.Missing))
	for _, id := range e.Missing {
		ids = append(ids, string(id))
	}
	return fmt.Sprintf("insufficient completion: %d of %d required steps completed, missing [%s]",
		e.Completed, e.Required, strings.Join(ids, ", "))
}

package datasource

import (
	"context"

	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
)

// Adapter fetches one domain's inputs for a step.
//
// Fetch must not mutate the execution context; it returns a fresh mapping
// that the calling step merges into its working state.
type Adapter interface {
	// Name identifies the adapter in errors and logs.
	Name() string

	// Fetch assembles the adapter's inputs. A failure of the backing
	// service is returned as a *calendar.DataUnavailableError; partial
	// results are never substituted.
	Fetch(ctx context.Context, userID, strategyID string, ec *calendar.ExecutionContext) (map[string]any, error)
}

// unavailable wraps a backing-service error in the typed no-fallback error.
func unavailable(name string, err error) error {
	return &calendar.DataUnavailableError{Source: name, Err: err}
}

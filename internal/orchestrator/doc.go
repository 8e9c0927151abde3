// Package orchestrator sequences the 12 calendar-generation steps across
// their four phases, threads the growing execution context between them,
// records per-step quality scores, and assembles the final calendar.
//
// Steps run strictly sequentially. A failed step degrades the run instead
// of halting it; only the final minimum-completion check can fail the run
// as a whole. The orchestrator performs no retries: retry, if any, belongs
// to the engine behind the steps.
package orchestrator

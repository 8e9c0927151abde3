// Package calendar defines the core data model for content-calendar
// generation runs: the per-run execution context, step results, quality
// gate results, and the assembled final calendar.
//
// All result types are created once per step execution and never mutated
// afterwards. The execution context is append-only: once a step's result
// is recorded it is a stable reference for every later step.
package calendar

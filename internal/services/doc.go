// Package services aggregates the external collaborators the calendar
// pipeline consumes: the persisted-state read services and the AI engine.
//
// The pipeline depends on these interfaces only; wiring concrete
// store-backed implementations happens in cmd/calendard.
package services

// Package store persists the read-side state the calendar pipeline
// consumes: onboarding profiles, content strategies, gap analyses, and
// platform performance history.
//
// All reads return typed not-found errors; the pipeline never substitutes
// fabricated defaults for missing rows.
package store

// Package datasource provides the per-domain data adapters steps use to
// assemble their inputs from persisted state and prior step outputs.
//
// Adapters never fabricate data: when a backing service is unavailable or
// a required row is missing, Fetch returns a DataUnavailableError so the
// dependent step fails instead of generating content against phantom
// inputs.
package datasource

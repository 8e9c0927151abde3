// Package steps implements the 12 units of the calendar generation
// pipeline, grouped into four phases: foundation, structure, content,
// and optimization.
//
// Steps share one execution contract: dependencies are checked before any
// external call, adapter and engine failures degrade the step to a failed
// result instead of raising, and a completed result is immutable. The 12
// variants differ only in what they read from the context, which adapters
// they consult, and the prompt they send.
package steps

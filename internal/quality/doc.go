// Package quality scores step outputs along named dimensions.
//
// Gates are heuristics, not verified invariants: simple set/overlap
// measures over the step's own output, plus an optional LLM-scored
// strategic-alignment dimension. Evaluation never fails a step by itself;
// missing inputs yield a 0.0 sub-score with an explanatory issue.
package quality

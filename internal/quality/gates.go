package quality

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AJaySi/AI-Writer-sub015/internal/aiengine"
	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
	"github.com/AJaySi/AI-Writer-sub015/internal/logging"
)

// Gate names.
const (
	GateCompleteness = "completeness"
	GateUniqueness   = "uniqueness"
	GateAlignment    = "alignment"
)

// Evaluator scores a step result. Implementations never return an error;
// whatever cannot be scored yields a 0.0 sub-score with an issue entry.
type Evaluator interface {
	Validate(ctx context.Context, stepID calendar.StepID, result *calendar.StepResult, ec *calendar.ExecutionContext) *calendar.QualityGateResult
}

// GateSet is the standard evaluator: completeness and uniqueness
// heuristics plus an optional LLM-scored alignment gate.
type GateSet struct {
	thresholds Thresholds
	weights    map[string]float64
	engine     aiengine.Engine // nil disables the alignment gate call
	logger     *logging.Logger
}

// Option configures a GateSet.
type Option func(*GateSet)

// WithEngine enables the LLM-scored strategic-alignment gate.
func WithEngine(engine aiengine.Engine) Option {
	return func(g *GateSet) { g.engine = engine }
}

// WithWeights overrides the per-gate aggregation weights.
func WithWeights(weights map[string]float64) Option {
	return func(g *GateSet) { g.weights = weights }
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(g *GateSet) { g.logger = logger }
}

// NewGateSet creates the standard gate set.
func NewGateSet(thresholds Thresholds, opts ...Option) *GateSet {
	g := &GateSet{
		thresholds: thresholds,
		weights: map[string]float64{
			GateCompleteness: 0.4,
			GateUniqueness:   0.3,
			GateAlignment:    0.3,
		},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Validate scores a step result. Never returns nil.
func (g *GateSet) Validate(ctx context.Context, stepID calendar.StepID, result *calendar.StepResult, ec *calendar.ExecutionContext) *calendar.QualityGateResult {
	gates := map[string]calendar.GateScore{
		GateCompleteness: g.scoreCompleteness(result),
		GateUniqueness:   g.scoreUniqueness(result),
		GateAlignment:    g.scoreAlignment(ctx, result, ec),
	}

	var weightedSum, totalWeight float64
	for name, score := range gates {
		w := g.weights[name]
		weightedSum += score.Score * w
		totalWeight += w
	}
	aggregate := 0.0
	if totalWeight > 0 {
		aggregate = clamp(weightedSum / totalWeight)
	}

	return &calendar.QualityGateResult{
		StepID:         stepID,
		Gates:          gates,
		AggregateScore: aggregate,
		Passed:         aggregate >= g.thresholds.Acceptable,
		EvaluatedAt:    time.Now(),
	}
}

// scoreCompleteness measures the fraction of output fields carrying
// non-empty values.
func (g *GateSet) scoreCompleteness(result *calendar.StepResult) calendar.GateScore {
	if result == nil || len(result.Data) == 0 {
		return calendar.GateScore{
			Score:  0,
			Issues: []string{"no content generated"},
		}
	}

	filled := 0
	for _, v := range result.Data {
		if !isEmptyValue(v) {
			filled++
		}
	}
	score := clamp(float64(filled) / float64(len(result.Data)))

	var issues []string
	if filled < len(result.Data) {
		issues = append(issues, fmt.Sprintf("%d of %d fields are empty", len(result.Data)-filled, len(result.Data)))
	}
	return calendar.GateScore{
		Passed: score >= g.thresholds.Acceptable,
		Score:  score,
		Issues: issues,
	}
}

// scoreUniqueness measures the fraction of distinct string items across
// the step's list-valued fields. Repeated titles and themes lower it.
func (g *GateSet) scoreUniqueness(result *calendar.StepResult) calendar.GateScore {
	items := collectStrings(result)
	if len(items) == 0 {
		return calendar.GateScore{
			Score:  0,
			Issues: []string{"no list content to measure uniqueness"},
		}
	}

	distinct := make(map[string]bool, len(items))
	for _, item := range items {
		distinct[strings.ToLower(strings.TrimSpace(item))] = true
	}
	score := clamp(float64(len(distinct)) / float64(len(items)))

	var issues []string
	if len(distinct) < len(items) {
		issues = append(issues, fmt.Sprintf("%d duplicate items out of %d", len(items)-len(distinct), len(items)))
	}
	return calendar.GateScore{
		Passed: score >= g.thresholds.Acceptable,
		Score:  score,
		Issues: issues,
	}
}

// scoreAlignment asks the engine to rate the output against the business
// goals captured by step 1. A missing engine, missing goals, or a failed
// call yields 0.0 with an issue; it never fails the evaluation. Treat the
// score as a heuristic hint, the model is judging its own prior output.
func (g *GateSet) scoreAlignment(ctx context.Context, result *calendar.StepResult, ec *calendar.ExecutionContext) calendar.GateScore {
	if g.engine == nil {
		return calendar.GateScore{Score: 0, Issues: []string{"alignment scoring disabled: no engine configured"}}
	}
	if result == nil || len(result.Data) == 0 {
		return calendar.GateScore{Score: 0, Issues: []string{"no content to align"}}
	}

	goals := businessGoals(ec)
	if len(goals) == 0 {
		return calendar.GateScore{Score: 0, Issues: []string{"no business goals available from step_01"}}
	}

	prompt := alignmentPrompt(goals, result.Data)
	response, err := g.engine.Generate(ctx, prompt, []string{"alignment_score"})
	if err != nil {
		g.logger.Warn(ctx, "alignment scoring failed", zap.Error(err))
		return calendar.GateScore{Score: 0, Issues: []string{fmt.Sprintf("alignment scoring unavailable: %v", err)}}
	}

	raw, ok := response["alignment_score"].(float64)
	if !ok {
		return calendar.GateScore{Score: 0, Issues: []string{"alignment score missing or not numeric"}}
	}
	score := clamp(raw)
	return calendar.GateScore{
		Passed: score >= g.thresholds.Acceptable,
		Score:  score,
	}
}

// businessGoals extracts the goals recorded by step 1, if present.
func businessGoals(ec *calendar.ExecutionContext) []string {
	data := ec.Data(calendar.Step01)
	if data == nil {
		return nil
	}
	switch goals := data["business_goals"].(type) {
	case []string:
		return goals
	case []any:
		out := make([]string, 0, len(goals))
		for _, g := range goals {
			if s, ok := g.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func alignmentPrompt(goals []string, data map[string]any) string {
	var b strings.Builder
	b.WriteString("Rate how well the following content plan output aligns with these business goals.\n")
	b.WriteString("Goals:\n")
	for _, goal := range goals {
		b.WriteString("- " + goal + "\n")
	}
	b.WriteString("\nOutput fields:\n")
	for k := range data {
		b.WriteString("- " + k + "\n")
	}
	b.WriteString("\nRespond with a JSON object: {\"alignment_score\": <number between 0 and 1>}")
	return b.String()
}

// collectStrings gathers string items from list-valued output fields.
func collectStrings(result *calendar.StepResult) []string {
	if result == nil {
		return nil
	}
	var items []string
	for _, v := range result.Data {
		switch list := v.(type) {
		case []string:
			items = append(items, list...)
		case []any:
			for _, item := range list {
				if s, ok := item.(string); ok {
					items = append(items, s)
				}
			}
		}
	}
	return items
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

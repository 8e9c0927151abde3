package orchestrator

import (
	"time"

	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
)

// assemble builds the FinalCalendar projection from a completed context.
// Read-only over the context; runs exactly once per run.
func (o *Orchestrator) assemble(runID string, ec *calendar.ExecutionContext, degraded bool, elapsed time.Duration) *calendar.FinalCalendar {
	summaries := make(map[calendar.StepID]string, 12)
	var weak []calendar.StepID
	for _, r := range ec.Results() {
		summaries[r.StepID] = r.Summary
		if !r.Completed() || r.QualityScore < o.weakThreshold {
			weak = append(weak, r.StepID)
		}
	}

	return &calendar.FinalCalendar{
		RunID:            runID,
		UserID:           ec.UserID(),
		StrategyID:       ec.StrategyID(),
		Config:           ec.Config(),
		Schedule:         buildSchedule(ec),
		AggregateQuality: o.aggregateQuality(ec),
		Degraded:         degraded,
		WeakSteps:        weak,
		StepSummaries:    summaries,
		GeneratedAt:      time.Now(),
		Duration:         elapsed,
	}
}

// aggregateQuality is the weighted mean of per-step quality scores over
// all recorded steps. Failed steps contribute their zero score.
func (o *Orchestrator) aggregateQuality(ec *calendar.ExecutionContext) float64 {
	var weightedSum, totalWeight float64
	for _, r := range ec.Results() {
		w, ok := o.weights[r.StepID]
		if !ok {
			w = 1.0
		}
		weightedSum += r.QualityScore * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	score := weightedSum / totalWeight
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// buildSchedule projects the structure and content steps (4-9) into a
// flat schedule. Step outputs are model-generated, so every field is
// treated as optional; absent data simply yields sparser entries, never
// fabricated ones.
func buildSchedule(ec *calendar.ExecutionContext) []calendar.ScheduleEntry {
	cfg := ec.Config()

	themes := stringList(ec.Data(calendar.Step07), "weekly_themes")
	focus := stringList(ec.Data(calendar.Step05), "weekly_focus")
	days := stringList(ec.Data(calendar.Step04), "posting_days")
	titles := titleList(ec.Data(calendar.Step08))

	var entries []calendar.ScheduleEntry
	titleIdx := 0
	for week := 1; week <= cfg.DurationWeeks; week++ {
		for slot := 0; slot < cfg.PostingFrequency; slot++ {
			entry := calendar.ScheduleEntry{
				Week:     week,
				Platform: cfg.Platforms[slot%len(cfg.Platforms)],
			}
			if len(days) > 0 {
				entry.Day = days[slot%len(days)]
			}
			if len(themes) > 0 {
				entry.Theme = themes[(week-1)%len(themes)]
			}
			if len(focus) > 0 {
				entry.Pillar = focus[(week-1)%len(focus)]
			}
			if titleIdx < len(titles) {
				entry.Title = titles[titleIdx]
				titleIdx++
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// stringList extracts a list of strings from a step's data field,
// tolerating both []string and decoded-JSON []any shapes.
func stringList(data map[string]any, key string) []string {
	if data == nil {
		return nil
	}
	switch list := data[key].(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// titleList pulls working titles from step 8's daily schedule, which the
// model returns as a list of objects with a "title" field.
func titleList(data map[string]any) []string {
	if data == nil {
		return nil
	}
	list, ok := data["daily_schedule"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if entry, ok := item.(map[string]any); ok {
			if title, ok := entry["title"].(string); ok && title != "" {
				out = append(out, title)
			}
		}
	}
	return out
}

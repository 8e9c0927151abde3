package calendar

import (
	"fmt"
	"time"
)

// StepID identifies one of the 12 pipeline steps.
type StepID string

const (
	Step01 StepID = "step_01" // Content Strategy Analysis
	Step02 StepID = "step_02" // Gap Analysis
	Step03 StepID = "step_03" // Audience & Platform Strategy
	Step04 StepID = "step_04" // Calendar Framework & Timeline
	Step05 StepID = "step_05" // Content Pillar Distribution
	Step06 StepID = "step_06" // Platform-Specific Strategy
	Step07 StepID = "step_07" // Weekly Theme Development
	Step08 StepID = "step_08" // Daily Content Planning
	Step09 StepID = "step_09" // Content Recommendations
	Step10 StepID = "step_10" // Performance Optimization
	Step11 StepID = "step_11" // Strategy Alignment Validation
	Step12 StepID = "step_12" // Final Calendar Assembly
)

// AllStepIDs returns all step IDs in execution order.
func AllStepIDs() []StepID {
	return []StepID{
		Step01, Step02, Step03,
		Step04, Step05, Step06,
		Step07, Step08, Step09,
		Step10, Step11, Step12,
	}
}

// Phase groups consecutive steps of the pipeline.
type Phase string

const (
	PhaseFoundation   Phase = "foundation"   // steps 1-3
	PhaseStructure    Phase = "structure"    // steps 4-6
	PhaseContent      Phase = "content"      // steps 7-9
	PhaseOptimization Phase = "optimization" // steps 10-12
)

// AllPhases returns the phases in execution order.
func AllPhases() []Phase {
	return []Phase{PhaseFoundation, PhaseStructure, PhaseContent, PhaseOptimization}
}

// StepStatus is the terminal status of one step execution.
type StepStatus string

const (
	StatusCompleted StepStatus = "completed"
	StatusFailed    StepStatus = "failed"
	StatusSkipped   StepStatus = "skipped"
)

// Config holds the calendar parameters carried by a generation request.
type Config struct {
	DurationWeeks    int      `json:"duration_weeks" koanf:"duration_weeks"`
	Platforms        []string `json:"platforms" koanf:"platforms"`
	PostingFrequency int      `json:"posting_frequency" koanf:"posting_frequency"`
}

// Validate checks the calendar configuration bounds.
func (c Config) Validate() error {
	if c.DurationWeeks < 1 || c.DurationWeeks > 12 {
		return fmt.Errorf("duration_weeks must be between 1 and 12, got %d", c.DurationWeeks)
	}
	if len(c.Platforms) == 0 {
		return fmt.Errorf("at least one platform is required")
	}
	if c.PostingFrequency < 1 || c.PostingFrequency > 7 {
		return fmt.Errorf("posting_frequency must be between 1 and 7 posts per week, got %d", c.PostingFrequency)
	}
	return nil
}

// GateScore is the outcome of one named quality gate dimension.
type GateScore struct {
	Passed bool     `json:"passed"`
	Score  float64  `json:"score"`
	Issues []string `json:"issues,omitempty"`
}

// QualityGateResult collects the gate scores for one step.
// Created immediately after a step completes; never mutated.
type QualityGateResult struct {
	StepID         StepID               `json:"step_id"`
	Gates          map[string]GateScore `json:"gates"`
	AggregateScore float64              `json:"aggregate_score"`
	Passed         bool                 `json:"passed"`
	EvaluatedAt    time.Time            `json:"evaluated_at"`
}

// StepResult is the output of one step execution. Immutable once created.
type StepResult struct {
	StepID       StepID             `json:"step_id"`
	Status       StepStatus         `json:"status"`
	Data         map[string]any     `json:"data,omitempty"`
	Summary      string             `json:"summary,omitempty"`
	QualityScore float64            `json:"quality_score"`
	Quality      *QualityGateResult `json:"quality,omitempty"`
	Error        string             `json:"error,omitempty"`
	StartedAt    time.Time          `json:"started_at"`
	CompletedAt  time.Time          `json:"completed_at"`
}

// Completed reports whether the step finished with status completed.
func (r *StepResult) Completed() bool {
	return r != nil && r.Status == StatusCompleted
}

// ScheduleEntry is one planned content item in the final calendar.
type ScheduleEntry struct {
	Week     int    `json:"week"`
	Day      string `json:"day,omitempty"`
	Platform string `json:"platform,omitempty"`
	Theme    string `json:"theme,omitempty"`
	Title    string `json:"title,omitempty"`
	Pillar   string `json:"pillar,omitempty"`
}

// FinalCalendar is the assembled output of a generation run.
// Built once after all steps have a result; immutable once returned.
type FinalCalendar struct {
	RunID            string            `json:"run_id"`
	UserID           string            `json:"user_id"`
	StrategyID       string            `json:"strategy_id"`
	Config           Config            `json:"config"`
	Schedule         []ScheduleEntry   `json:"schedule"`
	AggregateQuality float64           `json:"aggregate_quality"`
	Degraded         bool              `json:"degraded"`
	WeakSteps        []StepID          `json:"weak_steps,omitempty"`
	StepSummaries    map[StepID]string `json:"step_summaries"`
	GeneratedAt      time.Time         `json:"generated_at"`
	Duration         time.Duration     `json:"duration_ns"`
}

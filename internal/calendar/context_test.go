package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		DurationWeeks:    4,
		Platforms:        []string{"linkedin", "facebook"},
		PostingFrequency: 3,
	}
}

func TestExecutionContext_RecordAppendOnly(t *testing.T) {
	ec := NewExecutionContext("user-1", "strategy-1", testConfig())

	first := &StepResult{StepID: Step01, Status: StatusCompleted, StartedAt: time.Now()}
	require.NoError(t, ec.Record(first))

	// Recording the same step again must fail.
	err := ec.Record(&StepResult{StepID: Step01, Status: StatusFailed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step_01")

	// The original result must be untouched.
	got, ok := ec.Result(Step01)
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, StatusCompleted, got.Status)
}

func TestExecutionContext_RecordNil(t *testing.T) {
	ec := NewExecutionContext("user-1", "strategy-1", testConfig())
	require.Error(t, ec.Record(nil))
}

func TestExecutionContext_InsertionOrder(t *testing.T) {
	ec := NewExecutionContext("user-1", "strategy-1", testConfig())

	require.NoError(t, ec.Record(&StepResult{StepID: Step01, Status: StatusCompleted}))
	require.NoError(t, ec.Record(&StepResult{StepID: Step02, Status: StatusFailed}))
	require.NoError(t, ec.Record(&StepResult{StepID: Step03, Status: StatusCompleted}))

	results := ec.Results()
	require.Len(t, results, 3)
	assert.Equal(t, Step01, results[0].StepID)
	assert.Equal(t, Step02, results[1].StepID)
	assert.Equal(t, Step03, results[2].StepID)

	assert.Equal(t, []StepID{Step01, Step03}, ec.CompletedSteps())
	assert.Equal(t, []StepID{Step02}, ec.FailedSteps())
}

func TestExecutionContext_StableReferences(t *testing.T) {
	ec := NewExecutionContext("user-1", "strategy-1", testConfig())

	data := map[string]any{"themes": []string{"a", "b"}}
	require.NoError(t, ec.Record(&StepResult{StepID: Step01, Status: StatusCompleted, Data: data}))
	before, _ := ec.Result(Step01)

	// Later recordings must not disturb earlier entries.
	for _, id := range []StepID{Step02, Step03, Step04} {
		require.NoError(t, ec.Record(&StepResult{StepID: id, Status: StatusCompleted}))
	}

	after, ok := ec.Result(Step01)
	require.True(t, ok)
	assert.Same(t, before, after)
}

func TestExecutionContext_Data(t *testing.T) {
	ec := NewExecutionContext("user-1", "strategy-1", testConfig())

	require.NoError(t, ec.Record(&StepResult{
		StepID: Step01,
		Status: StatusCompleted,
		Data:   map[string]any{"mission": "grow"},
	}))
	require.NoError(t, ec.Record(&StepResult{StepID: Step02, Status: StatusFailed}))

	assert.Equal(t, "grow", ec.Data(Step01)["mission"])
	assert.Nil(t, ec.Data(Step02), "failed steps expose no data")
	assert.Nil(t, ec.Data(Step03), "absent steps expose no data")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", testConfig(), ""},
		{"zero weeks", Config{DurationWeeks: 0, Platforms: []string{"x"}, PostingFrequency: 1}, "duration_weeks"},
		{"too many weeks", Config{DurationWeeks: 13, Platforms: []string{"x"}, PostingFrequency: 1}, "duration_weeks"},
		{"no platforms", Config{DurationWeeks: 4, PostingFrequency: 1}, "platform"},
		{"zero frequency", Config{DurationWeeks: 4, Platforms: []string{"x"}}, "posting_frequency"},
		{"daily-plus frequency", Config{DurationWeeks: 4, Platforms: []string{"x"}, PostingFrequency: 8}, "posting_frequency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

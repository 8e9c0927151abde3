package aiengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/AJaySi/AI-Writer-sub015/internal/config"
)

func TestNewService_Validation(t *testing.T) {
	_, err := NewService(appconfig.EngineConfig{}, nil)
	require.Error(t, err)

	svc, err := NewService(appconfig.EngineConfig{
		BaseURL:   "http://localhost:11434/v1",
		Model:     "llama3",
		RateLimit: 1,
	}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		requiredKeys []string
		wantErr      error
		check        func(t *testing.T, got map[string]any)
	}{
		{
			name:         "plain object",
			raw:          `{"themes": ["a", "b"], "rationale": "x"}`,
			requiredKeys: []string{"themes", "rationale"},
			check: func(t *testing.T, got map[string]any) {
				assert.Equal(t, "x", got["rationale"])
			},
		},
		{
			name:         "fenced object",
			raw:          "Here is the plan:\n```json\n{\"weeks\": 4}\n```\nDone.",
			requiredKeys: []string{"weeks"},
			check: func(t *testing.T, got map[string]any) {
				assert.Equal(t, float64(4), got["weeks"])
			},
		},
		{
			name:         "braces inside strings",
			raw:          `{"note": "use {placeholders} carefully", "ok": true}`,
			requiredKeys: []string{"note", "ok"},
			check: func(t *testing.T, got map[string]any) {
				assert.Equal(t, true, got["ok"])
			},
		},
		{
			name:         "nested object",
			raw:          `{"schedule": {"week_1": ["mon", "wed"]}}`,
			requiredKeys: []string{"schedule"},
			check: func(t *testing.T, got map[string]any) {
				assert.NotNil(t, got["schedule"])
			},
		},
		{
			name:    "no json at all",
			raw:     "I could not produce a calendar.",
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "unbalanced braces",
			raw:     `{"themes": ["a"`,
			wantErr: ErrInvalidResponse,
		},
		{
			name:         "missing required keys",
			raw:          `{"themes": []}`,
			requiredKeys: []string{"themes", "pillars", "rationale"},
			wantErr:      ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeResponse(tt.raw, tt.requiredKeys)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestDecodeResponse_MissingFieldsNamesThem(t *testing.T) {
	_, err := DecodeResponse(`{"themes": []}`, []string{"themes", "pillars"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pillars")
}

package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AJaySi/AI-Writer-sub015/internal/aiengine"
	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
	"github.com/AJaySi/AI-Writer-sub015/internal/services"
	"github.com/AJaySi/AI-Writer-sub015/internal/store"
)

func newTestRegistry(t *testing.T) services.Registry {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	backed := services.NewStoreBacked(s)
	return services.NewRegistry(services.Options{
		Onboarding:     backed,
		ActiveStrategy: backed,
		Planning:       backed,
		Engine:         new(MockEngine),
	})
}

func TestAll_TwelveStepsInOrder(t *testing.T) {
	all := All(Dependencies{Registry: newTestRegistry(t)})
	require.Len(t, all, 12)

	wantIDs := calendar.AllStepIDs()
	for i, step := range all {
		assert.Equal(t, wantIDs[i], step.ID())
		assert.NotEmpty(t, step.Name())
	}
}

func TestAll_PhaseGrouping(t *testing.T) {
	all := All(Dependencies{Registry: newTestRegistry(t)})

	wantPhases := map[calendar.Phase][]int{
		calendar.PhaseFoundation:   {0, 1, 2},
		calendar.PhaseStructure:    {3, 4, 5},
		calendar.PhaseContent:      {6, 7, 8},
		calendar.PhaseOptimization: {9, 10, 11},
	}
	for phase, indexes := range wantPhases {
		for _, i := range indexes {
			assert.Equalf(t, phase, all[i].Phase(), "step %s", all[i].ID())
		}
	}
}

func TestAll_DependenciesPointBackwards(t *testing.T) {
	all := All(Dependencies{Registry: newTestRegistry(t)})

	index := make(map[calendar.StepID]int, len(all))
	for i, step := range all {
		index[step.ID()] = i
	}
	for i, step := range all {
		for _, dep := range step.Dependencies() {
			depIdx, ok := index[dep]
			require.Truef(t, ok, "step %s depends on unknown %s", step.ID(), dep)
			assert.Lessf(t, depIdx, i, "step %s depends on later step %s", step.ID(), dep)
		}
	}
}

var _ aiengine.Engine = (*MockEngine)(nil)

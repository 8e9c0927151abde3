package services

import (
	"context"

	"github.com/AJaySi/AI-Writer-sub015/internal/aiengine"
	"github.com/AJaySi/AI-Writer-sub015/internal/store"
)

// OnboardingDataService reads the user's onboarding profile.
type OnboardingDataService interface {
	// GetPersonalizedAIInputs returns the onboarding-derived inputs for
	// prompt personalization. Returns a store.ErrNotFound-wrapped error if
	// the user never completed onboarding.
	GetPersonalizedAIInputs(ctx context.Context, userID string) (*store.OnboardingProfile, error)
}

// ActiveStrategyService reads the user's currently active content strategy.
type ActiveStrategyService interface {
	GetActiveStrategy(ctx context.Context, userID string) (*store.ContentStrategy, error)
}

// ContentPlanningService reads persisted planning artifacts.
type ContentPlanningService interface {
	GetContentStrategy(ctx context.Context, strategyID string) (*store.ContentStrategy, error)
	GetUserContentGapAnalyses(ctx context.Context, userID string) ([]*store.GapAnalysis, error)
	GetPlatformPerformance(ctx context.Context, userID string, platforms []string) ([]*store.PlatformPerformance, error)
}

// Registry provides access to all pipeline collaborators.
type Registry interface {
	Onboarding() OnboardingDataService
	ActiveStrategy() ActiveStrategyService
	Planning() ContentPlanningService
	Engine() aiengine.Engine
}

// Options configures the registry with service instances.
type Options struct {
	Onboarding     OnboardingDataService
	ActiveStrategy ActiveStrategyService
	Planning       ContentPlanningService
	Engine         aiengine.Engine
}

type registry struct {
	onboarding     OnboardingDataService
	activeStrategy ActiveStrategyService
	planning       ContentPlanningService
	engine         aiengine.Engine
}

// NewRegistry creates a new service registry.
func NewRegistry(opts Options) Registry {
	return &registry{
		onboarding:     opts.Onboarding,
		activeStrategy: opts.ActiveStrategy,
		planning:       opts.Planning,
		engine:         opts.Engine,
	}
}

func (r *registry) Onboarding() OnboardingDataService     { return r.onboarding }
func (r *registry) ActiveStrategy() ActiveStrategyService { return r.activeStrategy }
func (r *registry) Planning() ContentPlanningService      { return r.planning }
func (r *registry) Engine() aiengine.Engine               { return r.engine }

package services

import (
	"context"

	"github.com/AJaySi/AI-Writer-sub015/internal/store"
)

// StoreBacked adapts *store.Store to the pipeline's service interfaces.
type StoreBacked struct {
	store *store.Store
}

// NewStoreBacked wraps a store as the three read services.
func NewStoreBacked(s *store.Store) *StoreBacked {
	return &StoreBacked{store: s}
}

func (b *StoreBacked) GetPersonalizedAIInputs(ctx context.Context, userID string) (*store.OnboardingProfile, error) {
	return b.store.GetOnboardingProfile(ctx, userID)
}

func (b *StoreBacked) GetActiveStrategy(ctx context.Context, userID string) (*store.ContentStrategy, error) {
	return b.store.GetActiveStrategy(ctx, userID)
}

func (b *StoreBacked) GetContentStrategy(ctx context.Context, strategyID string) (*store.ContentStrategy, error) {
	return b.store.GetContentStrategy(ctx, strategyID)
}

func (b *StoreBacked) GetUserContentGapAnalyses(ctx context.Context, userID string) ([]*store.GapAnalysis, error) {
	return b.store.ListGapAnalyses(ctx, userID)
}

func (b *StoreBacked) GetPlatformPerformance(ctx context.Context, userID string, platforms []string) ([]*store.PlatformPerformance, error) {
	return b.store.ListPlatformPerformance(ctx, userID, platforms)
}

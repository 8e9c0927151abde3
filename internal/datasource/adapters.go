package datasource

import (
	"context"

	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
	"github.com/AJaySi/AI-Writer-sub015/internal/services"
)

// StrategyAdapter fetches the content strategy a run targets.
type StrategyAdapter struct {
	planning services.ContentPlanningService
}

// NewStrategyAdapter creates a strategy adapter.
func NewStrategyAdapter(planning services.ContentPlanningService) *StrategyAdapter {
	return &StrategyAdapter{planning: planning}
}

func (a *StrategyAdapter) Name() string { return "content_strategy" }

func (a *StrategyAdapter) Fetch(ctx context.Context, userID, strategyID string, _ *calendar.ExecutionContext) (map[string]any, error) {
	cs, err := a.planning.GetContentStrategy(ctx, strategyID)
	if err != nil {
		return nil, unavailable(a.Name(), err)
	}
	return map[string]any{
		"strategy_id":     cs.ID,
		"strategy_name":   cs.Name,
		"business_goals":  cs.BusinessGoals,
		"content_pillars": cs.ContentPillars,
		"target_kpis":     cs.TargetKPIs,
	}, nil
}

// GapAnalysisAdapter fetches prior content-gap analysis results.
type GapAnalysisAdapter struct {
	planning services.ContentPlanningService
}

// NewGapAnalysisAdapter creates a gap-analysis adapter.
func NewGapAnalysisAdapter(planning services.ContentPlanningService) *GapAnalysisAdapter {
	return &GapAnalysisAdapter{planning: planning}
}

func (a *GapAnalysisAdapter) Name() string { return "gap_analysis" }

func (a *GapAnalysisAdapter) Fetch(ctx context.Context, userID, _ string, _ *calendar.ExecutionContext) (map[string]any, error) {
	analyses, err := a.planning.GetUserContentGapAnalyses(ctx, userID)
	if err != nil {
		return nil, unavailable(a.Name(), err)
	}

	topics := make([]string, 0, len(analyses))
	keywords := make([]string, 0)
	opportunities := make([]string, 0, len(analyses))
	for _, g := range analyses {
		topics = append(topics, g.Topic)
		keywords = append(keywords, g.MissingKeywords...)
		if g.Opportunity != "" {
			opportunities = append(opportunities, g.Opportunity)
		}
	}
	return map[string]any{
		"gap_topics":       topics,
		"missing_keywords": keywords,
		"opportunities":    opportunities,
	}, nil
}

// UserDataAdapter fetches the comprehensive user picture: onboarding
// profile plus the active strategy.
type UserDataAdapter struct {
	onboarding services.OnboardingDataService
	active     services.ActiveStrategyService
}

// NewUserDataAdapter creates a comprehensive user-data adapter.
func NewUserDataAdapter(onboarding services.OnboardingDataService, active services.ActiveStrategyService) *UserDataAdapter {
	return &UserDataAdapter{onboarding: onboarding, active: active}
}

func (a *UserDataAdapter) Name() string { return "user_data" }

func (a *UserDataAdapter) Fetch(ctx context.Context, userID, _ string, _ *calendar.ExecutionContext) (map[string]any, error) {
	profile, err := a.onboarding.GetPersonalizedAIInputs(ctx, userID)
	if err != nil {
		return nil, unavailable(a.Name(), err)
	}
	active, err := a.active.GetActiveStrategy(ctx, userID)
	if err != nil {
		return nil, unavailable(a.Name(), err)
	}
	return map[string]any{
		"website_url":     profile.WebsiteURL,
		"industry":        profile.Industry,
		"target_audience": profile.TargetAudience,
		"description":     profile.Description,
		"keywords":        profile.Keywords,
		"active_strategy": active.Name,
		"business_goals":  active.BusinessGoals,
	}, nil
}

// PlatformAdapter fetches historical platform performance for the run's
// target platforms.
type PlatformAdapter struct {
	planning services.ContentPlanningService
}

// NewPlatformAdapter creates a platform-performance adapter.
func NewPlatformAdapter(planning services.ContentPlanningService) *PlatformAdapter {
	return &PlatformAdapter{planning: planning}
}

func (a *PlatformAdapter) Name() string { return "platform_performance" }

func (a *PlatformAdapter) Fetch(ctx context.Context, userID, _ string, ec *calendar.ExecutionContext) (map[string]any, error) {
	rows, err := a.planning.GetPlatformPerformance(ctx, userID, ec.Config().Platforms)
	if err != nil {
		return nil, unavailable(a.Name(), err)
	}

	performance := make(map[string]any, len(rows))
	for _, pp := range rows {
		performance[pp.Platform] = map[string]any{
			"posts":           pp.Posts,
			"engagement_rate": pp.EngagementRate,
			"best_day":        pp.BestDay,
		}
	}
	return map[string]any{
		"platforms":            ec.Config().Platforms,
		"platform_performance": performance,
	}, nil
}

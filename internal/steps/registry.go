package steps

import (
	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
	"github.com/AJaySi/AI-Writer-sub015/internal/datasource"
	"github.com/AJaySi/AI-Writer-sub015/internal/logging"
	"github.com/AJaySi/AI-Writer-sub015/internal/services"
)

// Dependencies holds the collaborators the steps are built from.
type Dependencies struct {
	Registry services.Registry
	Logger   *logging.Logger
}

// All returns the 12 steps in execution order.
//
// The table is static: dependencies, adapters, and required output keys
// are fixed per step, so there is no runtime dispatch by name.
func All(deps Dependencies) []Step {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	strategy := datasource.NewStrategyAdapter(deps.Registry.Planning())
	gaps := datasource.NewGapAnalysisAdapter(deps.Registry.Planning())
	userData := datasource.NewUserDataAdapter(deps.Registry.Onboarding(), deps.Registry.ActiveStrategy())
	platform := datasource.NewPlatformAdapter(deps.Registry.Planning())
	engine := deps.Registry.Engine()

	build := func(s llmStep) Step {
		s.engine = engine
		s.logger = logger
		return &s
	}

	return []Step{
		// Phase 1: foundation
		build(llmStep{
			id:           calendar.Step01,
			phase:        calendar.PhaseFoundation,
			name:         "Content Strategy Analysis",
			requiredKeys: []string{"business_goals", "content_pillars", "target_audience", "strategy_insights"},
			adapters:     []datasource.Adapter{strategy, userData},
			instruction:  "Analyze the content strategy and user profile below. Distill the business goals, content pillars, target audience, and the key insights a content calendar should be built on.",
			summary:      "Distilled the active content strategy into goals, pillars, and audience insights.",
		}),
		build(llmStep{
			id:           calendar.Step02,
			phase:        calendar.PhaseFoundation,
			name:         "Gap Analysis",
			requiredKeys: []string{"gap_topics", "keyword_opportunities", "recommended_angles"},
			adapters:     []datasource.Adapter{gaps},
			instruction:  "Review the content-gap analysis results below. Identify the topics competitors cover that we do not, the keyword opportunities worth pursuing, and recommended content angles.",
			summary:      "Surfaced competitor gap topics and keyword opportunities to target.",
		}),
		build(llmStep{
			id:           calendar.Step03,
			phase:        calendar.PhaseFoundation,
			name:         "Audience & Platform Strategy",
			deps:         []calendar.StepID{calendar.Step01},
			requiredKeys: []string{"audience_personas", "platform_priorities", "tone_of_voice"},
			adapters:     []datasource.Adapter{userData, platform},
			instruction:  "Using the strategy analysis and the platform performance history below, define audience personas, rank the target platforms by priority, and set the tone of voice.",
			summary:      "Defined audience personas and ranked the target platforms.",
		}),

		// Phase 2: structure
		build(llmStep{
			id:           calendar.Step04,
			phase:        calendar.PhaseStructure,
			name:         "Calendar Framework & Timeline",
			deps:         []calendar.StepID{calendar.Step01, calendar.Step03},
			requiredKeys: []string{"weeks", "posting_days", "cadence_rationale"},
			instruction:  "Design the calendar skeleton: the week structure, which days carry posts, and why that cadence fits the strategy and platform priorities established earlier.",
			summary:      "Laid out the week-by-week calendar skeleton and posting cadence.",
		}),
		build(llmStep{
			id:           calendar.Step05,
			phase:        calendar.PhaseStructure,
			name:         "Content Pillar Distribution",
			deps:         []calendar.StepID{calendar.Step01, calendar.Step04},
			requiredKeys: []string{"pillar_allocation", "weekly_focus"},
			instruction:  "Distribute the content pillars across the calendar framework. Allocate a share per pillar and assign each week a primary focus.",
			summary:      "Allocated content pillars across the calendar weeks.",
		}),
		build(llmStep{
			id:           calendar.Step06,
			phase:        calendar.PhaseStructure,
			name:         "Platform-Specific Strategy",
			deps:         []calendar.StepID{calendar.Step03, calendar.Step04},
			requiredKeys: []string{"platform_strategies", "format_mix"},
			adapters:     []datasource.Adapter{platform},
			instruction:  "For each target platform, define the platform-specific posting strategy and content format mix, informed by historical performance.",
			summary:      "Tailored the posting strategy and format mix per platform.",
		}),

		// Phase 3: content
		build(llmStep{
			id:           calendar.Step07,
			phase:        calendar.PhaseContent,
			name:         "Weekly Theme Development",
			deps:         []calendar.StepID{calendar.Step04, calendar.Step05},
			requiredKeys: []string{"weekly_themes", "theme_rationale"},
			instruction:  "Develop one distinct theme per calendar week, consistent with the pillar allocation. Themes must not repeat.",
			summary:      "Developed a distinct theme for every calendar week.",
		}),
		build(llmStep{
			id:           calendar.Step08,
			phase:        calendar.PhaseContent,
			name:         "Daily Content Planning",
			deps:         []calendar.StepID{calendar.Step07},
			requiredKeys: []string{"daily_schedule", "content_types"},
			instruction:  "Expand the weekly themes into a daily schedule: for each posting day, the platform, working title, and content type.",
			summary:      "Expanded weekly themes into a concrete daily posting schedule.",
		}),
		build(llmStep{
			id:           calendar.Step09,
			phase:        calendar.PhaseContent,
			name:         "Content Recommendations",
			deps:         []calendar.StepID{calendar.Step08},
			requiredKeys: []string{"recommendations", "keyword_focus"},
			adapters:     []datasource.Adapter{gaps},
			instruction:  "Recommend supporting content ideas and per-item keyword focus, folding in the gap-analysis opportunities not yet covered by the schedule.",
			summary:      "Added keyword-focused content recommendations from the gap analysis.",
		}),

		// Phase 4: optimization
		build(llmStep{
			id:           calendar.Step10,
			phase:        calendar.PhaseOptimization,
			name:         "Performance Optimization",
			deps:         []calendar.StepID{calendar.Step08},
			requiredKeys: []string{"optimization_actions", "posting_times"},
			adapters:     []datasource.Adapter{platform},
			instruction:  "Optimize the schedule against historical performance: adjust posting times per platform and list concrete optimization actions.",
			summary:      "Tuned posting times and listed optimization actions from performance history.",
		}),
		build(llmStep{
			id:           calendar.Step11,
			phase:        calendar.PhaseOptimization,
			name:         "Strategy Alignment Validation",
			deps:         []calendar.StepID{calendar.Step01, calendar.Step10},
			requiredKeys: []string{"alignment_summary", "risks"},
			instruction:  "Validate the optimized calendar against the original business goals. Summarize alignment and name remaining risks.",
			summary:      "Validated the calendar against the original business goals.",
		}),
		build(llmStep{
			id:           calendar.Step12,
			phase:        calendar.PhaseOptimization,
			name:         "Final Calendar Assembly",
			deps:         []calendar.StepID{calendar.Step11},
			requiredKeys: []string{"calendar_overview", "integration_notes"},
			instruction:  "Write the final calendar overview and note how the earlier steps' outputs integrate into it.",
			summary:      "Assembled the final calendar overview and integration notes.",
		}),
	}
}

package store

import "time"

// OnboardingProfile is the persisted result of user onboarding.
type OnboardingProfile struct {
	UserID         string    `json:"user_id"`
	WebsiteURL     string    `json:"website_url"`
	Industry       string    `json:"industry"`
	TargetAudience string    `json:"target_audience"`
	Description    string    `json:"description"`
	Keywords       []string  `json:"keywords"`
	CreatedAt      time.Time `json:"created_at"`
}

// ContentStrategy is a persisted content strategy for a user.
type ContentStrategy struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Active         bool      `json:"active"`
	BusinessGoals  []string  `json:"business_goals"`
	ContentPillars []string  `json:"content_pillars"`
	TargetKPIs     []string  `json:"target_kpis"`
	CreatedAt      time.Time `json:"created_at"`
}

// GapAnalysis is a persisted content-gap analysis result.
type GapAnalysis struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Topic           string    `json:"topic"`
	MissingKeywords []string  `json:"missing_keywords"`
	CompetitorURLs  []string  `json:"competitor_urls"`
	Opportunity     string    `json:"opportunity"`
	CreatedAt       time.Time `json:"created_at"`
}

// PlatformPerformance is one platform's historical engagement summary.
type PlatformPerformance struct {
	UserID         string    `json:"user_id"`
	Platform       string    `json:"platform"`
	Posts          int       `json:"posts"`
	EngagementRate float64   `json:"engagement_rate"`
	BestDay        string    `json:"best_day"`
	RecordedAt     time.Time `json:"recorded_at"`
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	_ "modernc.org/sqlite"
)

const instrumentationName = "github.com/AJaySi/AI-Writer-sub015/internal/store"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
)

const schema = `
CREATE TABLE IF NOT EXISTS onboarding_profiles (
	user_id         TEXT PRIMARY KEY,
	website_url     TEXT NOT NULL DEFAULT '',
	industry        TEXT NOT NULL DEFAULT '',
	target_audience TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	keywords        TEXT NOT NULL DEFAULT '[]',
	created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS content_strategies (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	name            TEXT NOT NULL DEFAULT '',
	active          INTEGER NOT NULL DEFAULT 0,
	business_goals  TEXT NOT NULL DEFAULT '[]',
	content_pillars TEXT NOT NULL DEFAULT '[]',
	target_kpis     TEXT NOT NULL DEFAULT '[]',
	created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_strategies_user ON content_strategies(user_id);

CREATE TABLE IF NOT EXISTS gap_analyses (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	topic            TEXT NOT NULL DEFAULT '',
	missing_keywords TEXT NOT NULL DEFAULT '[]',
	competitor_urls  TEXT NOT NULL DEFAULT '[]',
	opportunity      TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_gap_user ON gap_analyses(user_id);

CREATE TABLE IF NOT EXISTS platform_performance (
	user_id         TEXT NOT NULL,
	platform        TEXT NOT NULL,
	posts           INTEGER NOT NULL DEFAULT 0,
	engagement_rate REAL NOT NULL DEFAULT 0,
	best_day        TEXT NOT NULL DEFAULT '',
	recorded_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, platform)
);
`

// Store is the sqlite-backed content-planning store.
type Store struct {
	db     *sql.DB
	tracer trace.Tracer
}

// Open opens (creating if necessary) the store at path. Use ":memory:"
// for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	// modernc sqlite serializes writes through a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{
		db:     db,
		tracer: otel.Tracer(instrumentationName),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetOnboardingProfile returns the onboarding profile for a user.
func (s *Store) GetOnboardingProfile(ctx context.Context, userID string) (*OnboardingProfile, error) {
	ctx, span := s.tracer.Start(ctx, "store.get_onboarding_profile")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID))

	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, website_url, industry, target_audience, description, keywords, created_at
		FROM onboarding_profiles WHERE user_id = ?`, userID)

	var p OnboardingProfile
	var keywords string
	err := row.Scan(&p.UserID, &p.WebsiteURL, &p.Industry, &p.TargetAudience, &p.Description, &keywords, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("onboarding profile for user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("reading onboarding profile: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &p.Keywords); err != nil {
		return nil, fmt.Errorf("decoding keywords: %w", err)
	}
	return &p, nil
}

// PutOnboardingProfile inserts or replaces an onboarding profile.
func (s *Store) PutOnboardingProfile(ctx context.Context, p *OnboardingProfile) error {
	keywords, err := json.Marshal(p.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO onboarding_profiles
		(user_id, website_url, industry, target_audience, description, keywords)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.UserID, p.WebsiteURL, p.Industry, p.TargetAudience, p.Description, string(keywords))
	if err != nil {
		return fmt.Errorf("writing onboarding profile: %w", err)
	}
	return nil
}

// GetContentStrategy returns a strategy by ID.
func (s *Store) GetContentStrategy(ctx context.Context, strategyID string) (*ContentStrategy, error) {
	ctx, span := s.tracer.Start(ctx, "store.get_content_strategy")
	defer span.End()
	span.SetAttributes(attribute.String("strategy_id", strategyID))

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, active, business_goals, content_pillars, target_kpis, created_at
		FROM content_strategies WHERE id = ?`, strategyID)

	cs, err := scanStrategy(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("content strategy %s: %w", strategyID, ErrNotFound)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return cs, nil
}

// GetActiveStrategy returns the user's active strategy.
func (s *Store) GetActiveStrategy(ctx context.Context, userID string) (*ContentStrategy, error) {
	ctx, span := s.tracer.Start(ctx, "store.get_active_strategy")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID))

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, active, business_goals, content_pillars, target_kpis, created_at
		FROM content_strategies WHERE user_id = ? AND active = 1
		ORDER BY created_at DESC LIMIT 1`, userID)

	cs, err := scanStrategy(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active strategy for user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return cs, nil
}

// PutContentStrategy inserts or replaces a content strategy.
func (s *Store) PutContentStrategy(ctx context.Context, cs *ContentStrategy) error {
	goals, err := json.Marshal(cs.BusinessGoals)
	if err != nil {
		return fmt.Errorf("encoding business goals: %w", err)
	}
	pillars, err := json.Marshal(cs.ContentPillars)
	if err != nil {
		return fmt.Errorf("encoding content pillars: %w", err)
	}
	kpis, err := json.Marshal(cs.TargetKPIs)
	if err != nil {
		return fmt.Errorf("encoding target KPIs: %w", err)
	}
	active := 0
	if cs.Active {
		active = 1
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO content_strategies
		(id, user_id, name, active, business_goals, content_pillars, target_kpis)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cs.ID, cs.UserID, cs.Name, active, string(goals), string(pillars), string(kpis))
	if err != nil {
		return fmt.Errorf("writing content strategy: %w", err)
	}
	return nil
}

// ListGapAnalyses returns all gap analyses for a user, newest first.
func (s *Store) ListGapAnalyses(ctx context.Context, userID string) ([]*GapAnalysis, error) {
	ctx, span := s.tracer.Start(ctx, "store.list_gap_analyses")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, topic, missing_keywords, competitor_urls, opportunity, created_at
		FROM gap_analyses WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("listing gap analyses: %w", err)
	}
	defer rows.Close()

	var out []*GapAnalysis
	for rows.Next() {
		var g GapAnalysis
		var keywords, urls string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Topic, &keywords, &urls, &g.Opportunity, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning gap analysis: %w", err)
		}
		if err := json.Unmarshal([]byte(keywords), &g.MissingKeywords); err != nil {
			return nil, fmt.Errorf("decoding missing keywords: %w", err)
		}
		if err := json.Unmarshal([]byte(urls), &g.CompetitorURLs); err != nil {
			return nil, fmt.Errorf("decoding competitor URLs: %w", err)
		}
		out = append(out, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating gap analyses: %w", err)
	}
	span.SetAttributes(attribute.Int("result_count", len(out)))
	return out, nil
}

// PutGapAnalysis inserts or replaces a gap analysis.
func (s *Store) PutGapAnalysis(ctx context.Context, g *GapAnalysis) error {
	keywords, err := json.Marshal(g.MissingKeywords)
	if err != nil {
		return fmt.Errorf("encoding missing keywords: %w", err)
	}
	urls, err := json.Marshal(g.CompetitorURLs)
	if err != nil {
		return fmt.Errorf("encoding competitor URLs: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO gap_analyses
		(id, user_id, topic, missing_keywords, competitor_urls, opportunity)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Topic, string(keywords), string(urls), g.Opportunity)
	if err != nil {
		return fmt.Errorf("writing gap analysis: %w", err)
	}
	return nil
}

// ListPlatformPerformance returns performance rows for the given platforms.
// Platforms with no history are simply absent from the result; callers
// decide whether that is acceptable.
func (s *Store) ListPlatformPerformance(ctx context.Context, userID string, platforms []string) ([]*PlatformPerformance, error) {
	ctx, span := s.tracer.Start(ctx, "store.list_platform_performance")
	defer span.End()
	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.StringSlice("platforms", platforms),
	)

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, platform, posts, engagement_rate, best_day, recorded_at
		FROM platform_performance WHERE user_id = ? ORDER BY platform`, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("listing platform performance: %w", err)
	}
	defer rows.Close()

	wanted := make(map[string]bool, len(platforms))
	for _, p := range platforms {
		wanted[p] = true
	}

	var out []*PlatformPerformance
	for rows.Next() {
		var pp PlatformPerformance
		if err := rows.Scan(&pp.UserID, &pp.Platform, &pp.Posts, &pp.EngagementRate, &pp.BestDay, &pp.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning platform performance: %w", err)
		}
		if len(wanted) == 0 || wanted[pp.Platform] {
			out = append(out, &pp)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating platform performance: %w", err)
	}
	span.SetAttributes(attribute.Int("result_count", len(out)))
	return out, nil
}

// PutPlatformPerformance inserts or replaces a performance row.
func (s *Store) PutPlatformPerformance(ctx context.Context, pp *PlatformPerformance) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO platform_performance
		(user_id, platform, posts, engagement_rate, best_day)
		VALUES (?, ?, ?, ?, ?)`,
		pp.UserID, pp.Platform, pp.Posts, pp.EngagementRate, pp.BestDay)
	if err != nil {
		return fmt.Errorf("writing platform performance: %w", err)
	}
	return nil
}

// scannable is satisfied by *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanStrategy(row scannable) (*ContentStrategy, error) {
	var cs ContentStrategy
	var active int
	var goals, pillars, kpis string
	if err := row.Scan(&cs.ID, &cs.UserID, &cs.Name, &active, &goals, &pillars, &kpis, &cs.CreatedAt); err != nil {
		return nil, err
	}
	cs.Active = active != 0
	if err := json.Unmarshal([]byte(goals), &cs.BusinessGoals); err != nil {
		return nil, fmt.Errorf("decoding business goals: %w", err)
	}
	if err := json.Unmarshal([]byte(pillars), &cs.ContentPillars); err != nil {
		return nil, fmt.Errorf("decoding content pillars: %w", err)
	}
	if err := json.Unmarshal([]byte(kpis), &cs.TargetKPIs); err != nil {
		return nil, fmt.Errorf("decoding target KPIs: %w", err)
	}
	return &cs, nil
}

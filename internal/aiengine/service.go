package aiengine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	appconfig "github.com/AJaySi/AI-Writer-sub015/internal/config"
	"github.com/AJaySi/AI-Writer-sub015/internal/logging"
)

const instrumentationName = "github.com/AJaySi/AI-Writer-sub015/internal/aiengine"

var (
	// ErrInvalidResponse indicates the model output could not be decoded
	// as a JSON object.
	ErrInvalidResponse = errors.New("invalid model response")

	// ErrMissingFields indicates the decoded response lacks required keys.
	ErrMissingFields = errors.New("response missing required fields")
)

// Engine generates a structured result for a prompt. The requiredKeys
// argument names the top-level JSON keys the response must contain.
type Engine interface {
	Generate(ctx context.Context, prompt string, requiredKeys []string) (map[string]any, error)
}

// Service is the langchaingo-backed Engine implementation.
type Service struct {
	llm         llms.Model
	callOptions []llms.CallOption
	limiter     *rate.Limiter
	timeout     time.Duration
	logger      *logging.Logger
	tracer      trace.Tracer
}

// NewService creates an engine from configuration.
func NewService(cfg appconfig.EngineConfig, logger *logging.Logger) (*Service, error) {
	if cfg.BaseURL == "" || cfg.Model == "" {
		return nil, fmt.Errorf("engine base_url and model are required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	apiKey := cfg.APIKey.Value()
	if apiKey == "" {
		// langchaingo requires a token even for keyless local endpoints.
		apiKey = "placeholder"
	}

	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("creating model client: %w", err)
	}

	callOptions := []llms.CallOption{
		llms.WithTemperature(cfg.Temperature),
	}
	if cfg.MaxTokens > 0 {
		callOptions = append(callOptions, llms.WithMaxTokens(cfg.MaxTokens))
	}

	return &Service{
		llm:         llm,
		callOptions: callOptions,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1)),
		timeout:     cfg.RequestTimeout.Duration(),
		logger:      logger,
		tracer:      otel.Tracer(instrumentationName),
	}, nil
}

// Generate sends the prompt and decodes the response as a JSON object.
//
// The call is rate limited and bounded by the configured request timeout.
// A timeout surfaces as a plain error; callers treat it the same as any
// other unavailable data source.
func (s *Service) Generate(ctx context.Context, prompt string, requiredKeys []string) (map[string]any, error) {
	ctx, span := s.tracer.Start(ctx, "aiengine.generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("prompt_chars", len(prompt)),
		attribute.StringSlice("required_keys", requiredKeys),
	)

	if err := s.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Trace(ctx, "sending prompt", zap.String("prompt", prompt))
	start := time.Now()
	raw, err := llms.GenerateFromSinglePrompt(callCtx, s.llm, prompt, s.callOptions...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("generating completion: %w", err)
	}
	span.SetAttributes(attribute.Int64("duration_ms", time.Since(start).Milliseconds()))

	result, err := DecodeResponse(raw, requiredKeys)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return result, nil
}

// DecodeResponse extracts a JSON object from a raw model response and
// verifies the required top-level keys are present.
//
// Models frequently wrap JSON in markdown code fences or prose; the first
// balanced top-level object is used.
func DecodeResponse(raw string, requiredKeys []string) (map[string]any, error) {
	payload := extractJSONObject(raw)
	if payload == "" {
		return nil, fmt.Errorf("%w: no JSON object found", ErrInvalidResponse)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, ok := result[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return result, nil
}

// extractJSONObject returns the first balanced {...} block in s, ignoring
// braces inside JSON strings.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

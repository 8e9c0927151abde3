// Package http exposes the calendar generation API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AJaySi/AI-Writer-sub015/internal/calendar"
	"github.com/AJaySi/AI-Writer-sub015/internal/logging"
)

// Generator runs one calendar generation pipeline. Implemented by
// *orchestrator.Orchestrator.
type Generator interface {
	Run(ctx context.Context, userID, strategyID string, cfg calendar.Config) (*calendar.FinalCalendar, error)
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server provides the HTTP endpoints for calendard.
type Server struct {
	echo      *echo.Echo
	generator Generator
	logger    *logging.Logger
	config    *Config
}

// NewServer creates a new HTTP server over the given generator.
func NewServer(generator Generator, logger *logging.Logger, cfg *Config) (*Server, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8088,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestIDContext())
	e.Use(NewHTTPMetrics(logger).MetricsMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info(c.Request().Context(), "http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
			)

			return err
		}
	})

	s := &Server{
		echo:      e,
		generator: generator,
		logger:    logger,
		config:    cfg,
	}

	s.registerRoutes()

	return s, nil
}

// requestIDContext copies the echo request ID into the request context so
// every log line emitted below the handler carries it.
func requestIDContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(logging.WithRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/calendar/generate", s.handleGenerate)
}

// GenerateRequest is the request body for POST /api/v1/calendar/generate.
type GenerateRequest struct {
	UserID           string   `json:"user_id"`
	StrategyID       string   `json:"strategy_id"`
	DurationWeeks    int      `json:"duration_weeks"`
	Platforms        []string `json:"platforms"`
	PostingFrequency int      `json:"posting_frequency"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Completed int               `json:"completed_steps,omitempty"`
	Required  int               `json:"required_steps,omitempty"`
	Missing   []calendar.StepID `json:"missing_steps,omitempty"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleGenerate runs the full generation pipeline for one request and
// returns the assembled calendar. A run that completes too few steps maps
// to 422 with the step IDs that are missing.
func (s *Server) handleGenerate(c echo.Context) error {
	ctx := c.Request().Context()

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(ctx, "invalid generate request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id is required"})
	}
	if req.StrategyID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "strategy_id is required"})
	}

	cfg := calendar.Config{
		DurationWeeks:    req.DurationWeeks,
		Platforms:        req.Platforms,
		PostingFrequency: req.PostingFrequency,
	}
	if err := cfg.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	cal, err := s.generator.Run(ctx, req.UserID, req.StrategyID, cfg)
	if err != nil {
		var insufficient *calendar.InsufficientCompletionError
		switch {
		case errors.As(err, &insufficient):
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:     insufficient.Error(),
				Completed: insufficient.Completed,
				Required:  insufficient.Required,
				Missing:   insufficient.Missing,
			})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// Client went away or the run outlived the request deadline.
			return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "generation run interrupted"})
		default:
			s.logger.Error(ctx, "generation run failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "generation run failed"})
		}
	}

	return c.JSON(http.StatusOK, cal)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info(context.Background(), "starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}

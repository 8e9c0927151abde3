// Calendard is the content calendar generation daemon.
//
// It exposes an HTTP API that runs the 12-step generation pipeline against
// persisted planning data and an OpenAI-compatible model endpoint.
//
// Configuration comes from a YAML file and environment variables. See
// internal/config for the full surface.
//
// Usage:
//
//	# Start with defaults
//	calendard
//
//	# Start with a config file
//	calendard -config /etc/calendard/config.yaml
//
//	# Configure via environment
//	SERVER_PORT=9090 ENGINE_MODEL=gpt-4o calendard
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/AJaySi/AI-Writer-sub015/internal/aiengine"
	"github.com/AJaySi/AI-Writer-sub015/internal/config"
	httpserver "github.com/AJaySi/AI-Writer-sub015/internal/http"
	"github.com/AJaySi/AI-Writer-sub015/internal/logging"
	"github.com/AJaySi/AI-Writer-sub015/internal/orchestrator"
	"github.com/AJaySi/AI-Writer-sub015/internal/quality"
	"github.com/AJaySi/AI-Writer-sub015/internal/services"
	"github.com/AJaySi/AI-Writer-sub015/internal/steps"
	"github.com/AJaySi/AI-Writer-sub015/internal/store"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  calendard           Start the calendard daemon\n")
			fmt.Fprintf(os.Stderr, "  calendard version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("calendard\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the calendard server and blocks until context is cancelled.
//
// Initialization order:
//  1. Load and validate configuration
//  2. Initialize logger
//  3. Open the planning store
//  4. Create the AI engine and service registry
//  5. Build the step table, quality gates, and orchestrator
//  6. Start the HTTP server
//  7. Perform graceful shutdown on context cancellation
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() // Best-effort sync on shutdown
	}()

	logger.Info(ctx, "starting calendard",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("model", cfg.Engine.Model),
		zap.Int("min_completed_steps", cfg.Pipeline.MinCompletedSteps),
	)

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	logger.Info(ctx, "store opened", zap.String("path", cfg.Store.Path))

	engine, err := aiengine.NewService(cfg.Engine, logger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	backed := services.NewStoreBacked(db)
	registry := services.NewRegistry(services.Options{
		Onboarding:     backed,
		ActiveStrategy: backed,
		Planning:       backed,
		Engine:         engine,
	})

	gates := quality.NewGateSet(
		quality.ThresholdsFromConfig(cfg.Quality),
		quality.WithEngine(engine),
		quality.WithLogger(logger),
	)

	orch := orchestrator.New(
		steps.All(steps.Dependencies{Registry: registry, Logger: logger}),
		orchestrator.WithEvaluator(gates),
		orchestrator.WithMinCompletedSteps(cfg.Pipeline.MinCompletedSteps),
		orchestrator.WithWeakThreshold(cfg.Quality.Acceptable),
		orchestrator.WithStepTimeout(cfg.Pipeline.StepTimeout.Duration()),
		orchestrator.WithProgress(func(p orchestrator.Progress) {
			logger.Debug(ctx, "run progress",
				zap.String("run_id", p.RunID),
				zap.String("step", string(p.StepID)),
				zap.String("state", string(p.State)),
				zap.Int("percent", p.Percent),
			)
		}),
		orchestrator.WithLogger(logger),
	)

	srv, err := httpserver.NewServer(orch, logger, &httpserver.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}

// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/laguz/internal/anki"
	"github.com/starford/laguz/internal/api"
	"github.com/starford/laguz/internal/blocktree"
	"github.com/starford/laguz/internal/ledger"
	"github.com/starford/laguz/internal/lexicon"
	"github.com/starford/laguz/internal/llm"
	"github.com/starford/laguz/internal/mcpserver"
	"github.com/starford/laguz/internal/notice"
	"github.com/starford/laguz/internal/prompt"
	"github.com/starford/laguz/internal/vocab"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger. In MCP mode stdout carries the
	// protocol, so logs go to stderr.
	logOut := os.Stdout
	if app.mcp {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("anki_endpoint", cfg.Anki.Endpoint),
		slog.String("model", cfg.Model.Name),
		slog.String("ledger_path", cfg.Ledger.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Export ledger.
	led, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}
	defer led.Close()

	// In-memory block tree mirroring the host document.
	blocks := blocktree.NewStore()

	// Notice broker.
	broker := notice.NewBroker(500 * time.Millisecond)
	defer broker.Close()

	// System prompt source with optional file override.
	prompts, err := prompt.NewSource(cfg.Prompt.Path)
	if err != nil {
		return fmt.Errorf("init prompt source: %w", err)
	}

	// External collaborators.
	completer := app.completer
	if completer == nil {
		completer = llm.NewClient(cfg.Model.Endpoint, cfg.Model.APIKey, cfg.Model.Name,
			cfg.Model.MaxTokens, cfg.Model.Timeout)
	}
	sink := anki.NewClient(cfg.Anki.Endpoint, cfg.Anki.AllowDuplicate, cfg.Anki.Timeout)

	matching := lexicon.DefaultOptions()
	if cfg.Matching.FuzzyThreshold > 0 {
		matching.FuzzyThreshold = cfg.Matching.FuzzyThreshold
	}
	if cfg.Matching.MinSignificantWordLen > 0 {
		matching.MinSignificantWordLen = cfg.Matching.MinSignificantWordLen
	}
	if cfg.Matching.HarvestOverscan > 0 {
		matching.HarvestOverscan = cfg.Matching.HarvestOverscan
	}
	if cfg.Matching.DefinitionWrapLines > 0 {
		matching.DefinitionWrapLines = cfg.Matching.DefinitionWrapLines
	}

	svc := vocab.New(vocab.Params{
		Completer:     completer,
		Prompts:       prompts,
		Blocks:        blocks,
		Sink:          sink,
		Ledger:        led,
		Broker:        broker,
		Logger:        logger,
		Deck:          cfg.Anki.Deck,
		AllowReexport: cfg.Anki.AllowReexport,
		Matching:      matching,
	})

	// Shutdown signals cancel the group context so every goroutine,
	// including the prompt watcher, winds down.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	// Prompt hot-reload watcher.
	g.Go(func() error {
		return prompts.Watch(gCtx, logger)
	})

	if app.mcp {
		return runMCP(gCtx, g, svc, logger)
	}
	return runHTTP(gCtx, g, cfg, svc, blocks, broker, logger)
}

func runHTTP(ctx context.Context, g *errgroup.Group, cfg *Config, svc *vocab.Service,
	blocks *blocktree.Store, broker *notice.Broker, logger *slog.Logger) error {

	apiRouter := api.NewRouter(svc, blocks, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

func runMCP(ctx context.Context, g *errgroup.Group, svc *vocab.Service, logger *slog.Logger) error {
	// ServeStdio returns when stdin closes. Returning context.Canceled
	// cancels the group so the prompt watcher winds down too.
	g.Go(func() error {
		logger.Info("Starting MCP server on stdio")
		if err := mcpserver.New(svc).ServeStdio(); err != nil && ctx.Err() == nil {
			return err
		}
		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// Package main is the entrypoint for the ReviewLens API server.
package main

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

	"github.com/iiTzIsh/reviewlens/internal/analysis"
	"github.com/iiTzIsh/reviewlens/internal/api"
	"github.com/iiTzIsh/reviewlens/internal/api/handler"
	mw "github.com/iiTzIsh/reviewlens/internal/api/middleware"
	"github.com/iiTzIsh/reviewlens/internal/api/response"
	"github.com/iiTzIsh/reviewlens/internal/cache"
	"github.com/iiTzIsh/reviewlens/internal/config"
	"github.com/iiTzIsh/reviewlens/internal/genai"
	"github.com/iiTzIsh/reviewlens/internal/hfapi"
	"github.com/iiTzIsh/reviewlens/internal/pipeline"
	"github.com/iiTzIsh/reviewlens/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config, failing fast on invalid values
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "inference_enabled", cfg.InferenceEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	// 3. Run migrations
	if err := store.RunMigrations(cfg.Database.URL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// 4. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 5. Create inference backends. Without credentials the analyzers run
	// on their keyword fallbacks.
	var hfClient hfapi.Client
	if cfg.InferenceEnabled() {
		hfClient = hfapi.NewHTTPClient(cfg.HuggingFace.BaseURL, cfg.HuggingFace.APIKey, cfg.HuggingFace.Timeout)
		slog.Info("inference backend initialized", "base_url", cfg.HuggingFace.BaseURL)
	} else {
		slog.Warn("no inference credentials, running fallback-only")
	}

	var genClient genai.Client
	if cfg.Gemini.APIKey != "" {
		genClient = genai.NewHTTPClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
		slog.Info("generative backend initialized", "model", cfg.Gemini.Model)
	}

	// 6. Build the analysis pipeline
	classifier := analysis.NewClassifier(hfClient, cfg.HuggingFace.SentimentModel)
	scorer := analysis.NewScorer(hfClient, cfg.HuggingFace.ScoringModel)
	summarizer := analysis.NewSummarizer(hfClient, cfg.HuggingFace.SummaryModel)
	titler := analysis.NewTitleGenerator()
	tagger := analysis.NewTagger(genClient)
	coordinator := pipeline.NewCoordinator(classifier, scorer, summarizer)

	// 7. Create store
	pgStore := store.NewPostgresStore(pool)

	// 8. Build router with dependencies
	auth := mw.NewAuth(pgStore)
	rateLimit := mw.NewRateLimit(redisCache, 60)

	deps := api.Dependencies{
		Auth:      auth,
		RateLimit: rateLimit,

		HealthHandler: healthHandler(pgStore, redisCache),

		ClassifyHandler: handler.NewClassifyHandler(classifier, redisCache),
		ScoreHandler:    handler.NewScoreHandler(scorer, redisCache),
		TitleHandler:    handler.NewTitleHandler(titler),

		TagsHandler:      handler.NewTagsHandler(tagger),
		SummarizeHandler: handler.NewSummarizeHandler(summarizer),
		SearchHandler:    handler.NewSearchHandler(),

		AnalyzeReviewHandler: handler.NewAnalyzeReviewHandler(coordinator, pgStore),
		AnalyzeBatchHandler:  handler.NewAnalyzeBatchHandler(coordinator, pgStore),
		GetAnalysisHandler:   handler.NewGetAnalysisHandler(pgStore),
		ListAnalysesHandler:  handler.NewListAnalysesHandler(pgStore),

		StatusHandler: handler.NewStatusHandler(coordinator),

		CreateKeyHandler: handler.NewCreateKeyHandler(pgStore),
		ListKeysHandler:  handler.NewListKeysHandler(pgStore),
		RevokeKeyHandler: handler.NewRevokeKeyHandler(pgStore),
	}

	router := api.NewRouter(deps)

	// 9. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler checks database and cache connectivity.
func healthHandler(s store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"cache":    "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["database"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		degraded := checks["database"] != "ok" || checks["cache"] != "ok"
		if degraded {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}

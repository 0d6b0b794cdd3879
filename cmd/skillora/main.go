package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/skillora/skillora/internal/authtoken"
	"github.com/skillora/skillora/internal/categorize"
	"github.com/skillora/skillora/internal/config"
	"github.com/skillora/skillora/internal/generate"
	"github.com/skillora/skillora/internal/learningpath"
	"github.com/skillora/skillora/internal/ledger"
	"github.com/skillora/skillora/internal/middleware"
	"github.com/skillora/skillora/internal/projectideas"
	"github.com/skillora/skillora/internal/repository"
	"github.com/skillora/skillora/internal/server"
	"github.com/skillora/skillora/internal/session"
	"github.com/skillora/skillora/internal/videosource"
	"github.com/skillora/skillora/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Set up logging
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	slog.Info("starting skillora", "port", cfg.Port)

	// Connect to database
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	slog.Info("connected to database")

	if err := repository.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	pathRepo := repository.NewPathRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)

	// Initialize text generator
	var gen generate.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := generate.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			slog.Warn("failed to initialize Gemini generator", "error", err)
		} else {
			defer gemini.Close()
			gen = gemini
			slog.Info("Gemini generator enabled", "model", gemini.Model())
		}
	} else {
		slog.Warn("Gemini API key not configured, using fallback content")
	}

	// Initialize video source
	var source videosource.Source
	if cfg.YouTubeAPIKey != "" {
		yt, err := videosource.NewYouTubeSource(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			slog.Warn("failed to initialize YouTube source", "error", err)
		} else {
			source = yt
			slog.Info("YouTube video source enabled")
		}
	} else {
		slog.Warn("YouTube API key not configured, video search disabled")
	}

	// Optional Redis-backed rate limiter
	var limiter *middleware.RateLimiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = middleware.NewRateLimiter(client)
		slog.Info("rate limiter enabled", "addr", cfg.RedisAddr)
	} else {
		slog.Warn("Redis address not configured, rate limiting disabled")
	}

	ldg := ledger.New(profileRepo)

	// Initialize and start the award reconciler
	reconciler := worker.New(projectRepo, ldg, worker.Config{
		Interval:  time.Minute,
		BatchSize: 10,
	})
	reconciler.Start(ctx)

	// Initialize session store (24-hour TTL for sessions)
	sessions := session.NewStore(24 * time.Hour)
	defer sessions.Close()

	// Create server
	srv := server.New(server.Deps{
		Config:      cfg,
		Sessions:    sessions,
		Verifier:    authtoken.NewVerifier(cfg.AuthTokenSecret),
		Source:      source,
		Categorizer: categorize.New(gen),
		Paths:       learningpath.NewGenerator(gen),
		Ideas:       projectideas.NewGenerator(gen),
		Ledger:      ldg,
		Profiles:    profileRepo,
		History:     historyRepo,
		PathRepo:    pathRepo,
		Projects:    projectRepo,
		RateLimiter: limiter,
		Reconciler:  reconciler,
	})

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	<-shutdownChan
	slog.Info("shutting down...")

	// Stop the reconciler
	reconciler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

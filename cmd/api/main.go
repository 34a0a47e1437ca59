// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

// Command api is the entry point for the Boyama HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the S3 object-store client.
//  7. Wire domain services and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardakose/boyama/internal/api"
	"github.com/ardakose/boyama/internal/auth"
	"github.com/ardakose/boyama/internal/cache"
	"github.com/ardakose/boyama/internal/core/category"
	"github.com/ardakose/boyama/internal/core/page"
	"github.com/ardakose/boyama/internal/core/tag"
	"github.com/ardakose/boyama/internal/platform/apperr"
	"github.com/ardakose/boyama/internal/platform/config"
	"github.com/ardakose/boyama/internal/platform/constants"
	"github.com/ardakose/boyama/internal/platform/migration"
	pgstore "github.com/ardakose/boyama/internal/platform/postgres"
	redisstore "github.com/ardakose/boyama/internal/platform/redis"
	"github.com/ardakose/boyama/internal/platform/sec"
	"github.com/ardakose/boyama/internal/storage"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "boyama"))
	slog.SetDefault(log)

	log.Info("[Boyama] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "boyama"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Object Storage ─────────────────────────────────────────────────
	objects, err := storage.NewS3Store(startupCtx, storage.S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		UsePathStyle:    cfg.S3UsePathStyle,
		PublicBaseURL:   cfg.PublicAssetBaseURL,
	})
	must(log, err, "initialize object storage")

	// ── 7. Auth Service ───────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	authService := auth.NewService(tokenService, rdb, cfg.AdminEmail, cfg.AdminPasswordHash, log)
	authHandler := auth.NewHandler(authService)

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckStorage: func() error {
			// A missing probe object still proves the bucket is reachable.
			_, err := objects.Head(context.Background(), "health/probe")
			if err != nil && apperr.As(err) == nil {
				return err
			}
			return nil
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	invalidator := cache.NewInvalidator(rdb, log)

	pageRepository := page.NewRepository(pool)
	pageService := page.NewService(pageRepository, objects, invalidator, log, page.ServiceConfig{
		SignedURLTTL:        cfg.SignedURLTTL,
		MaxUploadBytes:      cfg.MaxUploadBytes,
		MaxChildUploadBytes: cfg.MaxChildUploadBytes,
	})
	pageHandler := page.NewHandler(pageService)

	categoryRepository := category.NewRepository(pool)
	categoryService := category.NewService(categoryRepository, invalidator, log)
	categoryHandler := category.NewHandler(categoryService)

	tagRepository := tag.NewRepository(pool)
	tagService := tag.NewService(tagRepository, invalidator, log)
	tagHandler := tag.NewHandler(tagService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Page:      pageHandler,
		Category:  categoryHandler,
		Tag:       tagHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, authService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

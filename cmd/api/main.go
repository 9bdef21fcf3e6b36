// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

// Command api is the entry point for the Stockroom HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/stockroomhq/stockroom/internal/api"
	"github.com/stockroomhq/stockroom/internal/core/company"
	"github.com/stockroomhq/stockroom/internal/core/inventory"
	"github.com/stockroomhq/stockroom/internal/core/report"
	"github.com/stockroomhq/stockroom/internal/core/task"
	"github.com/stockroomhq/stockroom/internal/identity"
	"github.com/stockroomhq/stockroom/internal/platform/config"
	"github.com/stockroomhq/stockroom/internal/platform/constants"
	"github.com/stockroomhq/stockroom/internal/platform/mail"
	"github.com/stockroomhq/stockroom/internal/platform/metrics"
	"github.com/stockroomhq/stockroom/internal/platform/migration"
	pgstore "github.com/stockroomhq/stockroom/internal/platform/postgres"
	redisstore "github.com/stockroomhq/stockroom/internal/platform/redis"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
	"github.com/stockroomhq/stockroom/internal/users/account"
	"github.com/stockroomhq/stockroom/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "stockroom"))
	slog.SetDefault(log)

	log.Info("[Stockroom] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "stockroom"))
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

	// ── 6. Platform Services ──────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	identityProvider, err := identity.NewGoogleVerifier(cfg.IdentityJWKSURL, cfg.IdentityIssuer, cfg.IdentityAudience, log)
	must(log, err, "initialize identity provider")

	var mailer mail.Mailer
	if cfg.MailEnabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, log)
	} else {
		log.Warn("smtp_not_configured", slog.String("effect", "outbound mail is logged, not delivered"))
		mailer = mail.NewNopMailer(log)
	}

	appMetrics := metrics.New()
	appMetrics.RegisterPoolCollector(func() (total, idle, acquired int32) {
		stat := pool.Stat()
		return stat.TotalConns(), stat.IdleConns(), stat.AcquiredConns()
	})

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewPostgresUserRepository(pool)
	companyRepository := company.NewPostgresRepository(pool)
	revokedTokens := auth.NewRevokedTokenRepository(rdb)

	authService := auth.NewService(auth.ServiceDeps{
		Users:         userRepository,
		Companies:     companyRepository,
		ResetTokens:   auth.NewResetTokenRepository(rdb),
		VerifyTokens:  auth.NewVerificationTokenRepository(rdb),
		Revoked:       revokedTokens,
		Tokens:        jwtSvc,
		Provider:      identityProvider,
		Mailer:        mailer,
		Metrics:       appMetrics,
		Logger:        log,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	authHandler := auth.NewHandler(authService)

	inventoryRepository := inventory.NewPostgresRepository(pool)
	inventoryService := inventory.NewService(inventoryRepository, appMetrics, log)
	inventoryHandler := inventory.NewHandler(inventoryService)

	taskService := task.NewService(task.NewPostgresRepository(pool), log)
	taskHandler := task.NewHandler(taskService)

	reportService := report.NewService(report.NewPostgresRepository(pool), inventoryRepository, appMetrics, log)
	reportHandler := report.NewHandler(reportService)

	accountService := account.NewService(account.NewPostgresRepository(pool), mailer, log)
	accountHandler := account.NewHandler(accountService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	verifier := auth.NewSessionVerifier(jwtSvc, revokedTokens, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Inventory: inventoryHandler,
		Task:      taskHandler,
		Report:    reportHandler,
		Account:   accountHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, verifier, appMetrics, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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

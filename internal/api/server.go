// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/stockroomhq/stockroom/internal/core/inventory"
	"github.com/stockroomhq/stockroom/internal/core/report"
	"github.com/stockroomhq/stockroom/internal/core/task"
	"github.com/stockroomhq/stockroom/internal/platform/config"
	"github.com/stockroomhq/stockroom/internal/platform/constants"
	"github.com/stockroomhq/stockroom/internal/platform/metrics"
	"github.com/stockroomhq/stockroom/internal/platform/middleware"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
	"github.com/stockroomhq/stockroom/internal/users/account"
	"github.com/stockroomhq/stockroom/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles sign-up, sign-in, federated identity, and token lifecycle.
	Auth *auth.Handler

	// Inventory handles item CRUD, CSV import, and low stock.
	Inventory *inventory.Handler

	// Task handles the company task board.
	Task *task.Handler

	// Report handles tabular reports, CSV export, and analytics.
	Report *report.Handler

	// Account handles member management and personal settings.
	Account *account.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, m *metrics.Metrics, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(m.Middleware())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", m.Handler())

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth)
			authed.Mount("/inventory", h.Inventory.Routes())
			authed.Mount("/tasks", h.Task.Routes())
			authed.Mount("/account", h.Account.AccountRoutes())
		})

		api.Group(func(elevated chi.Router) {
			elevated.Use(middleware.RequireRoles(sec.RoleManager, sec.RoleAdmin))
			elevated.Mount("/reports", h.Report.Routes())
			elevated.Mount("/analytics", h.Report.AnalyticsRoutes())
		})

		api.With(middleware.RequireRoles(sec.RoleAdmin)).Mount("/users", h.Account.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/pages"
	"github.com/taibuivan/playbill/internal/platform/config"
	"github.com/taibuivan/playbill/internal/platform/constants"
	"github.com/taibuivan/playbill/internal/platform/metrics"
	"github.com/taibuivan/playbill/internal/platform/middleware"
	"github.com/taibuivan/playbill/internal/social"
	"github.com/taibuivan/playbill/internal/users/auth"
	"github.com/taibuivan/playbill/internal/users/profile"
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
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is up.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 only when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles federated sign-in and sessions.
	Auth *auth.Handler

	// Catalog serves play reads and the admin mutations.
	Catalog *catalog.Handler

	// Social serves list toggles and reviews under /plays/{id}.
	Social *social.Handler

	// Profile serves /me.
	Profile *profile.Handler

	// Pages serves the composed screen read models.
	Pages *pages.Handler

	// LiveSearch upgrades to the debounced search socket.
	LiveSearch http.Handler

	// Media serves uploaded posters; nil when posters live elsewhere.
	Media http.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution. The request timeout
	// is applied per group below so the live search socket is not cut off.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(metrics.Instrument)
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	if h.Media != nil {
		prefix := strings.TrimSuffix(constants.MediaPathPrefix, "/")
		r.Method(http.MethodGet, constants.MediaPathPrefix+"*", http.StripPrefix(prefix, h.Media))
	}

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Method(http.MethodGet, "/search/live", h.LiveSearch)

		api.Group(func(timed chi.Router) {
			timed.Use(chimw.Timeout(constants.GlobalRequestTimeout))

			timed.Mount("/auth", h.Auth.Routes())
			timed.Route("/plays", func(plays chi.Router) {
				h.Catalog.RegisterRoutes(plays)
				h.Social.RegisterRoutes(plays)
			})
			timed.Mount("/admin/plays", h.Catalog.AdminRoutes())
			timed.Mount("/me", h.Profile.Routes())
			timed.Mount("/pages", h.Pages.Routes())
		})
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

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// OriginChecker admits live search sockets from the configured app origin;
// any origin is accepted in development.
func OriginChecker(cfg middleware.AppConfig) func(*http.Request) bool {
	return func(request *http.Request) bool {
		origin := request.Header.Get(constants.HeaderOrigin)
		return origin == "" || cfg.IsDevelopment() || origin == cfg.AllowedOrigin()
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

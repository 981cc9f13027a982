// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Playbill HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Discover the OpenID Connect issuer.
//  7. Wire HTTP handlers.
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

	"github.com/taibuivan/playbill/internal/api"
	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/media"
	"github.com/taibuivan/playbill/internal/pages"
	"github.com/taibuivan/playbill/internal/platform/config"
	"github.com/taibuivan/playbill/internal/platform/constants"
	"github.com/taibuivan/playbill/internal/platform/migration"
	pgstore "github.com/taibuivan/playbill/internal/platform/postgres"
	redisstore "github.com/taibuivan/playbill/internal/platform/redis"
	"github.com/taibuivan/playbill/internal/platform/sec"
	"github.com/taibuivan/playbill/internal/search"
	"github.com/taibuivan/playbill/internal/social"
	"github.com/taibuivan/playbill/internal/users/auth"
	"github.com/taibuivan/playbill/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "playbill"), slog.String("version", constants.AppVersion))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "playbill"), slog.String("version", constants.AppVersion))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives until shutdown; background workers (rate limiter cleanup) stop with it.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("postgres_pool_closing")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("redis_client_closing")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Identity ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	provider, err := auth.NewOIDCProvider(startupCtx, auth.OIDCConfig{
		IssuerURL:    cfg.OIDCIssuerURL,
		ClientID:     cfg.OIDCClientID,
		ClientSecret: cfg.OIDCClientSecret,
		RedirectURL:  cfg.OIDCRedirectURL,
	})
	must(log, err, "discover oidc issuer")

	// ── 7. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	posters, err := media.NewFilesystemStore(cfg.MediaDir, cfg.MediaBaseURL)
	must(log, err, "open media directory")

	profileService := profile.NewService(profile.NewPostgresRepository(pool), cfg.AdminEmails, log)
	catalogService := catalog.NewService(catalog.NewPostgresRepository(pool), media.NewService(posters), log)
	socialService := social.NewService(
		social.NewPostgresRelationRepository(pool),
		social.NewPostgresReviewRepository(pool),
		log,
	)
	authService := auth.NewService(
		provider,
		auth.NewStateRepository(rdb),
		auth.NewSessionRepository(rdb),
		profileService,
		tokens,
		log,
	)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth: auth.NewHandler(authService, auth.HandlerConfig{
			AppOrigin:     cfg.AppOrigin,
			SecureCookies: !cfg.IsDevelopment(),
		}),
		Catalog:    catalog.NewHandler(catalogService),
		Social:     social.NewHandler(socialService),
		Profile:    profile.NewHandler(profileService),
		Pages:      pages.NewHandler(pages.NewService(authService, catalogService, socialService, profileService)),
		LiveSearch: search.NewLiveHandler(catalogService, api.OriginChecker(cfg), search.DefaultDelay),
		Media:      http.FileServer(http.Dir(posters.Dir())),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(appCtx, cfg, log, authService, handlers)

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Limited to startup wiring. After startup, errors are returned and handled.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

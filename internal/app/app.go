// Package app assembles the API from configuration: repositories, auth,
// upload storage, router and background jobs.
package app

import (
	"context"
	"fmt"
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/auth"
	"github.com/synergy-india/admin-api/internal/config"
	"github.com/synergy-india/admin-api/internal/handlers"
	"github.com/synergy-india/admin-api/internal/models"
	"github.com/synergy-india/admin-api/internal/repository"
	"github.com/synergy-india/admin-api/internal/retention"
	"github.com/synergy-india/admin-api/internal/storage"
)

type App struct {
	cfg     *config.Config
	log     *logrus.Logger
	repos   *repository.Set
	router  *mux.Router
	proxies *handlers.TrustedProxies
	purger  *retention.Purger
}

// New connects to the configured backends and builds the router. The
// returned App must be closed.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	repos, err := repository.Open(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	a, err := build(ctx, cfg, logger, repos)
	if err != nil {
		_ = repos.Close(ctx)
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, cfg *config.Config, logger *logrus.Logger, repos *repository.Set) (*App, error) {
	proxies, err := handlers.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	authSvc := auth.NewService(logger, repos.AdminUsers, repos.LoginHistory, auth.NewTokenIssuer(cfg.JWTSecret, nil))
	if err := auth.Bootstrap(ctx, authSvc, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword); err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	r := mux.NewRouter()

	var backend storage.Storage
	switch cfg.StorageBackend {
	case config.StorageS3:
		s3, err := storage.NewS3Storage(cfg)
		if err != nil {
			return nil, err
		}
		backend = s3
	default:
		local, err := storage.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		r.PathPrefix(storage.LocalURLPrefix + "/").Handler(local.Handler()).Methods(http.MethodGet, http.MethodHead)
		backend = local
	}
	// Downscaling only applies to files kept on local disk.
	optimize := cfg.OptimizeImages && cfg.StorageBackend == config.StorageLocal
	uploader := storage.NewUploader(logger, backend, optimize)

	h := handlers.New(logger, repos, authSvc, uploader)
	handlers.RegisterRoutes(r, h,
		handlers.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow),
		handlers.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow),
	)

	a := &App{
		cfg:     cfg,
		log:     logger,
		repos:   repos,
		router:  r,
		proxies: proxies,
	}
	if cfg.AccessLogPersist && cfg.AccessLogRetention > 0 {
		a.purger = retention.NewPurger(logger, repos.AccessLogs, cfg.AccessLogRetention, cfg.PurgeInterval)
	}
	return a, nil
}

// Handler returns the router wrapped with client address resolution, request
// logging, CORS and panic recovery.
func (a *App) Handler() http.Handler {
	var sink repository.Repository[models.AccessLog]
	if a.cfg.AccessLogPersist {
		sink = a.repos.AccessLogs
	}

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(a.cfg.CORSOrigins),
		gorillahandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	recovery := gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(a.log.WithField("component", "recovery")),
	)

	return recovery(a.proxies.Middleware(handlers.LoggingMiddleware(a.log, sink)(cors(a.router))))
}

// Start runs background jobs until ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	if a.purger != nil {
		go a.purger.Start(ctx)
	}
}

func (a *App) Close(ctx context.Context) error {
	return a.repos.Close(ctx)
}

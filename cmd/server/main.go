package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/app"
	"github.com/synergy-india/admin-api/internal/config"
	httpserver "github.com/synergy-india/admin-api/internal/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	logger, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid logging configuration")
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := application.Close(closeCtx); err != nil {
			logger.WithError(err).Error("Failed to close database")
		}
	}()

	application.Start(ctx)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      application.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.WithFields(logrus.Fields{
		"db_backend":      cfg.DBBackend,
		"storage_backend": cfg.StorageBackend,
	}).Info("Starting admin API")

	return httpserver.Run(ctx, logger, server, cfg.ShutdownTimeout)
}

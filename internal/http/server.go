// Package httpserver runs the API server.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Run serves until ctx is cancelled, then shuts the server down, waiting at
// most shutdownTimeout for in-flight requests.
func Run(ctx context.Context, logger *logrus.Logger, server *http.Server, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, logger, server, ln, shutdownTimeout)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, logger *logrus.Logger, server *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	log := logger.WithField("component", "http_server")

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", ln.Addr().String()).Info("Starting HTTP server")
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown error")
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("HTTP server stopped")
	return nil
}

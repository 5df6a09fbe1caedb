// Package handlers implements the REST API served under /api.
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/apperrors"
	"github.com/synergy-india/admin-api/internal/auth"
	"github.com/synergy-india/admin-api/internal/repository"
	"github.com/synergy-india/admin-api/internal/storage"
)

const (
	APIName    = "SYNERGY INDIA Admin API"
	APIVersion = "1.0.0"

	// List endpoints return at most DefaultListLimit records and the CSV
	// export at most DefaultExportLimit. A warning is logged when a response
	// is cut at the limit.
	DefaultListLimit   = 1000
	DefaultExportLimit = 10000
)

type Handler struct {
	repos   *repository.Set
	auth    *auth.Service
	uploads *storage.Uploader
	log     *logrus.Entry
	now     func() time.Time

	listLimit   int
	exportLimit int
}

func New(logger *logrus.Logger, repos *repository.Set, authSvc *auth.Service, uploads *storage.Uploader) *Handler {
	return &Handler{
		repos:   repos,
		auth:    authSvc,
		uploads: uploads,
		log:     logger.WithField("component", "api"),
		now:     time.Now,

		listLimit:   DefaultListLimit,
		exportLimit: DefaultExportLimit,
	}
}

func (h *Handler) warnIfTruncated(r *http.Request, n, limit int) {
	if n < limit {
		return
	}
	h.log.WithFields(logrus.Fields{
		"path":  r.URL.Path,
		"limit": limit,
	}).Warn("Response truncated at record limit")
}

func (h *Handler) timestamp() time.Time {
	return h.now().UTC()
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": APIName,
		"version": APIVersion,
	})
}

// lookupError turns a repository lookup failure into an API error naming
// the missing resource.
func lookupError(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(resource + " not found")
	}
	return apperrors.Upstream("Failed to load "+strings.ToLower(resource), err)
}

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

type message struct {
	Message string `json:"message"`
}

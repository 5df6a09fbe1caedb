package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/synergy-india/admin-api/internal/apperrors"
	"github.com/synergy-india/admin-api/internal/models"
	"github.com/synergy-india/admin-api/internal/repository"
)

const logoCategory = "logos"

type settingsPatch[T any] interface {
	Validate() error
	Apply(*T, time.Time)
}

// currentSettings returns the stored singleton, or defaults with found=false
// when none has been saved yet.
func currentSettings[T repository.Entity](ctx context.Context, repo repository.Repository[T], defaults func(time.Time) T, now time.Time) (T, bool, error) {
	s, err := repo.FindOne(ctx, repository.Filter{})
	if err == nil {
		return s, true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return s, false, err
	}
	return defaults(now), false, nil
}

func saveSettings[T repository.Entity](ctx context.Context, repo repository.Repository[T], s T, found bool) error {
	if found {
		return repo.Update(ctx, s)
	}
	return repo.Insert(ctx, s)
}

// getSettings serves a settings singleton, storing the defaults on first read.
func getSettings[T repository.Entity](h *Handler, repo repository.Repository[T], defaults func(time.Time) T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, found, err := currentSettings(r.Context(), repo, defaults, h.timestamp())
		if err == nil && !found {
			err = repo.Insert(r.Context(), s)
		}
		if err != nil {
			h.writeError(w, r, apperrors.Upstream("Failed to load settings", err))
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// putSettings patches a settings singleton, starting from the defaults when
// nothing is stored.
func putSettings[T repository.Entity, P settingsPatch[T]](h *Handler, repo repository.Repository[T], defaults func(time.Time) T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch P
		if err := decodeJSON(w, r, &patch); err != nil {
			h.writeError(w, r, err)
			return
		}
		if err := patch.Validate(); err != nil {
			h.writeError(w, r, apperrors.BadRequest(err.Error()))
			return
		}

		now := h.timestamp()
		s, found, err := currentSettings(r.Context(), repo, defaults, now)
		if err == nil {
			patch.Apply(&s, now)
			err = saveSettings(r.Context(), repo, s, found)
		}
		if err != nil {
			h.writeError(w, r, apperrors.Upstream("Failed to save settings", err))
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

type logoUploaded struct {
	Message string `json:"message"`
	LogoURL string `json:"logo_url"`
}

// UploadLogo stores a new site logo and points the general settings at it.
// The previous logo file is removed best-effort.
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, cleanup, err := formFile(w, r, "file")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer cleanup()

	url, err := h.uploads.Upload(ctx, file, logoCategory)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	now := h.timestamp()
	settings, found, err := currentSettings(ctx, h.repos.General, models.DefaultGeneralSettings, now)
	previous := settings.LogoURL
	if err == nil {
		settings.LogoURL = url
		settings.UpdatedAt = now
		err = saveSettings(ctx, h.repos.General, settings, found)
	}
	if err != nil {
		h.uploads.Remove(ctx, url)
		h.writeError(w, r, apperrors.Upstream("Failed to save settings", err))
		return
	}
	if previous != "" && previous != url {
		h.uploads.Remove(ctx, previous)
	}

	writeJSON(w, http.StatusOK, logoUploaded{Message: "Logo uploaded successfully", LogoURL: url})
}

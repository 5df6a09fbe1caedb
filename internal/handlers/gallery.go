package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/synergy-india/admin-api/internal/apperrors"
	"github.com/synergy-india/admin-api/internal/models"
	"github.com/synergy-india/admin-api/internal/repository"
)

const galleryCategory = "gallery"

func (h *Handler) ListGallery(w http.ResponseWriter, r *http.Request) {
	images, err := h.repos.Gallery.FindMany(r.Context(), repository.Filter{}.OrderBy("order", false).Take(h.listLimit))
	if err != nil {
		h.writeError(w, r, apperrors.Upstream("Failed to load gallery", err))
		return
	}
	h.warnIfTruncated(r, len(images), h.listLimit)
	writeJSON(w, http.StatusOK, images)
}

func (h *Handler) GetGalleryImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.repos.Gallery.FindByID(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, lookupError(err, "Image"))
		return
	}
	writeJSON(w, http.StatusOK, image)
}

// CreateGalleryImage accepts a multipart upload with the image in "file" and
// its metadata as form fields.
func (h *Handler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, cleanup, err := formFile(w, r, "file")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer cleanup()

	req, err := galleryForm(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	url, err := h.uploads.Upload(ctx, file, galleryCategory)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	image := req.Build(url, h.timestamp())
	if err := h.repos.Gallery.Insert(ctx, image); err != nil {
		h.uploads.Remove(ctx, url)
		h.writeError(w, r, apperrors.Upstream("Failed to save image", err))
		return
	}
	writeJSON(w, http.StatusOK, image)
}

func galleryForm(r *http.Request) (models.GalleryImageCreate, error) {
	req := models.GalleryImageCreate{
		AltText:  r.FormValue("alt_text"),
		Caption:  r.FormValue("caption"),
		Category: r.FormValue("category"),
		IsActive: true,
	}
	if v := strings.TrimSpace(r.FormValue("order")); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			return req, apperrors.BadRequest("order must be an integer")
		}
		req.Order = order
	}
	if v := strings.TrimSpace(r.FormValue("is_active")); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return req, apperrors.BadRequest("is_active must be a boolean")
		}
		req.IsActive = active
	}
	if err := req.Validate(); err != nil {
		return req, apperrors.BadRequest(err.Error())
	}
	return req, nil
}

func (h *Handler) UpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req models.GalleryImageUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	image, err := h.repos.Gallery.FindByID(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, lookupError(err, "Image"))
		return
	}
	req.Apply(&image, h.timestamp())
	if err := h.repos.Gallery.Update(r.Context(), image); err != nil {
		h.writeError(w, r, lookupError(err, "Image"))
		return
	}
	writeJSON(w, http.StatusOK, image)
}

func (h *Handler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	image, err := h.repos.Gallery.FindByID(ctx, pathID(r))
	if err != nil {
		h.writeError(w, r, lookupError(err, "Image"))
		return
	}
	if err := h.repos.Gallery.Delete(ctx, image.ID); err != nil {
		h.writeError(w, r, lookupError(err, "Image"))
		return
	}
	h.uploads.Remove(ctx, image.URL)
	writeJSON(w, http.StatusOK, message{Message: "Image deleted successfully"})
}

// ReorderGallery sets the display order of several images. Unknown ids are
// skipped.
func (h *Handler) ReorderGallery(w http.ResponseWriter, r *http.Request) {
	var orders []models.GalleryOrder
	if err := decodeJSON(w, r, &orders); err != nil {
		h.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	now := h.timestamp()
	for _, o := range orders {
		image, err := h.repos.Gallery.FindByID(ctx, o.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				h.log.WithField("image_id", o.ID).Debug("Skipping unknown image in reorder")
				continue
			}
			h.writeError(w, r, lookupError(err, "Image"))
			return
		}
		image.Order = o.Order
		image.UpdatedAt = now
		if err := h.repos.Gallery.Update(ctx, image); err != nil {
			h.writeError(w, r, apperrors.Upstream("Failed to reorder images", err))
			return
		}
	}
	writeJSON(w, http.StatusOK, message{Message: "Images reordered successfully"})
}

package handlers

import (
	"net/http"
	"slices"

	"github.com/synergy-india/admin-api/internal/apperrors"
	"github.com/synergy-india/admin-api/internal/models"
	"github.com/synergy-india/admin-api/internal/repository"
)

const serviceImageCategory = "services"

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.repos.Services.FindMany(r.Context(), repository.Filter{}.Take(h.listLimit))
	if err != nil {
		h.writeError(w, r, apperrors.Upstream("Failed to load services", err))
		return
	}
	h.warnIfTruncated(r, len(services), h.listLimit)
	writeJSON(w, http.StatusOK, services)
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.repos.Services.FindByID(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, lookupError(err, "Service"))
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceCreate
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, apperrors.BadRequest(err.Error()))
		return
	}

	svc := req.Build(h.timestamp())
	if err := h.repos.Services.Insert(r.Context(), svc); err != nil {
		h.writeError(w, r, apperrors.Upstream("Failed to create service", err))
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	svc, err := h.repos.Services.FindByID(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, lookupError(err, "Service"))
		return
	}
	req.Apply(&svc, h.timestamp())
	if err := h.repos.Services.Update(r.Context(), svc); err != nil {
		h.writeError(w, r, lookupError(err, "Service"))
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, err := h.repos.Services.FindByID(ctx, pathID(r))
	if err != nil {
		h.writeError(w, r, lookupError(err, "Service"))
		return
	}
	if err := h.repos.Services.Delete(ctx, svc.ID); err != nil {
		h.writeError(w, r, lookupError(err, "Service"))
		return
	}
	for _, image := range svc.Images {
		h.uploads.Remove(ctx, image)
	}
	writeJSON(w, http.StatusOK, message{Message: "Service deleted successfully"})
}

type imageUploaded struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
}

// AddServiceImage uploads one image and appends it to the service. A service
// holds at most models.MaxServiceImages images.
func (h *Handler) AddServiceImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := pathID(r)

	svc, err := h.repos.Services.FindByID(ctx, id)
	if err != nil {
		h.writeError(w, r, lookupError(err, "Service"))
		return
	}
	if len(svc.Images) >= models.MaxServiceImages {
		h.writeError(w, r, apperrors.BadRequest("Service can have maximum 4 images"))
		return
	}

	file, cleanup, err := formFile(w, r, "file")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer cleanup()

	url, err := h.uploads.Upload(ctx, file, serviceImageCategory)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// Reload to narrow the window in which a concurrent upload can push the
	// service past the cap. The final write is still last-write-wins.
	svc, err = h.repos.Services.FindByID(ctx, id)
	if err == nil && len(svc.Images) >= models.MaxServiceImages {
		err = apperrors.BadRequest("Service can have maximum 4 images")
	}
	if err == nil {
		svc.Images = append(svc.Images, url)
		svc.UpdatedAt = h.timestamp()
		err = h.repos.Services.Update(ctx, svc)
	}
	if err != nil {
		h.uploads.Remove(ctx, url)
		if apperrors.CodeOf(err) == apperrors.CodeUnknown {
			err = lookupError(err, "Service")
		}
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, imageUploaded{Message: "Image uploaded successfully", ImageURL: url})
}

// RemoveServiceImage detaches image_url from the service and deletes the
// stored file best-effort.
func (h *Handler) RemoveServiceImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	imageURL, err := formValue(w, r, "image_url")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if imageURL == "" {
		h.writeError(w, r, apperrors.BadRequest("image_url is required"))
		return
	}

	svc, err := h.repos.Services.FindByID(ctx, pathID(r))
	if err != nil {
		h.writeError(w, r, lookupError(err, "Service"))
		return
	}
	i := slices.Index(svc.Images, imageURL)
	if i < 0 {
		h.writeError(w, r, apperrors.NotFound("Image not found"))
		return
	}

	images := make([]string, 0, len(svc.Images)-1)
	images = append(images, svc.Images[:i]...)
	svc.Images = append(images, svc.Images[i+1:]...)
	svc.UpdatedAt = h.timestamp()
	if err := h.repos.Services.Update(ctx, svc); err != nil {
		h.writeError(w, r, lookupError(err, "Service"))
		return
	}
	h.uploads.Remove(ctx, imageURL)

	writeJSON(w, http.StatusOK, message{Message: "Image removed successfully"})
}

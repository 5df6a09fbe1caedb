package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/synergy-india/admin-api/internal/models"
)

// RegisterRoutes mounts the API under /api. Login and the public lead form
// are throttled by their own limiters.
func RegisterRoutes(r *mux.Router, h *Handler, loginLimiter, leadLimiter *RateLimiter) {
	api := r.PathPrefix("/api").Subrouter()
	admin := func(f http.HandlerFunc) http.Handler {
		return h.RequireAuth(f)
	}

	api.HandleFunc("/", h.Root).Methods(http.MethodGet)

	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	api.Handle("/auth/me", admin(h.Me)).Methods(http.MethodGet)

	api.HandleFunc("/services", h.ListServices).Methods(http.MethodGet)
	api.Handle("/services", admin(h.CreateService)).Methods(http.MethodPost)
	api.HandleFunc("/services/{id}", h.GetService).Methods(http.MethodGet)
	api.Handle("/services/{id}", admin(h.UpdateService)).Methods(http.MethodPut)
	api.Handle("/services/{id}", admin(h.DeleteService)).Methods(http.MethodDelete)
	api.Handle("/services/{id}/images", admin(h.AddServiceImage)).Methods(http.MethodPost)
	api.Handle("/services/{id}/images", admin(h.RemoveServiceImage)).Methods(http.MethodDelete)

	api.HandleFunc("/gallery", h.ListGallery).Methods(http.MethodGet)
	api.Handle("/gallery", admin(h.CreateGalleryImage)).Methods(http.MethodPost)
	api.Handle("/gallery/reorder", admin(h.ReorderGallery)).Methods(http.MethodPut)
	api.HandleFunc("/gallery/{id}", h.GetGalleryImage).Methods(http.MethodGet)
	api.Handle("/gallery/{id}", admin(h.UpdateGalleryImage)).Methods(http.MethodPut)
	api.Handle("/gallery/{id}", admin(h.DeleteGalleryImage)).Methods(http.MethodDelete)

	api.Handle("/leads", admin(h.ListLeads)).Methods(http.MethodGet)
	api.Handle("/leads", leadLimiter.Middleware(http.HandlerFunc(h.CreateLead))).Methods(http.MethodPost)
	api.Handle("/leads/export/csv", admin(h.ExportLeadsCSV)).Methods(http.MethodGet)
	api.Handle("/leads/{id}", admin(h.GetLead)).Methods(http.MethodGet)
	api.Handle("/leads/{id}", admin(h.UpdateLead)).Methods(http.MethodPut)
	api.Handle("/leads/{id}", admin(h.DeleteLead)).Methods(http.MethodDelete)

	api.HandleFunc("/settings/contact-form",
		getSettings(h, h.repos.ContactForm, models.DefaultContactFormSettings)).Methods(http.MethodGet)
	api.Handle("/settings/contact-form",
		admin(putSettings[models.ContactFormSettings, models.ContactFormSettingsUpdate](h, h.repos.ContactForm, models.DefaultContactFormSettings))).Methods(http.MethodPut)
	api.HandleFunc("/settings/cta",
		getSettings(h, h.repos.CTA, models.DefaultCTASettings)).Methods(http.MethodGet)
	api.Handle("/settings/cta",
		admin(putSettings[models.CTASettings, models.CTASettingsUpdate](h, h.repos.CTA, models.DefaultCTASettings))).Methods(http.MethodPut)
	api.HandleFunc("/settings/general",
		getSettings(h, h.repos.General, models.DefaultGeneralSettings)).Methods(http.MethodGet)
	api.Handle("/settings/general",
		admin(putSettings[models.GeneralSettings, models.GeneralSettingsUpdate](h, h.repos.General, models.DefaultGeneralSettings))).Methods(http.MethodPut)
	api.Handle("/settings/general/logo", admin(h.UploadLogo)).Methods(http.MethodPost)

	api.Handle("/dashboard/stats", admin(h.DashboardStats)).Methods(http.MethodGet)
	api.Handle("/security/login-history", admin(h.LoginHistory)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Detail: "Not Found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Detail: "Method Not Allowed"})
	})
}

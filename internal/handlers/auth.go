package handlers

import (
	"net/http"

	"github.com/synergy-india/admin-api/internal/apperrors"
	"github.com/synergy-india/admin-api/internal/auth"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var cred auth.Credentials
	if err := decodeJSON(w, r, &cred); err != nil {
		h.writeError(w, r, err)
		return
	}
	if cred.Username == "" || cred.Password == "" {
		h.writeError(w, r, apperrors.BadRequest("username and password are required"))
		return
	}
	cred.IPAddress = getClientIP(r)
	cred.UserAgent = r.UserAgent()

	result, err := h.auth.Login(r.Context(), cred)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		h.writeError(w, r, apperrors.Unauthorized("Not authenticated", nil))
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) LoginHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.auth.LoginHistory(r.Context(), 100)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

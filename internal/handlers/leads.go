package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/apperrors"
	"github.com/synergy-india/admin-api/internal/models"
	"github.com/synergy-india/admin-api/internal/repository"
)

func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	filter := repository.Filter{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter = repository.Where(repository.Eq("status", status))
	}

	leads, err := h.repos.Leads.FindMany(r.Context(), filter.OrderBy("created_at", true).Take(h.listLimit))
	if err != nil {
		h.writeError(w, r, apperrors.Upstream("Failed to load leads", err))
		return
	}
	h.warnIfTruncated(r, len(leads), h.listLimit)
	writeJSON(w, http.StatusOK, leads)
}

func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := h.repos.Leads.FindByID(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, lookupError(err, "Lead"))
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// CreateLead is the public contact-form endpoint.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req models.LeadCreate
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, apperrors.BadRequest(err.Error()))
		return
	}

	lead := req.Build(h.timestamp())
	if err := h.repos.Leads.Insert(r.Context(), lead); err != nil {
		h.writeError(w, r, apperrors.Upstream("Failed to submit enquiry", err))
		return
	}
	h.log.WithFields(logrus.Fields{
		"lead_id": lead.ID,
		"service": lead.ServiceInterested,
	}).Info("Lead received")
	writeJSON(w, http.StatusOK, lead)
}

func (h *Handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	var req models.LeadUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, apperrors.BadRequest(err.Error()))
		return
	}

	lead, err := h.repos.Leads.FindByID(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, lookupError(err, "Lead"))
		return
	}
	req.Apply(&lead, h.timestamp())
	if err := h.repos.Leads.Update(r.Context(), lead); err != nil {
		h.writeError(w, r, lookupError(err, "Lead"))
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *Handler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := h.repos.Leads.Delete(r.Context(), pathID(r)); err != nil {
		h.writeError(w, r, lookupError(err, "Lead"))
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Lead deleted successfully"})
}

type csvExport struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

var leadCSVHeader = []string{
	"Name", "Phone", "Email", "Service Interested", "Project Type", "Message", "Status", "Created At",
}

// ExportLeadsCSV returns every lead, newest first, as CSV text wrapped in
// JSON so the admin UI can offer it as a download.
func (h *Handler) ExportLeadsCSV(w http.ResponseWriter, r *http.Request) {
	leads, err := h.repos.Leads.FindMany(r.Context(), repository.Filter{}.OrderBy("created_at", true).Take(h.exportLimit))
	if err != nil {
		h.writeError(w, r, apperrors.Upstream("Failed to export leads", err))
		return
	}
	h.warnIfTruncated(r, len(leads), h.exportLimit)

	writeJSON(w, http.StatusOK, csvExport{
		Filename: "leads_export_" + h.timestamp().Format("20060102_150405") + ".csv",
		Content:  leadsCSV(leads),
	})
}

func leadsCSV(leads []models.Lead) string {
	var b strings.Builder
	b.WriteString(strings.Join(leadCSVHeader, ","))
	b.WriteByte('\n')
	for _, l := range leads {
		writeCSVRow(&b,
			l.Name,
			l.Phone,
			deref(l.Email),
			l.ServiceInterested,
			l.ProjectType,
			deref(l.Message),
			l.Status,
			l.CreatedAt.UTC().Format(time.RFC3339),
		)
	}
	return b.String()
}

// writeCSVRow writes one RFC 4180 record with every field quoted.
func writeCSVRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

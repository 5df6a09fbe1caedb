package handlers

import (
	"net/http"
	"time"

	"github.com/synergy-india/admin-api/internal/apperrors"
	"github.com/synergy-india/admin-api/internal/models"
	"github.com/synergy-india/admin-api/internal/repository"
)

type DashboardStats struct {
	TotalLeads         int64         `json:"total_leads"`
	TodayEnquiries     int64         `json:"today_enquiries"`
	TotalServices      int64         `json:"total_services"`
	TotalGalleryImages int64         `json:"total_gallery_images"`
	RecentLeads        []models.Lead `json:"recent_leads"`
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardStats(r)
	if err != nil {
		h.writeError(w, r, apperrors.Upstream("Failed to load dashboard", err))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) dashboardStats(r *http.Request) (DashboardStats, error) {
	ctx := r.Context()
	var stats DashboardStats
	var err error

	if stats.TotalLeads, err = h.repos.Leads.Count(ctx, repository.Filter{}); err != nil {
		return stats, err
	}
	today := h.timestamp().Truncate(24 * time.Hour)
	if stats.TodayEnquiries, err = h.repos.Leads.Count(ctx, repository.Where(repository.Gte("created_at", today))); err != nil {
		return stats, err
	}
	if stats.TotalServices, err = h.repos.Services.Count(ctx, repository.Where(repository.Eq("is_active", true))); err != nil {
		return stats, err
	}
	if stats.TotalGalleryImages, err = h.repos.Gallery.Count(ctx, repository.Where(repository.Eq("is_active", true))); err != nil {
		return stats, err
	}
	if stats.RecentLeads, err = h.repos.Leads.FindMany(ctx, repository.Filter{}.OrderBy("created_at", true).Take(5)); err != nil {
		return stats, err
	}
	return stats, nil
}

package handlers

import (
	"net/http"

	"github.com/vidinsight/backend/internal/models"
	"github.com/vidinsight/backend/internal/videos"
)

// AnalyticsHandler serves aggregates over the signed-in user's videos.
type AnalyticsHandler struct {
	Sessions SessionStore
	Videos   VideoStore
}

// Dashboard handles GET /api/v1/dashboard.
func (h AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	owned, ok := h.ownedVideos(w, r)
	if !ok {
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, videos.Dashboard(owned))
}

// Analytics handles GET /api/v1/analytics.
func (h AnalyticsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	owned, ok := h.ownedVideos(w, r)
	if !ok {
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, videos.Analytics(owned))
}

func (h AnalyticsHandler) ownedVideos(w http.ResponseWriter, r *http.Request) ([]models.VideoRecord, bool) {
	user, ok := VideoHandler{Sessions: h.Sessions, Videos: h.Videos}.authorize(w, r)
	if !ok {
		return nil, false
	}
	return h.Videos.ListByOwner(user.ID), true
}

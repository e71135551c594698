package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vidinsight/backend/internal/logging"
	"github.com/vidinsight/backend/internal/models"
	"github.com/vidinsight/backend/internal/videos"
)

// VideoHandler provides endpoints for the signed-in user's video records.
type VideoHandler struct {
	Sessions SessionStore
	Videos   VideoStore
}

// Collection handles GET and POST on /api/v1/videos.
func (h VideoHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles GET, PATCH and DELETE on /api/v1/videos/{id}.
func (h VideoHandler) Item(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPatch:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h VideoHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := h.authorize(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	status := strings.TrimSpace(query.Get("status"))
	if status != "" && status != videos.StatusAll && !models.VideoStatus(status).Valid() {
		respondError(ctx, w, http.StatusBadRequest, "status must be one of all, processing, completed, failed")
		return
	}

	owned := h.Videos.ListByOwner(user.ID)
	respondJSON(ctx, w, http.StatusOK, videoListResponse{Videos: videos.Filter(owned, query.Get("search"), status)})
}

func (h VideoHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	if _, ok := h.authorize(w, r); !ok {
		return
	}

	var req createVideoRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		logger.Warn("invalid video payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	video, err := h.Videos.Add(ctx, videos.NewVideo{
		Title:        strings.TrimSpace(req.Title),
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, videos.ErrNoSession):
			respondError(ctx, w, http.StatusUnauthorized, "not signed in")
		case errors.Is(err, videos.ErrInvalidVideo):
			respondError(ctx, w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("failed to add video", "error", err)
			respondError(ctx, w, http.StatusInternalServerError, "failed to add video")
		}
		return
	}

	respondJSON(ctx, w, http.StatusCreated, videoResponse{Video: video})
}

func (h VideoHandler) get(w http.ResponseWriter, r *http.Request) {
	video, ok := h.owned(w, r)
	if !ok {
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, videoResponse{Video: video})
}

func (h VideoHandler) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	video, ok := h.owned(w, r)
	if !ok {
		return
	}

	var req updateVideoRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Videos.Update(ctx, video.ID, req.patch())
	if err != nil {
		switch {
		case errors.Is(err, videos.ErrVideoNotFound):
			respondError(ctx, w, http.StatusNotFound, "video not found")
		case errors.Is(err, videos.ErrInvalidPatch):
			respondError(ctx, w, http.StatusBadRequest, err.Error())
		default:
			logging.FromContext(ctx).Error("failed to update video", "videoId", video.ID, "error", err)
			respondError(ctx, w, http.StatusInternalServerError, "failed to update video")
		}
		return
	}

	respondJSON(ctx, w, http.StatusOK, videoResponse{Video: updated})
}

func (h VideoHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	video, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.Videos.Delete(ctx, video.ID); err != nil {
		if errors.Is(err, videos.ErrVideoNotFound) {
			respondError(ctx, w, http.StatusNotFound, "video not found")
			return
		}
		logging.FromContext(ctx).Error("failed to delete video", "videoId", video.ID, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to delete video")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorize resolves the signed-in user, writing the error response when
// there is none.
func (h VideoHandler) authorize(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	ctx := r.Context()
	if h.Videos == nil {
		logging.FromContext(ctx).Error("video store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "video services unavailable")
		return models.User{}, false
	}
	user, ok := currentUser(h.Sessions)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "not signed in")
		return models.User{}, false
	}
	return user, true
}

// owned looks up the {id} record, hiding other users' records behind a 404.
func (h VideoHandler) owned(w http.ResponseWriter, r *http.Request) (models.VideoRecord, bool) {
	user, ok := h.authorize(w, r)
	if !ok {
		return models.VideoRecord{}, false
	}

	video, found := h.Videos.Get(r.PathValue("id"))
	if !found || video.UserID != user.ID {
		respondError(r.Context(), w, http.StatusNotFound, "video not found")
		return models.VideoRecord{}, false
	}
	return video, true
}

type createVideoRequest struct {
	Title        string `json:"title" validate:"max=200"`
	VideoURL     string `json:"videoUrl" validate:"required,url"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	Duration     int    `json:"duration" validate:"gte=0"`
}

type updateVideoRequest struct {
	Title        *string          `json:"title" validate:"omitnil,min=1,max=200"`
	VideoURL     *string          `json:"videoUrl" validate:"omitempty,url"`
	ThumbnailURL *string          `json:"thumbnailUrl" validate:"omitempty,url"`
	Duration     *int             `json:"duration" validate:"omitempty,gte=0"`
	Status       *string          `json:"status" validate:"omitempty,oneof=processing completed failed"`
	Summary      *summaryPayload  `json:"summary"`
	Insights     *insightsPayload `json:"insights"`
}

type summaryPayload struct {
	Overview   string   `json:"overview"`
	KeyPoints  []string `json:"keyPoints"`
	Sentiment  string   `json:"sentiment" validate:"required,oneof=positive negative neutral"`
	Topics     []string `json:"topics"`
	Confidence float64  `json:"confidence" validate:"gte=0,lte=1"`
}

type insightsPayload struct {
	Engagement      float64  `json:"engagement" validate:"gte=0,lte=100"`
	Complexity      float64  `json:"complexity" validate:"gte=0,lte=100"`
	ActionItems     []string `json:"actionItems"`
	Recommendations []string `json:"recommendations"`
}

func (req updateVideoRequest) patch() videos.VideoPatch {
	patch := videos.VideoPatch{
		Title:        req.Title,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
	}
	if req.Status != nil {
		status := models.VideoStatus(*req.Status)
		patch.Status = &status
	}
	if req.Summary != nil {
		patch.Summary = &models.Summary{
			Overview:   req.Summary.Overview,
			KeyPoints:  req.Summary.KeyPoints,
			Sentiment:  models.Sentiment(req.Summary.Sentiment),
			Topics:     req.Summary.Topics,
			Confidence: req.Summary.Confidence,
		}
	}
	if req.Insights != nil {
		patch.Insights = &models.Insights{
			Engagement:      req.Insights.Engagement,
			Complexity:      req.Insights.Complexity,
			ActionItems:     req.Insights.ActionItems,
			Recommendations: req.Insights.Recommendations,
		}
	}
	return patch
}

type videoResponse struct {
	Video models.VideoRecord `json:"video"`
}

type videoListResponse struct {
	Videos []models.VideoRecord `json:"videos"`
}

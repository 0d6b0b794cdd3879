package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skillora/skillora/internal/middleware"
	"github.com/skillora/skillora/internal/repository"
)

// HistoryHandler serves persisted search results
type HistoryHandler struct {
	history *repository.HistoryRepository
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(history *repository.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /api/history?limit=
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.history.List(ctx, identity.UID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list search history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

// SetWatched handles PATCH /api/history/{topic}/videos/{videoID}
func (h *HistoryHandler) SetWatched(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	topic := strings.TrimSpace(chi.URLParam(r, "topic"))
	videoID := strings.TrimSpace(chi.URLParam(r, "videoID"))
	if topic == "" || videoID == "" {
		writeError(w, http.StatusBadRequest, "topic and video id are required")
		return
	}

	var req struct {
		Watched bool `json:"watched"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	found, err := h.history.SetWatched(ctx, identity.UID, topic, videoID, req.Watched)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update watched flag")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "video not found in search history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"topic":    topic,
		"video_id": videoID,
		"watched":  req.Watched,
	})
}

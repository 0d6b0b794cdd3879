package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/skillora/skillora/internal/categorize"
	"github.com/skillora/skillora/internal/middleware"
	"github.com/skillora/skillora/internal/repository"
	"github.com/skillora/skillora/internal/videosource"
)

// SearchHandler fetches videos for a topic, buckets them by skill
// level and records the result in the caller's search history.
type SearchHandler struct {
	source      videosource.Source
	categorizer *categorize.Categorizer
	history     *repository.HistoryRepository
}

// NewSearchHandler creates a new SearchHandler. source may be nil when
// no video source is configured.
func NewSearchHandler(source videosource.Source, categorizer *categorize.Categorizer, history *repository.HistoryRepository) *SearchHandler {
	return &SearchHandler{
		source:      source,
		categorizer: categorizer,
		history:     history,
	}
}

// Search handles GET /api/search?topic=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	if h.source == nil {
		writeError(w, http.StatusServiceUnavailable, "video search is not configured")
		return
	}

	videos, err := h.source.Search(ctx, topic)
	if err != nil {
		slog.Error("video search failed", "topic", topic, "error", err)
		writeError(w, http.StatusBadGateway, "video search failed")
		return
	}

	categorized := h.categorizer.Categorize(ctx, videos, topic)

	// History is best effort. A storage hiccup should not cost the
	// caller their search results.
	if err := h.history.Save(ctx, identity.UID, topic, categorized); err != nil {
		slog.Error("failed to save search history", "uid", identity.UID, "topic", topic, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"topic":  topic,
		"videos": categorized,
	})
}

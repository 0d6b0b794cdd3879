package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/skillora/skillora/internal/learningpath"
	"github.com/skillora/skillora/internal/middleware"
	"github.com/skillora/skillora/internal/model"
	"github.com/skillora/skillora/internal/repository"
	"github.com/skillora/skillora/internal/session"
)

// LearningPathHandler generates and manages per-user learning paths
type LearningPathHandler struct {
	generator *learningpath.Generator
	paths     *repository.PathRepository
}

// NewLearningPathHandler creates a new LearningPathHandler
func NewLearningPathHandler(generator *learningpath.Generator, paths *repository.PathRepository) *LearningPathHandler {
	return &LearningPathHandler{
		generator: generator,
		paths:     paths,
	}
}

// Create handles POST /api/learning-paths. The path content comes
// from the generator (or its fallback), not the request body.
func (h *LearningPathHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Topic string `json:"topic"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	generated := h.generator.Generate(ctx, topic)

	path, err := h.paths.Create(ctx, identity.UID, topic, generated.Title, generated.Description, generated.Steps)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save learning path")
		return
	}

	writeJSON(w, http.StatusCreated, path)
}

// List handles GET /api/learning-paths
func (h *LearningPathHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	paths, err := h.paths.ListByUser(ctx, identity.UID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list learning paths")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"learning_paths": paths})
}

// Get handles GET /api/learning-paths/{id}
func (h *LearningPathHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, path, ok := h.ownedPath(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, path)
}

// Update handles PUT /api/learning-paths/{id}
func (h *LearningPathHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, path, ok := h.ownedPath(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Steps       []string `json:"steps"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || len(req.Steps) == 0 {
		writeError(w, http.StatusBadRequest, "title and steps are required")
		return
	}

	updated, err := h.paths.Update(ctx, path.ID, req.Title, req.Description, req.Steps)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update learning path")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "learning path not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/learning-paths/{id}
func (h *LearningPathHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, path, ok := h.ownedPath(w, r)
	if !ok {
		return
	}

	deleted, err := h.paths.Delete(ctx, path.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete learning path")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "learning path not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedPath loads the path from the URL and checks the caller owns it.
// On failure it writes the error response and returns ok=false.
func (h *LearningPathHandler) ownedPath(w http.ResponseWriter, r *http.Request) (session.Identity, *model.LearningPath, bool) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return session.Identity{}, nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid learning path id")
		return identity, nil, false
	}

	path, err := h.paths.GetByID(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load learning path")
		return identity, nil, false
	}
	if path == nil || path.UserID != identity.UID {
		// Hide the existence of other users' paths.
		writeError(w, http.StatusNotFound, "learning path not found")
		return identity, nil, false
	}

	return identity, path, true
}

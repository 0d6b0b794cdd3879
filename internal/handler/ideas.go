package handler

import (
	"net/http"
	"strings"

	"github.com/skillora/skillora/internal/model"
	"github.com/skillora/skillora/internal/projectideas"
)

// IdeasHandler serves AI-suggested project ideas for a topic
type IdeasHandler struct {
	generator *projectideas.Generator
}

// NewIdeasHandler creates a new IdeasHandler
func NewIdeasHandler(generator *projectideas.Generator) *IdeasHandler {
	return &IdeasHandler{generator: generator}
}

// List handles GET /api/project-ideas?topic=&skill_level=
func (h *IdeasHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	skillLevel := model.SkillLevel(r.URL.Query().Get("skill_level"))

	ideas := h.generator.Generate(ctx, topic, skillLevel)

	writeJSON(w, http.StatusOK, map[string]any{
		"topic": topic,
		"ideas": ideas,
	})
}

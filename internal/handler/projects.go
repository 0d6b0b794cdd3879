package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/skillora/skillora/internal/ledger"
	"github.com/skillora/skillora/internal/middleware"
	"github.com/skillora/skillora/internal/model"
	"github.com/skillora/skillora/internal/repository"
	"github.com/skillora/skillora/internal/session"
	"github.com/skillora/skillora/internal/urlutil"
)

// ProjectHandler manages user projects and drives the point ledger
// when a project is created.
type ProjectHandler struct {
	projects *repository.ProjectRepository
	ledger   *ledger.Ledger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projects *repository.ProjectRepository, ldg *ledger.Ledger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		ledger:   ldg,
	}
}

type projectRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	RepositoryURL string   `json:"repository_url"`
	LiveURL       *string  `json:"live_url"`
	Technologies  []string `json:"technologies"`
	SkillLevel    string   `json:"skill_level"`
	Status        string   `json:"status"`
}

// normalizeTechnologies trims entries and drops empties and
// case-insensitive duplicates, keeping first-seen order.
func normalizeTechnologies(techs []string) []string {
	seen := make(map[string]bool, len(techs))
	out := make([]string, 0, len(techs))
	for _, tech := range techs {
		tech = strings.TrimSpace(tech)
		if tech == "" {
			continue
		}
		key := strings.ToLower(tech)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tech)
	}
	return out
}

// Create handles POST /api/projects. Points are priced from the skill
// level at creation and the award is applied immediately. If the
// award fails the project stays pending and the reconcile worker
// picks it up.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	skillLevel := model.SkillLevel(req.SkillLevel)
	if !skillLevel.Valid() {
		writeError(w, http.StatusBadRequest, "skill_level must be beginner, intermediate or advanced")
		return
	}

	status := model.ProjectStatus(req.Status)
	if req.Status == "" {
		status = model.ProjectPlanning
	}
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be planning, in-progress or completed")
		return
	}

	repoURL, err := urlutil.ValidateProjectURL(req.RepositoryURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid repository_url")
		return
	}

	var liveURL *string
	if req.LiveURL != nil && strings.TrimSpace(*req.LiveURL) != "" {
		validated, err := urlutil.ValidateProjectURL(*req.LiveURL)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid live_url")
			return
		}
		liveURL = &validated
	}

	project, err := h.projects.Create(ctx, &repository.CreateProjectInput{
		UserID:        identity.UID,
		Title:         req.Title,
		Description:   req.Description,
		RepositoryURL: repoURL,
		LiveURL:       liveURL,
		Technologies:  normalizeTechnologies(req.Technologies),
		SkillLevel:    skillLevel,
		Status:        status,
		Points:        ledger.PointsForSkill(skillLevel),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	if err := h.ledger.ScoreProject(ctx, *project); err != nil {
		slog.Error("point award deferred to reconciler", "project", project.ID, "error", err)
	} else if err := h.projects.MarkScored(ctx, project.ID); err != nil {
		slog.Error("failed to mark project scored", "project", project.ID, "error", err)
	}

	writeJSON(w, http.StatusCreated, project)
}

// List handles GET /api/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	projects, err := h.projects.ListByUser(ctx, identity.UID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// Get handles GET /api/projects/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, project, ok := h.ownedProject(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// Update handles PUT /api/projects/{id}. Points, owner and skill
// level are fixed at creation and cannot be changed.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, project, ok := h.ownedProject(w, r)
	if !ok {
		return
	}

	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	status := model.ProjectStatus(req.Status)
	if req.Status == "" {
		status = project.Status
	}
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be planning, in-progress or completed")
		return
	}

	repoURL, err := urlutil.ValidateProjectURL(req.RepositoryURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid repository_url")
		return
	}

	var liveURL *string
	if req.LiveURL != nil && strings.TrimSpace(*req.LiveURL) != "" {
		validated, err := urlutil.ValidateProjectURL(*req.LiveURL)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid live_url")
			return
		}
		liveURL = &validated
	}

	updated, err := h.projects.Update(ctx, project.ID, &repository.UpdateProjectInput{
		Title:         req.Title,
		Description:   req.Description,
		RepositoryURL: repoURL,
		LiveURL:       liveURL,
		Technologies:  normalizeTechnologies(req.Technologies),
		Status:        status,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update project")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/projects/{id}. Earned points are kept.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, project, ok := h.ownedProject(w, r)
	if !ok {
		return
	}

	deleted, err := h.projects.Delete(ctx, project.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedProject loads the project from the URL and checks the caller
// owns it. On failure it writes the error response and returns
// ok=false.
func (h *ProjectHandler) ownedProject(w http.ResponseWriter, r *http.Request) (session.Identity, *model.Project, bool) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return session.Identity{}, nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return identity, nil, false
	}

	project, err := h.projects.GetByID(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return identity, nil, false
	}
	if project == nil || project.UserID != identity.UID {
		writeError(w, http.StatusNotFound, "project not found")
		return identity, nil, false
	}

	return identity, project, true
}

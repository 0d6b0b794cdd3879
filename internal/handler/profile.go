package handler

import (
	"net/http"

	"github.com/skillora/skillora/internal/middleware"
	"github.com/skillora/skillora/internal/repository"
)

// ProfileHandler serves the caller's gamification profile
type ProfileHandler struct {
	profiles *repository.ProfileRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.profiles.GetByUID(ctx, identity.UID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		// Profiles are created at sign-in, but a session can outlive
		// a wiped database.
		profile, err = h.profiles.CreateIfAbsent(ctx, identity.UID, identity.DisplayName, identity.Email, identity.PhotoURL)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load profile")
			return
		}
	}

	writeJSON(w, http.StatusOK, profile)
}

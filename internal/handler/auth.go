package handler

import (
	"net/http"
	"strings"

	"github.com/skillora/skillora/internal/authtoken"
	"github.com/skillora/skillora/internal/repository"
	"github.com/skillora/skillora/internal/session"
)

// AuthHandler exchanges auth provider identity tokens for sessions
type AuthHandler struct {
	verifier *authtoken.Verifier
	sessions *session.Store
	profiles *repository.ProfileRepository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(verifier *authtoken.Verifier, sessions *session.Store, profiles *repository.ProfileRepository) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		sessions: sessions,
		profiles: profiles,
	}
}

// CreateSession verifies the provider identity token, creates the
// user profile on first sign-in, and issues a session token.
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	identity, err := h.verifier.Verify(req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid identity token")
		return
	}

	profile, err := h.profiles.CreateIfAbsent(ctx, identity.UID, identity.DisplayName, identity.Email, identity.PhotoURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	token, err := h.sessions.Create(identity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token":   token,
		"profile": profile,
	})
}

// DeleteSession signs the caller out
func (h *AuthHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		writeError(w, http.StatusBadRequest, "missing bearer token")
		return
	}

	h.sessions.Delete(strings.TrimSpace(parts[1]))
	w.WriteHeader(http.StatusNoContent)
}

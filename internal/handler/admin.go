package handler

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/skillora/skillora/internal/worker"
)

// AdminHandler exposes operational endpoints guarded by an API key.
// The key is compared against a bcrypt hash so the plaintext never
// lives in configuration.
type AdminHandler struct {
	keyHash []byte
	worker  *worker.Worker
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(keyHash string, w *worker.Worker) *AdminHandler {
	return &AdminHandler{
		keyHash: []byte(keyHash),
		worker:  w,
	}
}

// Reconcile handles POST /admin/reconcile, running one pass over
// projects with unapplied point awards.
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if len(h.keyHash) == 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	key := r.Header.Get("X-Admin-Key")
	if err := bcrypt.CompareHashAndPassword(h.keyHash, []byte(key)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid admin key")
		return
	}

	scored := h.worker.RunOnce(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{"scored": scored})
}

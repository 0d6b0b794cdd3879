package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/skillora/skillora/internal/session"
)

type contextKey struct{ name string }

var identityKey = contextKey{"identity"}

// Auth validates the bearer session token and injects the resolved
// identity into the request context. Handlers read it back with
// IdentityFrom; nothing holds the signed-in user globally.
func Auth(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			identity, ok := sessions.Lookup(token)
			if !ok {
				unauthorized(w, "invalid or expired session")
				return
			}

			// Refresh session TTL on activity
			sessions.Refresh(token)

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the identity injected by Auth. ok is false on
// unauthenticated requests.
func IdentityFrom(ctx context.Context) (session.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(session.Identity)
	return identity, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

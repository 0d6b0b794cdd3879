package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter applies fixed-window request limits backed by Redis.
// Provider calls are the expensive path, so the limiter sits in front
// of the AI-calling endpoints only.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a RateLimiter over the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Limit allows at most limit requests per window per user (falling
// back to the remote address before authentication). Redis errors
// fail open.
func (rl *RateLimiter) Limit(name string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := r.RemoteAddr
			if identity, ok := IdentityFrom(r.Context()); ok {
				subject = identity.UID
			}
			key := fmt.Sprintf("ratelimit:%s:%s", name, subject)

			count, err := rl.client.Incr(r.Context(), key).Result()
			if err != nil {
				slog.Warn("rate limiter unavailable", "name", name, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rl.client.Expire(r.Context(), key, window)
			}

			if count > int64(limit) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"too many requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Passthrough returns a middleware that does nothing, used when no
// Redis address is configured.
func Passthrough() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return next
	}
}

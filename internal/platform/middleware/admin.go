package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"sentra/pkg/requestcontext"
)

// adminActor attributes writes performed with the shared admin key, which
// carries no identity of its own.
const adminActor = "admin-key"

// RequireAdminKey guards mutating catalog endpoints with a shared admin key.
// Only the bcrypt hash of the key is configured; the comparison is
// constant-time by construction. When no hash is configured the fallback
// guard (normally the bearer-token guard) takes over, so the endpoints stay
// reachable and every version gets an attributable author.
func RequireAdminKey(keyHash string, fallback func(http.Handler) http.Handler, logger *slog.Logger) func(http.Handler) http.Handler {
	if keyHash == "" {
		return fallback
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Admin-Key")
			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				logger.WarnContext(r.Context(), "admin key mismatch",
					"request_id", requestcontext.RequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin key required"}`))
				return
			}
			ctx := requestcontext.WithActorID(r.Context(), adminActor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

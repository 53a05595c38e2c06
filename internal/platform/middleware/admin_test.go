package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sentra/pkg/requestcontext"
)

func adminKeyHash(t *testing.T, key string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func actorEcho(captured *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = requestcontext.ActorID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func Test_RequireAdminKey_ValidKeyStampsActor(t *testing.T) {
	guard := RequireAdminKey(adminKeyHash(t, "s3cret"), nil, slog.Default())

	var actor string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/controls/SWIFT-2.8/versions", nil)
	req.Header.Set("X-Admin-Key", "s3cret")
	guard(actorEcho(&actor)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "admin-key", actor)
}

func Test_RequireAdminKey_WrongOrMissingKey(t *testing.T) {
	guard := RequireAdminKey(adminKeyHash(t, "s3cret"), nil, slog.Default())

	for _, key := range []string{"", "wrong"} {
		var actor string
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/controls/SWIFT-2.8/versions", nil)
		if key != "" {
			req.Header.Set("X-Admin-Key", key)
		}
		guard(actorEcho(&actor)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "unauthorized")
		assert.Empty(t, actor)
	}
}

// With no admin key hash configured the guard must hand the request to the
// fallback guard instead of rejecting everything against an empty hash.
func Test_RequireAdminKey_UnsetHashUsesFallback(t *testing.T) {
	fallback := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithActorID(r.Context(), "auditor-7")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
	guard := RequireAdminKey("", fallback, slog.Default())

	var actor string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/controls/SWIFT-2.8/versions", nil)
	guard(actorEcho(&actor)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "auditor-7", actor)
}

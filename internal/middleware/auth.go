package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/techup/travelshare/backend/internal/domain"
)

// TokenVerifier validates an access token string and returns the identity it
// carries. Satisfied by token.Issuer; defined here so tests can fake it.
type TokenVerifier interface {
	Verify(tokenString string) (domain.Identity, error)
}

type identityKey struct{}

// IdentityFromContext returns the authenticated identity injected by
// NewAuthHandler. The second return is false on routes that did not pass
// through the auth middleware.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity. Exported for
// handler tests that call handlers without running the middleware.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// NewAuthHandler returns a middleware that requires a valid
// "Authorization: Bearer <token>" header. On success the caller's identity is
// placed on the request context; any missing, malformed, or invalid token
// gets a 401 and the request never reaches the handler.
func NewAuthHandler(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || value == "" {
				unauthenticated(w, "missing bearer token")
				return
			}

			id, err := verifier.Verify(value)
			if err != nil {
				unauthenticated(w, "invalid or expired access token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// unauthenticated writes the same error envelope the handlers use, without
// importing the handler package (middleware sits below it).
func unauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"unauthenticated","message":"` + message + `"}}`))
}

package identity

import (
	"context"
	"net/http"
	"strings"

	"pandacare/internal/pkg/logx"
)

// contextKey prevents collisions with context values set by other packages.
type contextKey string

const (
	identityKey contextKey = "identity"
	tokenKey    contextKey = "bearer_token"
)

// Middleware extracts the bearer credential from the Authorization header and
// injects the decoded Identity and the raw token into the request context.
// The gateway never verifies the signature (the backend does); a missing or
// undecodable credential leaves the request anonymous rather than rejecting it.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			id, decErr := Decode(token)
			if decErr != nil {
				logx.Warn("Could not decode bearer credential, treating request as anonymous")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			ctx = context.WithValue(ctx, tokenKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken pulls the token out of an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

// FromContext returns the decoded Identity for the request, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// TokenFromContext returns the raw bearer token for the request, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

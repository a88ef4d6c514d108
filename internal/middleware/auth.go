package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ali-azimo/house-aj/internal/auth"
	"github.com/ali-azimo/house-aj/internal/http/respond"
	"github.com/ali-azimo/house-aj/internal/models"
)

type identityKey struct{}

// IdentityFrom extracts the authenticated identity placed by Auth.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(auth.Identity)
	return identity, ok
}

// Auth requires a valid token from the access_token cookie or the
// Authorization header and stores the resulting identity in the request
// context. Missing and invalid credentials both map to 401.
func Auth(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			respond.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		identity, err := tokens.Verify(token)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly layers an admin role check on top of Auth.
func AdminOnly(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return Auth(tokens, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok || auth.RequireRole(identity, models.RoleAdmin) != nil {
			respond.Error(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

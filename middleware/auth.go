package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/services"
)

type contextKey string

const claimsContextKey contextKey = "auth.claims"

var ErrNoClaimsInContext = errors.New("no authentication claims in context")

// Authenticate validates the bearer token and stashes its claims in the
// request context. Requests without a valid token are rejected.
func Authenticate(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseToken(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize allows only the listed roles past. Must run after Authenticate.
func Authorize(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ClaimsFromContext(r.Context())
			if err != nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if role == claims.Role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "insufficient permissions", http.StatusForbidden)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*services.Claims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*services.Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaimsInContext
	}
	return claims, nil
}

// GetUserIDFromContext is a shortcut for handlers that only need the caller's
// identity.
func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

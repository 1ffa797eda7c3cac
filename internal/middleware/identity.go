package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// PlaceholderUserID identifies the single storefront shopper until a
// real auth system replaces the resolver.
const PlaceholderUserID = "user_123"

// IdentityResolver maps an inbound request to a user identifier. The
// cart and checkout logic only ever sees the resolved id, so swapping
// in session- or token-based resolution touches nothing but this
// middleware.
type IdentityResolver interface {
	Resolve(r *http.Request) string
}

// StaticResolver resolves the user from the `user` query parameter,
// falling back to the fixed placeholder shopper.
type StaticResolver struct {
	Fallback string
}

func (s StaticResolver) Resolve(r *http.Request) string {
	if user := r.URL.Query().Get("user"); user != "" {
		return user
	}
	if s.Fallback != "" {
		return s.Fallback
	}
	return PlaceholderUserID
}

// IdentityMiddleware resolves the requesting user and stores the id in
// the request context.
func IdentityMiddleware(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), UserIDKey, resolver.Resolve(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID retrieves the resolved user id from the context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

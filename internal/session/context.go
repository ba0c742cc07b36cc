package session

import (
	"context"
	"net/http"

	"blogsite/internal/models"
)

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying user.
func WithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// Principal returns the user stored in ctx, or the anonymous principal.
func Principal(ctx context.Context) *models.User {
	user, ok := ctx.Value(principalKey{}).(*models.User)
	if !ok || user == nil {
		return models.Anonymous()
	}
	return user
}

// Middleware resolves the request's principal once and stores it in the
// request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := m.Load(r)
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), user)))
	})
}

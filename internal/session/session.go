// Package session carries the externally supplied login state through
// request context. The core never reads ambient globals; whoever fronts
// this service decides what a session is.
package session

import (
	"context"
	"net/http"
)

// Role is the opaque role flag supplied by the session boundary.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is the explicit session object passed into the core.
type Session struct {
	LoggedIn bool
	Role     Role
}

type contextKey string

const sessionKey contextKey = "session"

// WithSession attaches a session to the context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session, or a logged-out zero session.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(sessionKey).(Session); ok {
		return s
	}
	return Session{}
}

// Header names the fronting layer uses to hand the session over.
const (
	HeaderAuthenticated = "X-Session-Authenticated"
	HeaderRole          = "X-Session-Role"
)

// Middleware parses the session headers into the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := Session{
			LoggedIn: r.Header.Get(HeaderAuthenticated) == "true",
			Role:     RoleUser,
		}
		if r.Header.Get(HeaderRole) == string(RoleAdmin) {
			s.Role = RoleAdmin
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequireAdmin gates admin-only routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := FromContext(r.Context())
		if !s.LoggedIn || s.Role != RoleAdmin {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserNameKey  contextKey = "userName"
	UserEmailKey contextKey = "userEmail"
)

// Identity lifts the caller's display identity from headers into the request
// context. Identity and session management live outside this service; the
// headers are set by the fronting layer. Absent identity fails nothing here —
// only operations that require an active user reject downstream.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if name := strings.TrimSpace(r.Header.Get("X-User-Name")); name != "" {
			ctx = context.WithValue(ctx, UserNameKey, name)
		}
		if email := strings.TrimSpace(r.Header.Get("X-User-Email")); email != "" {
			ctx = context.WithValue(ctx, UserEmailKey, email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserName gets the caller's display name from context
func GetUserName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UserNameKey).(string)
	return name, ok
}

// GetUserEmail gets the caller's email from context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// FirstName returns the leading word of the caller's display name, used for
// reply personalization
func FirstName(ctx context.Context) string {
	name, ok := GetUserName(ctx)
	if !ok {
		return ""
	}
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

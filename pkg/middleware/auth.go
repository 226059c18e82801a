package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/souqdz/souq/pkg/auth"
	"github.com/souqdz/souq/pkg/response"
	"github.com/souqdz/souq/pkg/session"
)

type userIDKey struct{}
type roleKey struct{}

// Auth authenticates the request either from the session cookie (set by the
// admin login flow) or from a Bearer JWT, and injects user id and role into
// the request context. Requests with neither credential get 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, role, ok := fromSession(r); ok {
			next.ServeHTTP(w, withUser(r, id, role))
			return
		}

		if id, role, ok := fromBearer(r); ok {
			next.ServeHTTP(w, withUser(r, id, role))
			return
		}

		response.Unauthorized(w)
	})
}

// MaybeAuth injects user identity when a credential is present but lets
// anonymous requests through. Used on routes that render differently for
// logged-in admins.
func MaybeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, role, ok := fromSession(r); ok {
			r = withUser(r, id, role)
		} else if id, role, ok := fromBearer(r); ok {
			r = withUser(r, id, role)
		}
		next.ServeHTTP(w, r)
	})
}

func fromSession(r *http.Request) (uint, string, bool) {
	sess := session.FromCtx(r)

	id, ok := sess.GetInt("user_id")
	if !ok || id <= 0 {
		return 0, "", false
	}

	role, _ := sess.GetString("role")
	return uint(id), role, true
}

func fromBearer(r *http.Request) (uint, string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, "", false
	}

	claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return 0, "", false
	}

	return claims.UserID, claims.Role, true
}

func withUser(r *http.Request, id uint, role string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey{}, id)
	ctx = context.WithValue(ctx, roleKey{}, role)
	return r.WithContext(ctx)
}

// UserIDFromCtx returns the authenticated user id, if any.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey{}).(uint)
	return id, ok
}

// RoleFromCtx returns the authenticated user's role, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey{}).(string)
	return role, ok
}

// This file defines the HTTP middleware guarding protected routes: bearer
// token extraction, token verification, subject resolution, and the admin
// gate. Both conform to the standard func(next http.Handler) http.Handler
// middleware shape used by chi.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/user/moodmoment-go/apperror"
)

// contextKey is a custom type for context keys, preventing collisions with
// keys set by other packages.
type contextKey string

const userContextKey contextKey = "auth_user"

const bearerPrefix = "Bearer "

// NewContextWithUser returns a child context carrying the authenticated user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated user placed in the context by
// RequireAuth. The second return value reports whether a user was present.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}

// RequireAuth verifies the bearer token on every request and resolves its
// subject to a live user record, which is placed in the request context.
// Requests with a missing or malformed Authorization header, an invalid or
// expired token, or a subject that no longer matches a user are rejected
// with 401.
func RequireAuth(codec *TokenCodec, users UserStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			subject, err := codec.Verify(strings.TrimPrefix(authHeader, bearerPrefix))
			if err != nil {
				WriteError(w, r, err)
				return
			}

			// The token is self-contained, but the subject must still map to
			// a live user: an account removed after issuance must not keep
			// authenticating until the token expires.
			user, err := users.GetUserByID(r.Context(), subject)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					WriteError(w, r, apperror.NewAuthError("invalid token", nil))
					return
				}
				WriteError(w, r, apperror.NewDatabaseError("failed to resolve user", err))
				return
			}

			ctx := NewContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes. It must run after RequireAuth.
// Authenticated non-admin users are rejected with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}
		if !user.IsAdmin {
			WriteError(w, r, apperror.NewUnauthorizedError("admin access required", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/token"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Auth is the required admission mode: requests without a verifiable bearer
// token are rejected before the handler runs.
func Auth(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := principalFromRequest(r, issuer)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Missing or invalid token"}}`))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth binds a principal when a valid token is present and lets the
// request through unbound otherwise. Handlers use UserIDOK to tell the two
// apart.
func OptionalAuth(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := principalFromRequest(r, issuer); ok {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func principalFromRequest(r *http.Request, issuer *token.Issuer) (uuid.UUID, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return uuid.Nil, false
	}

	userID, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// UserID extracts the bound principal. Only valid behind Auth.
func UserID(ctx context.Context) uuid.UUID {
	return ctx.Value(userIDKey).(uuid.UUID)
}

// UserIDOK reports the principal if one was bound.
func UserIDOK(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/pkg/utils"
)

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
	RoleKey   ContextKey = "role"
)

// SessionCookie carries the token for browser clients.
const SessionCookie = "smm_session"

// ErrSessionRevoked means the token is valid but its account may no longer act.
var ErrSessionRevoked = errors.New("session revoked")

//go:generate mockgen -source=middleware.go -destination=mock_middleware.go -package=auth
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// SessionChecker looks the account up on every request, so disabling or
// deleting a user takes effect before the token expires.
type SessionChecker interface {
	CheckSession(ctx context.Context, claims *Claims) error
}

func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Middleware accepts a bearer token or the session cookie, confirms the
// account with sessions and stores the caller's id and role in the request context.
func Middleware(validator TokenValidator, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if err := sessions.CheckSession(r.Context(), claims); err != nil {
				if errors.Is(err, ErrSessionRevoked) {
					utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				zap.L().Error("can't check session", zap.String("user_id", claims.UserID), zap.Error(err))
				utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly must run after Middleware.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if role, _ := r.Context().Value(RoleKey).(string); role != "admin" {
			utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

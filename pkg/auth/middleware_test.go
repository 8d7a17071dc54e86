package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestMiddleware(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	userToken, err := jwtService.GenerateJWT(testUserID, "user", time.Now().Add(time.Hour))
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateJWT(testUserID, "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)

	var seenUser, seenRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = UserID(r.Context())
		seenRole, _ = r.Context().Value(RoleKey).(string)
		w.WriteHeader(http.StatusNoContent)
	})
	sessions := NewMockSessionChecker(gomock.NewController(t))
	sessions.EXPECT().CheckSession(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	protected := Middleware(jwtService, sessions)(next)
	admin := Middleware(jwtService, sessions)(AdminOnly(next))

	tests := []struct {
		name     string
		handler  http.Handler
		prepare  func(r *http.Request)
		expected int
		role     string
	}{
		{
			name:     "No credentials",
			handler:  protected,
			prepare:  func(r *http.Request) {},
			expected: http.StatusUnauthorized,
		},
		{
			name:     "Bearer header",
			handler:  protected,
			prepare:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+userToken) },
			expected: http.StatusNoContent,
			role:     "user",
		},
		{
			name:     "Session cookie",
			handler:  protected,
			prepare:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: adminToken}) },
			expected: http.StatusNoContent,
			role:     "admin",
		},
		{
			name:     "Garbage token",
			handler:  protected,
			prepare:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
			expected: http.StatusUnauthorized,
		},
		{
			name:     "User on admin route",
			handler:  admin,
			prepare:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+userToken) },
			expected: http.StatusForbidden,
		},
		{
			name:     "Admin on admin route",
			handler:  admin,
			prepare:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+adminToken) },
			expected: http.StatusNoContent,
			role:     "admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser, seenRole = "", ""
			req := httptest.NewRequest(http.MethodGet, "/api/balance", nil)
			tt.prepare(req)
			rr := httptest.NewRecorder()

			tt.handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expected, rr.Code)
			if tt.expected == http.StatusNoContent {
				assert.Equal(t, testUserID, seenUser)
				assert.Equal(t, tt.role, seenRole)
			}
		})
	}
}

func TestMiddleware_Session(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	token, err := jwtService.GenerateJWT(testUserID, "user", time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name     string
		checkErr error
		expected int
		reached  bool
	}{
		{name: "Active account", expected: http.StatusNoContent, reached: true},
		{name: "Deleted or disabled account", checkErr: ErrSessionRevoked, expected: http.StatusUnauthorized},
		{name: "Wrapped revocation", checkErr: fmt.Errorf("user gone: %w", ErrSessionRevoked), expected: http.StatusUnauthorized},
		{name: "Lookup failure", checkErr: errors.New("db down"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := NewMockSessionChecker(gomock.NewController(t))
			sessions.EXPECT().
				CheckSession(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, claims *Claims) error {
					assert.Equal(t, testUserID, claims.UserID)
					assert.Equal(t, "user", claims.Role)
					return tt.checkErr
				})

			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/balance", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()

			Middleware(jwtService, sessions)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expected, rr.Code)
			assert.Equal(t, tt.reached, reached)
		})
	}
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/handlers/admin"
	"github.com/GlebRadaev/smmpanel/internal/handlers/auth"
	"github.com/GlebRadaev/smmpanel/internal/handlers/balance"
	"github.com/GlebRadaev/smmpanel/internal/handlers/orders"
	"github.com/GlebRadaev/smmpanel/internal/handlers/pricing"
	"github.com/GlebRadaev/smmpanel/internal/service"
	pkgauth "github.com/GlebRadaev/smmpanel/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	services := &service.Services{
		AuthService:         auth.NewMockService(ctrl),
		UserService:         admin.NewMockUserService(ctrl),
		BalanceService:      balance.NewMockService(ctrl),
		AdminBalanceService: admin.NewMockBalanceService(ctrl),
		PricingService:      pricing.NewMockService(ctrl),
		AdminPricingService: admin.NewMockPricingService(ctrl),
		OrderService:        orders.NewMockService(ctrl),
		TokenValidator:      pkgauth.NewMockJWTServiceInterface(ctrl),
		Sessions:            pkgauth.NewMockSessionChecker(ctrl),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.AdminHandler)
	assert.NotNil(t, h.TokenValidator)
	assert.NotNil(t, h.Sessions)
}

func newTestHandlers(ctrl *gomock.Controller) *Handlers {
	authHandler := NewMockAuthHandler(ctrl)
	balanceHandler := NewMockBalanceHandler(ctrl)
	pricingHandler := NewMockPricingHandler(ctrl)
	orderHandler := NewMockOrderHandler(ctrl)
	adminHandler := NewMockAdminHandler(ctrl)
	validator := pkgauth.NewMockJWTServiceInterface(ctrl)
	sessions := pkgauth.NewMockSessionChecker(ctrl)

	authHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	authHandler.EXPECT().Logout(gomock.Any(), gomock.Any()).AnyTimes()
	authHandler.EXPECT().Me(gomock.Any(), gomock.Any()).AnyTimes()
	balanceHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	balanceHandler.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).AnyTimes()
	balanceHandler.EXPECT().History(gomock.Any(), gomock.Any()).AnyTimes()
	pricingHandler.EXPECT().CalculateOrderCost(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().Catalog(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().GetOrders(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().AddOrder(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().RefreshOrder(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().RefillOrder(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().CancelOrder(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().CancelOrders(gomock.Any(), gomock.Any()).AnyTimes()
	adminHandler.EXPECT().AllocateCoins(gomock.Any(), gomock.Any()).AnyTimes()
	adminHandler.EXPECT().GetDefaultMarkup(gomock.Any(), gomock.Any()).AnyTimes()
	adminHandler.EXPECT().DeletePricingRule(gomock.Any(), gomock.Any()).AnyTimes()
	adminHandler.EXPECT().UpdateUserStatus(gomock.Any(), gomock.Any()).AnyTimes()

	validator.EXPECT().ValidateToken("user-token").
		Return(&pkgauth.Claims{UserID: "u1", Role: domain.RoleUser}, nil).AnyTimes()
	validator.EXPECT().ValidateToken("admin-token").
		Return(&pkgauth.Claims{UserID: "a1", Role: domain.RoleAdmin}, nil).AnyTimes()
	validator.EXPECT().ValidateToken("revoked-token").
		Return(&pkgauth.Claims{UserID: "gone", Role: domain.RoleUser}, nil).AnyTimes()

	sessions.EXPECT().CheckSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, claims *pkgauth.Claims) error {
			if claims.UserID == "gone" {
				return pkgauth.ErrSessionRevoked
			}
			return nil
		}).AnyTimes()

	return &Handlers{
		AuthHandler:    authHandler,
		BalanceHandler: balanceHandler,
		PricingHandler: pricingHandler,
		OrderHandler:   orderHandler,
		AdminHandler:   adminHandler,
		TokenValidator: validator,
		Sessions:       sessions,
	}
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)

	router := chi.NewRouter()
	newTestHandlers(ctrl).InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/auth/login", "", http.StatusOK},
		{"POST", "/api/auth/logout", "", http.StatusOK},
		{"GET", "/api/auth/me", "", http.StatusUnauthorized},
		{"GET", "/api/auth/me", "user-token", http.StatusOK},
		{"GET", "/api/balance", "", http.StatusUnauthorized},
		{"GET", "/api/balance", "user-token", http.StatusOK},
		{"GET", "/api/balance", "revoked-token", http.StatusUnauthorized},
		{"POST", "/api/orders", "revoked-token", http.StatusUnauthorized},
		{"POST", "/api/balance", "user-token", http.StatusOK},
		{"GET", "/api/balance/history", "user-token", http.StatusOK},
		{"POST", "/api/calculate-order-cost", "", http.StatusUnauthorized},
		{"POST", "/api/calculate-order-cost", "user-token", http.StatusOK},
		{"GET", "/api/services", "user-token", http.StatusOK},
		{"GET", "/api/orders", "user-token", http.StatusOK},
		{"POST", "/api/orders", "user-token", http.StatusOK},
		{"POST", "/api/orders/cancel", "user-token", http.StatusOK},
		{"POST", "/api/orders/7/refresh", "user-token", http.StatusOK},
		{"POST", "/api/orders/7/refill", "user-token", http.StatusOK},
		{"POST", "/api/orders/7/cancel", "user-token", http.StatusOK},
		{"POST", "/api/admin/allocate-coins", "", http.StatusUnauthorized},
		{"POST", "/api/admin/allocate-coins", "user-token", http.StatusForbidden},
		{"POST", "/api/admin/allocate-coins", "admin-token", http.StatusOK},
		{"GET", "/api/admin/settings/default-markup", "admin-token", http.StatusOK},
		{"PATCH", "/api/admin/users/u1", "admin-token", http.StatusOK},
		{"DELETE", "/api/admin/pricing-rules/1024", "admin-token", http.StatusOK},
		{"DELETE", "/api/admin/pricing-rules/1024", "user-token", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url+" "+tt.token, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestSessionCookie(t *testing.T) {
	ctrl := gomock.NewController(t)

	router := chi.NewRouter()
	newTestHandlers(ctrl).InitRoutes(router)

	req := httptest.NewRequest("GET", "/api/balance", nil)
	req.AddCookie(&http.Cookie{Name: pkgauth.SessionCookie, Value: "user-token"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/smmpanel/docs"
	adminhandlers "github.com/GlebRadaev/smmpanel/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/smmpanel/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/smmpanel/internal/handlers/balance"
	ordershandlers "github.com/GlebRadaev/smmpanel/internal/handlers/orders"
	pricinghandlers "github.com/GlebRadaev/smmpanel/internal/handlers/pricing"
	"github.com/GlebRadaev/smmpanel/internal/service"
	"github.com/GlebRadaev/smmpanel/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers
type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	UpdateBalance(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type PricingHandler interface {
	CalculateOrderCost(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	Catalog(w http.ResponseWriter, r *http.Request)
	AddOrder(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	RefreshOrder(w http.ResponseWriter, r *http.Request)
	RefillOrder(w http.ResponseWriter, r *http.Request)
	CancelOrder(w http.ResponseWriter, r *http.Request)
	CancelOrders(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	AllocateCoins(w http.ResponseWriter, r *http.Request)
	DeallocateCoins(w http.ResponseWriter, r *http.Request)
	GetDefaultMarkup(w http.ResponseWriter, r *http.Request)
	SetDefaultMarkup(w http.ResponseWriter, r *http.Request)
	GetUsdRate(w http.ResponseWriter, r *http.Request)
	SetUsdRate(w http.ResponseWriter, r *http.Request)
	GetCoinRate(w http.ResponseWriter, r *http.Request)
	SetCoinRate(w http.ResponseWriter, r *http.Request)
	SyncProviderBalance(w http.ResponseWriter, r *http.Request)
	BalanceOverview(w http.ResponseWriter, r *http.Request)
	Transactions(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	CreateUser(w http.ResponseWriter, r *http.Request)
	UpdateUserStatus(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
	ListPricingRules(w http.ResponseWriter, r *http.Request)
	SetPricingRule(w http.ResponseWriter, r *http.Request)
	DeletePricingRule(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	BalanceHandler BalanceHandler
	PricingHandler PricingHandler
	OrderHandler   OrderHandler
	AdminHandler   AdminHandler
	TokenValidator auth.TokenValidator
	Sessions       auth.SessionChecker
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		BalanceHandler: balancehandlers.New(s.BalanceService),
		PricingHandler: pricinghandlers.New(s.PricingService),
		OrderHandler:   ordershandlers.New(s.OrderService),
		AdminHandler:   adminhandlers.New(s.AdminBalanceService, s.AdminPricingService, s.UserService),
		TokenValidator: s.TokenValidator,
		Sessions:       s.Sessions,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.AuthHandler.Login)
		r.Post("/auth/logout", h.AuthHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.TokenValidator, h.Sessions))

			r.Get("/auth/me", h.AuthHandler.Me)

			r.Route("/balance", func(r chi.Router) {
				r.Get("/", h.BalanceHandler.GetBalance)
				r.Post("/", h.BalanceHandler.UpdateBalance)
				r.Get("/history", h.BalanceHandler.History)
			})
			r.Post("/calculate-order-cost", h.PricingHandler.CalculateOrderCost)
			r.Get("/services", h.OrderHandler.Catalog)
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.OrderHandler.GetOrders)
				r.Post("/", h.OrderHandler.AddOrder)
				r.Post("/cancel", h.OrderHandler.CancelOrders)
				r.Post("/{id}/refresh", h.OrderHandler.RefreshOrder)
				r.Post("/{id}/refill", h.OrderHandler.RefillOrder)
				r.Post("/{id}/cancel", h.OrderHandler.CancelOrder)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.AdminOnly)
				r.Post("/allocate-coins", h.AdminHandler.AllocateCoins)
				r.Post("/deallocate-coins", h.AdminHandler.DeallocateCoins)
				r.Get("/settings/default-markup", h.AdminHandler.GetDefaultMarkup)
				r.Post("/settings/default-markup", h.AdminHandler.SetDefaultMarkup)
				r.Get("/settings/usd-to-php-rate", h.AdminHandler.GetUsdRate)
				r.Post("/settings/usd-to-php-rate", h.AdminHandler.SetUsdRate)
				r.Get("/settings/coin-rate", h.AdminHandler.GetCoinRate)
				r.Post("/settings/coin-rate", h.AdminHandler.SetCoinRate)
				r.Get("/sync-provider-balance", h.AdminHandler.SyncProviderBalance)
				r.Get("/balance-overview", h.AdminHandler.BalanceOverview)
				r.Get("/transactions", h.AdminHandler.Transactions)
				r.Get("/users", h.AdminHandler.ListUsers)
				r.Post("/users", h.AdminHandler.CreateUser)
				r.Patch("/users/{id}", h.AdminHandler.UpdateUserStatus)
				r.Delete("/users/{id}", h.AdminHandler.DeleteUser)
				r.Get("/pricing-rules", h.AdminHandler.ListPricingRules)
				r.Put("/pricing-rules/{serviceId}", h.AdminHandler.SetPricingRule)
				r.Delete("/pricing-rules/{serviceId}", h.AdminHandler.DeletePricingRule)
			})
		})
	})

	return r
}

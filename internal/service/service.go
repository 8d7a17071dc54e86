package service

import (
	"github.com/GlebRadaev/smmpanel/internal/cache"
	"github.com/GlebRadaev/smmpanel/internal/config"
	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/handlers/admin"
	"github.com/GlebRadaev/smmpanel/internal/handlers/auth"
	"github.com/GlebRadaev/smmpanel/internal/handlers/balance"
	"github.com/GlebRadaev/smmpanel/internal/handlers/orders"
	"github.com/GlebRadaev/smmpanel/internal/handlers/pricing"
	"github.com/GlebRadaev/smmpanel/internal/provider"
	"github.com/GlebRadaev/smmpanel/internal/repo"
	"github.com/GlebRadaev/smmpanel/internal/service/authservice"
	"github.com/GlebRadaev/smmpanel/internal/service/balanceservice"
	"github.com/GlebRadaev/smmpanel/internal/service/orderservice"
	"github.com/GlebRadaev/smmpanel/internal/service/pricingservice"

	pkgauth "github.com/GlebRadaev/smmpanel/pkg/auth"
)

type Services struct {
	AuthService         auth.Service
	UserService         admin.UserService
	BalanceService      balance.Service
	AdminBalanceService admin.BalanceService
	PricingService      pricing.Service
	AdminPricingService admin.PricingService
	OrderService        orders.Service
	TokenValidator      pkgauth.TokenValidator
	Sessions            pkgauth.SessionChecker

	Refresher *provider.Refresher
}

// Provider is the SMM panel API as the services use it.
type Provider interface {
	orderservice.Provider
	balanceservice.Provider
	provider.StatusFetcher
}

func New(repos *repo.Repositories, smm Provider, cfg *config.Config) *Services {
	pricingService := pricingservice.New(repos.Settings, repos.Pricing, cache.New[float64](cfg.SettingsCacheTTL))
	balanceService := balanceservice.New(repos.BalanceRepo, repos.History, smm, pricingService)

	jwtService := pkgauth.NewJWTService(cfg.JWTSecret)
	authService := authservice.New(repos.UserRepo, &pkgauth.HashService{}, jwtService, cfg.TokenTTL)

	orderService := orderservice.New(repos.OrderRepo, smm, pricingService, balanceService,
		cache.New[[]domain.CatalogService](cfg.CatalogCacheTTL))

	return &Services{
		AuthService:         authService,
		UserService:         authService,
		BalanceService:      balanceService,
		AdminBalanceService: balanceService,
		PricingService:      pricingService,
		AdminPricingService: pricingService,
		OrderService:        orderService,
		TokenValidator:      jwtService,
		Sessions:            authService,
		Refresher:           provider.NewRefresher(repos.OrderRepo, smm, cfg.RefreshSchedule),
	}
}

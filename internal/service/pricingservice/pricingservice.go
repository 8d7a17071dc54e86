package pricingservice

import (
	"context"
	"errors"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/internal/cache"
	"github.com/GlebRadaev/smmpanel/internal/domain"
)

const (
	KeyDefaultMarkup = "default_markup"
	KeyCoinRate      = "coin_to_usd_rate"
	KeyUsdRate       = "usd_to_php_rate"

	DefaultMarkup   = 1.5
	DefaultCoinRate = 1.0
	DefaultUsdRate  = 50.0
)

var defaults = map[string]float64{
	KeyDefaultMarkup: DefaultMarkup,
	KeyCoinRate:      DefaultCoinRate,
	KeyUsdRate:       DefaultUsdRate,
}

//go:generate mockgen -source=pricingservice.go -destination=mock_pricingservice.go -package=pricingservice
type SettingRepo interface {
	GetSetting(ctx context.Context, key, defaultValue string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

type RuleRepo interface {
	GetRule(ctx context.Context, serviceID int64) (*domain.PricingRule, error)
	ListRules(ctx context.Context) ([]domain.PricingRule, error)
	UpsertRule(ctx context.Context, rule domain.PricingRule) error
	DeleteRule(ctx context.Context, serviceID int64) error
}

type Service struct {
	settings SettingRepo
	rules    RuleRepo
	cache    *cache.TTL[float64]
}

func New(settings SettingRepo, rules RuleRepo, settingsCache *cache.TTL[float64]) *Service {
	return &Service{
		settings: settings,
		rules:    rules,
		cache:    settingsCache,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ResolveUnitPrice converts a provider rate (USD per 1000 items) into coins per 1000.
// A custom price on the service's rule is returned as is.
func (s *Service) ResolveUnitPrice(ctx context.Context, providerRate float64, serviceID int64) (float64, error) {
	if !finite(providerRate) || providerRate < 0 {
		return 0, domain.InvalidInput("provider rate must be a non-negative number, got %v", providerRate)
	}

	rule, err := s.rules.GetRule(ctx, serviceID)
	if err != nil {
		zap.L().Error("failed to get pricing rule", zap.Int64("service_id", serviceID), zap.Error(err))
		return 0, domain.Storage(err)
	}
	return s.unitPrice(ctx, providerRate, serviceID, rule)
}

// PriceCatalog prices services in coins per 1000 with one rule lookup for the
// whole list. Services whose price cannot be resolved are left out.
// Storage failures abort.
func (s *Service) PriceCatalog(ctx context.Context, services []domain.CatalogService) ([]domain.PricedService, error) {
	rules, err := s.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	byService := make(map[int64]*domain.PricingRule, len(rules))
	for i := range rules {
		byService[rules[i].ServiceID] = &rules[i]
	}

	priced := make([]domain.PricedService, 0, len(services))
	for _, svc := range services {
		var price float64
		if !finite(svc.Rate) || svc.Rate < 0 {
			err = domain.InvalidInput("provider rate must be a non-negative number, got %v", svc.Rate)
		} else {
			price, err = s.unitPrice(ctx, svc.Rate, svc.ServiceID, byService[svc.ServiceID])
		}
		if errors.Is(err, domain.ErrStorage) {
			return nil, err
		}
		if err != nil {
			zap.L().Warn("skipping unpriceable service", zap.Int64("service_id", svc.ServiceID), zap.Error(err))
			continue
		}
		priced = append(priced, domain.PricedService{CatalogService: svc, CoinsPer1000: price})
	}
	return priced, nil
}

func (s *Service) unitPrice(ctx context.Context, providerRate float64, serviceID int64, rule *domain.PricingRule) (float64, error) {
	if rule != nil && rule.CustomPrice != nil {
		price := *rule.CustomPrice
		if !finite(price) || price < 0 {
			return 0, domain.InvalidConfiguration("custom price for service %d is %v", serviceID, price)
		}
		return price, nil
	}

	usdRate, err := s.UsdRate(ctx)
	if err != nil {
		return 0, err
	}
	localPer1000 := providerRate * usdRate

	var markup float64
	if rule != nil && rule.Markup != nil {
		markup = *rule.Markup
		if !finite(markup) || markup <= 0 {
			return 0, domain.InvalidConfiguration("markup for service %d is %v", serviceID, markup)
		}
	} else {
		markup, err = s.DefaultMarkup(ctx)
		if err != nil {
			return 0, err
		}
	}

	coinRate, err := s.CoinRate(ctx)
	if err != nil {
		return 0, err
	}

	return localPer1000 * markup * coinRate, nil
}

// CalculateOrderCost prices quantity items of a service. No rounding is applied.
func (s *Service) CalculateOrderCost(ctx context.Context, providerRate, quantity float64, serviceID int64) (float64, error) {
	if !finite(quantity) || quantity < 0 {
		return 0, domain.InvalidInput("quantity must be a non-negative number, got %v", quantity)
	}
	unit, err := s.ResolveUnitPrice(ctx, providerRate, serviceID)
	if err != nil {
		return 0, err
	}
	return unit / 1000 * quantity, nil
}

func (s *Service) DefaultMarkup(ctx context.Context) (float64, error) {
	return s.number(ctx, KeyDefaultMarkup)
}

func (s *Service) SetDefaultMarkup(ctx context.Context, markup float64) error {
	return s.setNumber(ctx, KeyDefaultMarkup, markup)
}

func (s *Service) UsdRate(ctx context.Context) (float64, error) {
	return s.number(ctx, KeyUsdRate)
}

func (s *Service) SetUsdRate(ctx context.Context, rate float64) error {
	return s.setNumber(ctx, KeyUsdRate, rate)
}

func (s *Service) CoinRate(ctx context.Context) (float64, error) {
	return s.number(ctx, KeyCoinRate)
}

func (s *Service) SetCoinRate(ctx context.Context, rate float64) error {
	return s.setNumber(ctx, KeyCoinRate, rate)
}

func (s *Service) number(ctx context.Context, key string) (float64, error) {
	return s.cache.GetOrLoad(key, func() (float64, error) {
		raw, err := s.settings.GetSetting(ctx, key, strconv.FormatFloat(defaults[key], 'f', -1, 64))
		if err != nil {
			zap.L().Error("failed to read setting", zap.String("key", key), zap.Error(err))
			return 0, domain.Storage(err)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !finite(v) || v <= 0 {
			return 0, domain.InvalidConfiguration("setting %s has value %q", key, raw)
		}
		return v, nil
	})
}

func (s *Service) setNumber(ctx context.Context, key string, v float64) error {
	if !finite(v) || v <= 0 {
		return domain.InvalidInput("%s must be a positive number, got %v", key, v)
	}
	if err := s.settings.SetSetting(ctx, key, strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
		zap.L().Error("failed to store setting", zap.String("key", key), zap.Error(err))
		return domain.Storage(err)
	}
	s.cache.Invalidate(key)
	return nil
}

func (s *Service) ListRules(ctx context.Context) ([]domain.PricingRule, error) {
	rules, err := s.rules.ListRules(ctx)
	if err != nil {
		zap.L().Error("failed to list pricing rules", zap.Error(err))
		return nil, domain.Storage(err)
	}
	return rules, nil
}

// SetRule stores a per-service override. At least one of markup or custom price is required.
func (s *Service) SetRule(ctx context.Context, rule domain.PricingRule) error {
	if rule.ServiceID <= 0 {
		return domain.InvalidInput("service id must be positive")
	}
	if rule.Markup == nil && rule.CustomPrice == nil {
		return domain.InvalidInput("either markup or custom price is required")
	}
	if rule.Markup != nil && (!finite(*rule.Markup) || *rule.Markup <= 0) {
		return domain.InvalidInput("markup must be a positive number")
	}
	if rule.CustomPrice != nil && (!finite(*rule.CustomPrice) || *rule.CustomPrice < 0) {
		return domain.InvalidInput("custom price must be a non-negative number")
	}
	if err := s.rules.UpsertRule(ctx, rule); err != nil {
		zap.L().Error("failed to store pricing rule", zap.Error(err))
		return domain.Storage(err)
	}
	return nil
}

func (s *Service) DeleteRule(ctx context.Context, serviceID int64) error {
	err := s.rules.DeleteRule(ctx, serviceID)
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	zap.L().Error("failed to delete pricing rule", zap.Error(err))
	return domain.Storage(err)
}

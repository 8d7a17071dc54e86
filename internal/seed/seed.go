// Package seed loads a YAML description of the initial panel state and
// applies it: the admin account, pricing settings and per-service rules.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/pkg/validate"
)

type Admin struct {
	Email    string  `yaml:"email"    json:"email"    validate:"required,email"`
	Username string  `yaml:"username" json:"username" validate:"required,min=3"`
	Password string  `yaml:"password" json:"password" validate:"required,min=6"`
	Coins    float64 `yaml:"coins"    json:"coins"    validate:"gte=0"`
}

// Settings left unset keep whatever the database already holds.
type Settings struct {
	DefaultMarkup *float64 `yaml:"default_markup"   json:"default_markup"   validate:"omitempty,gt=0"`
	UsdRate       *float64 `yaml:"usd_to_php_rate"  json:"usd_to_php_rate"  validate:"omitempty,gt=0"`
	CoinRate      *float64 `yaml:"coin_to_usd_rate" json:"coin_to_usd_rate" validate:"omitempty,gt=0"`
}

type Rule struct {
	ServiceID   int64    `yaml:"service_id"   json:"service_id"   validate:"required,gt=0"`
	Markup      *float64 `yaml:"markup"       json:"markup"       validate:"omitempty,gt=0"`
	CustomPrice *float64 `yaml:"custom_price" json:"custom_price" validate:"omitempty,gte=0"`
}

type Config struct {
	Admin        Admin    `yaml:"admin"         json:"admin"`
	Settings     Settings `yaml:"settings"      json:"settings"`
	PricingRules []Rule   `yaml:"pricing_rules" json:"pricing_rules" validate:"dive"`
}

// Default matches the account the panel has always been bootstrapped with.
func Default() *Config {
	return &Config{
		Admin: Admin{
			Email:    "admin@smmpanel.com",
			Username: "admin",
			Password: "admin123",
		},
	}
}

// Load reads path over Default. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			zap.L().Info("seed file not found, using defaults", zap.String("path", path))
			return cfg, nil
		}
		return nil, fmt.Errorf("can't read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("can't parse %s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid seed %s: %w", path, err)
	}
	return cfg, nil
}

//go:generate mockgen -source=seed.go -destination=mock_seed.go -package=seed
type UserService interface {
	CreateAdmin(ctx context.Context, email, username, password string, coins float64) (*domain.User, error)
}

type PricingService interface {
	SetDefaultMarkup(ctx context.Context, markup float64) error
	SetUsdRate(ctx context.Context, rate float64) error
	SetCoinRate(ctx context.Context, rate float64) error
	SetRule(ctx context.Context, rule domain.PricingRule) error
}

type Seeder struct {
	users   UserService
	pricing PricingService
}

func New(users UserService, pricing PricingService) *Seeder {
	return &Seeder{users: users, pricing: pricing}
}

// Run is safe to repeat: an existing admin is kept and settings are overwritten.
func (s *Seeder) Run(ctx context.Context, cfg *Config) error {
	admin, err := s.users.CreateAdmin(ctx, cfg.Admin.Email, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Coins)
	if err != nil {
		return fmt.Errorf("can't create admin: %w", err)
	}
	zap.L().Info("admin ready", zap.String("username", admin.Username), zap.String("id", admin.ID))

	settings := []struct {
		name  string
		value *float64
		set   func(context.Context, float64) error
	}{
		{"default_markup", cfg.Settings.DefaultMarkup, s.pricing.SetDefaultMarkup},
		{"usd_to_php_rate", cfg.Settings.UsdRate, s.pricing.SetUsdRate},
		{"coin_to_usd_rate", cfg.Settings.CoinRate, s.pricing.SetCoinRate},
	}
	for _, st := range settings {
		if st.value == nil {
			continue
		}
		if err := st.set(ctx, *st.value); err != nil {
			return fmt.Errorf("can't set %s: %w", st.name, err)
		}
		zap.L().Info("setting stored", zap.String("key", st.name), zap.Float64("value", *st.value))
	}

	for _, r := range cfg.PricingRules {
		rule := domain.PricingRule{ServiceID: r.ServiceID, Markup: r.Markup, CustomPrice: r.CustomPrice}
		if err := s.pricing.SetRule(ctx, rule); err != nil {
			return fmt.Errorf("can't set pricing rule for service %d: %w", r.ServiceID, err)
		}
	}
	if n := len(cfg.PricingRules); n > 0 {
		zap.L().Info("pricing rules stored", zap.Int("count", n))
	}
	return nil
}

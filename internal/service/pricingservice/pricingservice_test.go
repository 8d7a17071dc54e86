package pricingservice

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/smmpanel/internal/cache"
	"github.com/GlebRadaev/smmpanel/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func NewMock(t *testing.T) (*Service, *MockSettingRepo, *MockRuleRepo) {
	ctrl := gomock.NewController(t)
	settings := NewMockSettingRepo(ctrl)
	rules := NewMockRuleRepo(ctrl)
	service := New(settings, rules, cache.New[float64](time.Minute))
	return service, settings, rules
}

// stored wires the three numeric settings with the given raw values.
func stored(settings *MockSettingRepo, markup, usd, coin string) {
	settings.EXPECT().GetSetting(gomock.Any(), KeyDefaultMarkup, "1.5").Return(markup, nil).AnyTimes()
	settings.EXPECT().GetSetting(gomock.Any(), KeyUsdRate, "50").Return(usd, nil).AnyTimes()
	settings.EXPECT().GetSetting(gomock.Any(), KeyCoinRate, "1").Return(coin, nil).AnyTimes()
}

func TestResolveUnitPrice(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		prepareMock func(settings *MockSettingRepo, rules *MockRuleRepo)
		expected    float64
		expectedErr error
	}{
		{
			name: "Default markup when no rule",
			rate: 1.0,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(nil, nil)
				stored(settings, "1.5", "50", "1")
			},
			expected: 75,
		},
		{
			name: "Rule markup overrides default",
			rate: 1.0,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(&domain.PricingRule{ServiceID: 1, Markup: ptr(2)}, nil)
				stored(settings, "1.5", "50", "1")
			},
			expected: 100,
		},
		{
			name: "Custom price is returned as is",
			rate: 9.99,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(&domain.PricingRule{ServiceID: 1, Markup: ptr(3), CustomPrice: ptr(75)}, nil)
			},
			expected: 75,
		},
		{
			name: "Zero custom price",
			rate: 2.5,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(&domain.PricingRule{ServiceID: 1, CustomPrice: ptr(0)}, nil)
			},
			expected: 0,
		},
		{
			name: "Coin rate is applied",
			rate: 2.5,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(nil, nil)
				stored(settings, "1.5", "50", "2")
			},
			expected: 375,
		},
		{
			name: "Zero provider rate",
			rate: 0,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(nil, nil)
				stored(settings, "1.5", "50", "1")
			},
			expected: 0,
		},
		{
			name:        "Negative provider rate",
			rate:        -1,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {},
			expectedErr: domain.ErrInvalidInput,
		},
		{
			name:        "NaN provider rate",
			rate:        math.NaN(),
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {},
			expectedErr: domain.ErrInvalidInput,
		},
		{
			name: "Unparseable markup setting",
			rate: 1,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(nil, nil)
				stored(settings, "abc", "50", "1")
			},
			expectedErr: domain.ErrInvalidConfiguration,
		},
		{
			name: "Non-positive usd rate setting",
			rate: 1,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(nil, nil)
				stored(settings, "1.5", "0", "1")
			},
			expectedErr: domain.ErrInvalidConfiguration,
		},
		{
			name: "Negative stored custom price",
			rate: 1,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(&domain.PricingRule{ServiceID: 1, CustomPrice: ptr(-5)}, nil)
			},
			expectedErr: domain.ErrInvalidConfiguration,
		},
		{
			name: "Rule lookup fails",
			rate: 1,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(nil, errors.New("db error"))
			},
			expectedErr: domain.ErrStorage,
		},
		{
			name: "Setting lookup fails",
			rate: 1,
			prepareMock: func(settings *MockSettingRepo, rules *MockRuleRepo) {
				rules.EXPECT().GetRule(gomock.Any(), int64(1)).Return(nil, nil)
				settings.EXPECT().GetSetting(gomock.Any(), KeyUsdRate, "50").Return("", errors.New("db error"))
			},
			expectedErr: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, settings, rules := NewMock(t)
			tt.prepareMock(settings, rules)

			price, err := service.ResolveUnitPrice(context.Background(), tt.rate, 1)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, price)
		})
	}
}

func TestCalculateOrderCost(t *testing.T) {
	service, settings, rules := NewMock(t)
	rules.EXPECT().GetRule(gomock.Any(), int64(1024)).Return(nil, nil).AnyTimes()
	stored(settings, "1.5", "50", "1")
	ctx := context.Background()

	unit, err := service.ResolveUnitPrice(ctx, 2.5, 1024)
	require.NoError(t, err)
	assert.Equal(t, 187.5, unit)

	cost, err := service.CalculateOrderCost(ctx, 2.5, 500, 1024)
	require.NoError(t, err)
	assert.Equal(t, 93.75, cost)

	zero, err := service.CalculateOrderCost(ctx, 2.5, 0, 1024)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)

	prev := -1.0
	for _, q := range []float64{1, 10, 333, 1000, 12345} {
		cost, err := service.CalculateOrderCost(ctx, 2.5, q, 1024)
		require.NoError(t, err)
		assert.Equal(t, unit/1000*q, cost)
		assert.Greater(t, cost, prev)
		prev = cost
	}

	_, err = service.CalculateOrderCost(ctx, 2.5, -1, 1024)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = service.CalculateOrderCost(ctx, 2.5, math.Inf(1), 1024)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPriceCatalog(t *testing.T) {
	services := []domain.CatalogService{
		{ServiceID: 1, Name: "Likes", Rate: 1},
		{ServiceID: 2, Name: "Comments", Rate: 8},
		{ServiceID: 3, Name: "Views", Rate: 2},
		{ServiceID: 4, Name: "Broken", Rate: math.NaN()},
	}

	t.Run("one rule lookup for the whole list", func(t *testing.T) {
		service, settings, rules := NewMock(t)
		rules.EXPECT().ListRules(gomock.Any()).Return([]domain.PricingRule{
			{ServiceID: 1, Markup: ptr(2)},
			{ServiceID: 2, CustomPrice: ptr(600)},
			{ServiceID: 3, Markup: ptr(0)},
		}, nil).Times(1)
		stored(settings, "1.5", "50", "1")

		priced, err := service.PriceCatalog(context.Background(), services)
		require.NoError(t, err)
		require.Len(t, priced, 2)
		assert.Equal(t, int64(1), priced[0].ServiceID)
		assert.Equal(t, 100.0, priced[0].CoinsPer1000)
		assert.Equal(t, int64(2), priced[1].ServiceID)
		assert.Equal(t, 600.0, priced[1].CoinsPer1000)
	})

	t.Run("services without a rule use the default markup", func(t *testing.T) {
		service, settings, rules := NewMock(t)
		rules.EXPECT().ListRules(gomock.Any()).Return(nil, nil)
		stored(settings, "1.5", "50", "1")

		priced, err := service.PriceCatalog(context.Background(), services[:1])
		require.NoError(t, err)
		require.Len(t, priced, 1)
		assert.Equal(t, 75.0, priced[0].CoinsPer1000)
	})

	t.Run("rule storage failure aborts", func(t *testing.T) {
		service, _, rules := NewMock(t)
		rules.EXPECT().ListRules(gomock.Any()).Return(nil, errors.New("db error"))

		_, err := service.PriceCatalog(context.Background(), services)
		assert.ErrorIs(t, err, domain.ErrStorage)
	})

	t.Run("setting storage failure aborts", func(t *testing.T) {
		service, settings, rules := NewMock(t)
		rules.EXPECT().ListRules(gomock.Any()).Return(nil, nil)
		settings.EXPECT().GetSetting(gomock.Any(), KeyUsdRate, "50").Return("", errors.New("db error"))

		_, err := service.PriceCatalog(context.Background(), services[:1])
		assert.ErrorIs(t, err, domain.ErrStorage)
	})
}

func TestSettingsAreCached(t *testing.T) {
	service, settings, _ := NewMock(t)
	ctx := context.Background()

	settings.EXPECT().GetSetting(gomock.Any(), KeyDefaultMarkup, "1.5").Return("1.5", nil).Times(1)
	for i := 0; i < 3; i++ {
		markup, err := service.DefaultMarkup(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1.5, markup)
	}

	settings.EXPECT().SetSetting(gomock.Any(), KeyDefaultMarkup, "2.25").Return(nil)
	require.NoError(t, service.SetDefaultMarkup(ctx, 2.25))

	settings.EXPECT().GetSetting(gomock.Any(), KeyDefaultMarkup, "1.5").Return("2.25", nil).Times(1)
	markup, err := service.DefaultMarkup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.25, markup)
}

func TestSetRates(t *testing.T) {
	service, settings, _ := NewMock(t)
	ctx := context.Background()

	settings.EXPECT().SetSetting(gomock.Any(), KeyUsdRate, "56.2").Return(nil)
	assert.NoError(t, service.SetUsdRate(ctx, 56.2))

	settings.EXPECT().SetSetting(gomock.Any(), KeyCoinRate, "0.5").Return(nil)
	assert.NoError(t, service.SetCoinRate(ctx, 0.5))

	assert.ErrorIs(t, service.SetUsdRate(ctx, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetCoinRate(ctx, math.NaN()), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetDefaultMarkup(ctx, -1), domain.ErrInvalidInput)

	settings.EXPECT().SetSetting(gomock.Any(), KeyUsdRate, "60").Return(errors.New("db error"))
	assert.ErrorIs(t, service.SetUsdRate(ctx, 60), domain.ErrStorage)
}

func TestRules(t *testing.T) {
	service, _, rules := NewMock(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		rule        domain.PricingRule
		prepareMock func()
		expectedErr error
	}{
		{
			name: "Markup rule",
			rule: domain.PricingRule{ServiceID: 1, Markup: ptr(2)},
			prepareMock: func() {
				rules.EXPECT().UpsertRule(gomock.Any(), domain.PricingRule{ServiceID: 1, Markup: ptr(2)}).Return(nil)
			},
		},
		{
			name: "Zero custom price",
			rule: domain.PricingRule{ServiceID: 1, CustomPrice: ptr(0)},
			prepareMock: func() {
				rules.EXPECT().UpsertRule(gomock.Any(), domain.PricingRule{ServiceID: 1, CustomPrice: ptr(0)}).Return(nil)
			},
		},
		{
			name:        "Empty rule",
			rule:        domain.PricingRule{ServiceID: 1},
			expectedErr: domain.ErrInvalidInput,
		},
		{
			name:        "Zero markup",
			rule:        domain.PricingRule{ServiceID: 1, Markup: ptr(0)},
			expectedErr: domain.ErrInvalidInput,
		},
		{
			name:        "Negative custom price",
			rule:        domain.PricingRule{ServiceID: 1, CustomPrice: ptr(-1)},
			expectedErr: domain.ErrInvalidInput,
		},
		{
			name: "Storage failure",
			rule: domain.PricingRule{ServiceID: 1, Markup: ptr(2)},
			prepareMock: func() {
				rules.EXPECT().UpsertRule(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			expectedErr: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}
			err := service.SetRule(ctx, tt.rule)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	rules.EXPECT().DeleteRule(gomock.Any(), int64(9)).Return(domain.ErrNotFound)
	assert.ErrorIs(t, service.DeleteRule(ctx, 9), domain.ErrNotFound)

	rules.EXPECT().ListRules(gomock.Any()).Return([]domain.PricingRule{{ServiceID: 1, Markup: ptr(2)}}, nil)
	list, err := service.ListRules(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

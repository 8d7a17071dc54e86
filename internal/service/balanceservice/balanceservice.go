package balanceservice

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/internal/domain"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

//go:generate mockgen -source=balanceservice.go -destination=mock_balanceservice.go -package=balanceservice
type BalanceRepo interface {
	EnsureBalance(ctx context.Context, userID string, initial float64) (float64, error)
	SetBalance(ctx context.Context, userID string, coins float64, memo domain.Memo) (float64, error)
	AddCoins(ctx context.Context, userID string, amount, initial float64, memo domain.Memo) (float64, error)
	DeductCoins(ctx context.Context, userID string, amount float64, memo domain.Memo) (float64, bool, error)
	Transfer(ctx context.Context, fromUserID, toUserID string, amount float64, memo domain.Memo) (bool, error)
	TotalAllocated(ctx context.Context) (float64, error)
}

type HistoryRepo interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.CoinTransaction, error)
	ListAll(ctx context.Context, limit int) ([]domain.CoinTransaction, error)
}

type Provider interface {
	Balance(ctx context.Context) (*domain.ProviderBalance, error)
}

type Rates interface {
	UsdRate(ctx context.Context) (float64, error)
}

type Service struct {
	balanceRepo BalanceRepo
	historyRepo HistoryRepo
	provider    Provider
	rates       Rates
}

func New(balanceRepo BalanceRepo, historyRepo HistoryRepo, provider Provider, rates Rates) *Service {
	return &Service{
		balanceRepo: balanceRepo,
		historyRepo: historyRepo,
		provider:    provider,
		rates:       rates,
	}
}

func validAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return domain.InvalidInput("amount must be a positive number, got %v", amount)
	}
	return nil
}

// storage wraps repository failures; a missing user stays ErrNotFound.
func storage(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return domain.Storage(err)
}

// GetBalance creates the balance with DefaultCoinBalance on first access.
// Users that no longer exist get domain.ErrNotFound.
func (s *Service) GetBalance(ctx context.Context, userID string) (float64, error) {
	coins, err := s.balanceRepo.EnsureBalance(ctx, userID, domain.DefaultCoinBalance)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}
	if err != nil {
		zap.L().Error("failed to get balance", zap.String("user_id", userID), zap.Error(err))
		return 0, domain.Storage(err)
	}
	return coins, nil
}

func (s *Service) AddCoins(ctx context.Context, userID string, amount float64) (float64, error) {
	return s.Credit(ctx, userID, amount, domain.Memo{Kind: domain.TxAdd, Description: "coins added"})
}

// Credit increments the balance and records memo in the ledger.
func (s *Service) Credit(ctx context.Context, userID string, amount float64, memo domain.Memo) (float64, error) {
	if err := validAmount(amount); err != nil {
		return 0, err
	}
	coins, err := s.balanceRepo.AddCoins(ctx, userID, amount, domain.DefaultCoinBalance, memo)
	if err != nil {
		zap.L().Error("failed to add coins", zap.String("user_id", userID), zap.Error(err))
		return 0, storage(err)
	}
	return coins, nil
}

// DeductCoins reports false and leaves the balance untouched when it does not cover amount.
func (s *Service) DeductCoins(ctx context.Context, userID string, amount float64) (bool, error) {
	return s.Charge(ctx, userID, amount, domain.Memo{Kind: domain.TxDeduct, Description: "coins deducted"})
}

func (s *Service) Charge(ctx context.Context, userID string, amount float64, memo domain.Memo) (bool, error) {
	if err := validAmount(amount); err != nil {
		return false, err
	}
	if _, err := s.GetBalance(ctx, userID); err != nil {
		return false, err
	}
	_, ok, err := s.balanceRepo.DeductCoins(ctx, userID, amount, memo)
	if err != nil {
		zap.L().Error("failed to deduct coins", zap.String("user_id", userID), zap.Error(err))
		return false, domain.Storage(err)
	}
	return ok, nil
}

func (s *Service) TransferCoins(ctx context.Context, fromUserID, toUserID string, amount float64) (bool, error) {
	return s.transfer(ctx, fromUserID, toUserID, amount, domain.Memo{Kind: domain.TxTransfer, Description: "coins transferred"})
}

func (s *Service) transfer(ctx context.Context, fromUserID, toUserID string, amount float64, memo domain.Memo) (bool, error) {
	if err := validAmount(amount); err != nil {
		return false, err
	}
	if fromUserID == toUserID {
		return false, domain.InvalidInput("cannot transfer coins to the same account")
	}
	if _, err := s.GetBalance(ctx, fromUserID); err != nil {
		return false, err
	}
	if _, err := s.GetBalance(ctx, toUserID); err != nil {
		return false, err
	}
	ok, err := s.balanceRepo.Transfer(ctx, fromUserID, toUserID, amount, memo)
	if err != nil {
		zap.L().Error("failed to transfer coins", zap.String("from", fromUserID), zap.String("to", toUserID), zap.Error(err))
		return false, storage(err)
	}
	return ok, nil
}

// Allocate moves coins from the admin balance to a user.
func (s *Service) Allocate(ctx context.Context, adminID, userID string, amount float64) (*domain.Allocation, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	adminBalance, err := s.GetBalance(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if adminBalance < amount {
		return nil, &domain.InsufficientBalanceError{Balance: adminBalance, Requested: amount}
	}

	ok, err := s.transfer(ctx, adminID, userID, amount, domain.Memo{Kind: domain.TxTransfer, Description: "allocation from admin"})
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := s.GetBalance(ctx, adminID)
		if err != nil {
			return nil, err
		}
		return nil, &domain.InsufficientBalanceError{Balance: current, Requested: amount}
	}

	return s.allocation(ctx, adminID, userID, amount)
}

// Deallocate removes coins from a user without crediting the admin.
func (s *Service) Deallocate(ctx context.Context, adminID, userID string, amount float64) (*domain.Allocation, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	userBalance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if amount > userBalance {
		return nil, &domain.InsufficientBalanceError{Balance: userBalance, Requested: amount}
	}

	_, ok, err := s.balanceRepo.DeductCoins(ctx, userID, amount, domain.Memo{Kind: domain.TxDeallocate, Description: "deallocated by admin"})
	if err != nil {
		zap.L().Error("failed to deallocate coins", zap.String("user_id", userID), zap.Error(err))
		return nil, domain.Storage(err)
	}
	if !ok {
		current, err := s.GetBalance(ctx, userID)
		if err != nil {
			return nil, err
		}
		return nil, &domain.InsufficientBalanceError{Balance: current, Requested: amount}
	}

	return s.allocation(ctx, adminID, userID, amount)
}

func (s *Service) allocation(ctx context.Context, adminID, userID string, amount float64) (*domain.Allocation, error) {
	adminBalance, err := s.GetBalance(ctx, adminID)
	if err != nil {
		return nil, err
	}
	userBalance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Allocation{AdminBalance: adminBalance, UserBalance: userBalance, Amount: amount}, nil
}

// SyncProviderBalance sets the admin balance to the provider balance converted to coins.
func (s *Service) SyncProviderBalance(ctx context.Context, adminID string) (*domain.ProviderSync, error) {
	providerBalance, rate, err := s.providerBalance(ctx)
	if err != nil {
		return nil, err
	}
	local := providerBalance.Amount * rate

	coins, err := s.balanceRepo.SetBalance(ctx, adminID, local, domain.Memo{Kind: domain.TxSync, Description: "provider balance sync"})
	if err != nil {
		zap.L().Error("failed to set admin balance", zap.String("admin_id", adminID), zap.Error(err))
		return nil, domain.Storage(err)
	}

	zap.L().Info("provider balance synced",
		zap.Float64("provider_amount", providerBalance.Amount),
		zap.String("currency", providerBalance.Currency),
		zap.Float64("coins", coins))

	return &domain.ProviderSync{
		ProviderAmount:   providerBalance.Amount,
		ProviderCurrency: providerBalance.Currency,
		Rate:             rate,
		LocalAmount:      coins,
	}, nil
}

// Overview compares the provider balance with the coins already handed to users.
func (s *Service) Overview(ctx context.Context) (*domain.BalanceOverview, error) {
	providerBalance, rate, err := s.providerBalance(ctx)
	if err != nil {
		return nil, err
	}
	allocated, err := s.balanceRepo.TotalAllocated(ctx)
	if err != nil {
		zap.L().Error("failed to sum allocated coins", zap.Error(err))
		return nil, domain.Storage(err)
	}

	providerCoins := providerBalance.Amount * rate
	return &domain.BalanceOverview{
		ProviderAmount:   providerBalance.Amount,
		ProviderCurrency: providerBalance.Currency,
		ProviderCoins:    providerCoins,
		TotalAllocated:   allocated,
		Available:        math.Max(0, providerCoins-allocated),
	}, nil
}

func (s *Service) providerBalance(ctx context.Context) (*domain.ProviderBalance, float64, error) {
	balance, err := s.provider.Balance(ctx)
	if err != nil {
		zap.L().Error("failed to fetch provider balance", zap.Error(err))
		return nil, 0, err
	}
	rate, err := s.rates.UsdRate(ctx)
	if err != nil {
		return nil, 0, err
	}
	return balance, rate, nil
}

func (s *Service) History(ctx context.Context, userID string, limit int) ([]domain.CoinTransaction, error) {
	txs, err := s.historyRepo.ListByUser(ctx, userID, clampLimit(limit))
	if err != nil {
		zap.L().Error("failed to fetch coin history", zap.String("user_id", userID), zap.Error(err))
		return nil, domain.Storage(err)
	}
	return txs, nil
}

func (s *Service) AllHistory(ctx context.Context, limit int) ([]domain.CoinTransaction, error) {
	txs, err := s.historyRepo.ListAll(ctx, clampLimit(limit))
	if err != nil {
		zap.L().Error("failed to fetch coin history", zap.Error(err))
		return nil, domain.Storage(err)
	}
	return txs, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	return min(limit, maxHistoryLimit)
}

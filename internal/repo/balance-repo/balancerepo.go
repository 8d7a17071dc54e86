package balancerepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, TxManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: TxManager,
	}
}

// EnsureBalance returns the stored balance, creating the row with initial first.
// A row is only created for an existing user; ErrNotFound otherwise.
func (r *Repository) EnsureBalance(ctx context.Context, userID string, initial float64) (float64, error) {
	query := `
		INSERT INTO coin_balances (user_id, coins)
		SELECT $1::uuid, $2::double precision
		WHERE EXISTS (SELECT 1 FROM users WHERE id = $1::uuid)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING coins
	`
	var coins float64
	if err := r.db.QueryRow(ctx, query, userID, initial).Scan(&coins); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		zap.L().Error("failed to ensure coin balance", zap.Error(err))
		return 0, err
	}
	return coins, nil
}

func (r *Repository) SetBalance(ctx context.Context, userID string, coins float64, memo domain.Memo) (float64, error) {
	query := `
		INSERT INTO coin_balances (user_id, coins)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET coins = EXCLUDED.coins, updated_at = NOW()
		RETURNING coins
	`
	var stored float64
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := r.db.QueryRow(ctx, query, userID, coins).Scan(&stored); err != nil {
			zap.L().Error("failed to set coin balance", zap.Error(err))
			return err
		}
		return r.record(ctx, nil, &userID, coins, memo)
	})
	if err != nil {
		return 0, err
	}
	return stored, nil
}

// AddCoins increments the balance in one statement. A missing row starts from
// initial, but only for an existing user.
func (r *Repository) AddCoins(ctx context.Context, userID string, amount, initial float64, memo domain.Memo) (float64, error) {
	query := `
		INSERT INTO coin_balances (user_id, coins)
		SELECT $1::uuid, $2::double precision + $3::double precision
		WHERE EXISTS (SELECT 1 FROM users WHERE id = $1::uuid)
		ON CONFLICT (user_id) DO UPDATE SET coins = coin_balances.coins + $3, updated_at = NOW()
		RETURNING coins
	`
	var coins float64
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := r.db.QueryRow(ctx, query, userID, initial, amount).Scan(&coins); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			zap.L().Error("failed to add coins", zap.Error(err))
			return err
		}
		return r.record(ctx, nil, &userID, amount, memo)
	})
	if err != nil {
		return 0, err
	}
	return coins, nil
}

// DeductCoins decrements the balance only when it covers amount.
// ok is false and nothing changes otherwise.
func (r *Repository) DeductCoins(ctx context.Context, userID string, amount float64, memo domain.Memo) (coins float64, ok bool, err error) {
	query := `
		UPDATE coin_balances
		SET coins = coins - $2, updated_at = NOW()
		WHERE user_id = $1 AND coins >= $2
		RETURNING coins
	`
	err = r.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := r.db.QueryRow(ctx, query, userID, amount).Scan(&coins); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			zap.L().Error("failed to deduct coins", zap.Error(err))
			return err
		}
		ok = true
		return r.record(ctx, &userID, nil, amount, memo)
	})
	if err != nil {
		return 0, false, err
	}
	return coins, ok, nil
}

// Transfer moves amount between two balances in one transaction. The source
// row is locked before the check so concurrent transfers cannot overdraw it.
// A destination without a user fails the whole transfer with ErrNotFound.
func (r *Repository) Transfer(ctx context.Context, fromUserID, toUserID string, amount float64, memo domain.Memo) (bool, error) {
	lockQuery := `SELECT coins FROM coin_balances WHERE user_id = $1 FOR UPDATE`
	debitQuery := `
		UPDATE coin_balances
		SET coins = coins - $2, updated_at = NOW()
		WHERE user_id = $1
	`
	creditQuery := `
		INSERT INTO coin_balances (user_id, coins)
		SELECT $1::uuid, $2::double precision
		WHERE EXISTS (SELECT 1 FROM users WHERE id = $1::uuid)
		ON CONFLICT (user_id) DO UPDATE SET coins = coin_balances.coins + EXCLUDED.coins, updated_at = NOW()
	`

	var ok bool
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		var balance float64
		if err := r.db.QueryRow(ctx, lockQuery, fromUserID).Scan(&balance); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			zap.L().Error("failed to lock source balance", zap.Error(err))
			return err
		}
		if amount > balance {
			return nil
		}
		if _, err := r.db.Exec(ctx, debitQuery, fromUserID, amount); err != nil {
			zap.L().Error("failed to debit source balance", zap.Error(err))
			return err
		}
		tag, err := r.db.Exec(ctx, creditQuery, toUserID, amount)
		if err != nil {
			zap.L().Error("failed to credit destination balance", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			// rolls the debit back
			return domain.ErrNotFound
		}
		if err := r.record(ctx, &fromUserID, &toUserID, amount, memo); err != nil {
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// TotalAllocated sums the coins held by every non-admin user.
func (r *Repository) TotalAllocated(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(SUM(b.coins), 0)
		FROM coin_balances b
		JOIN users u ON u.id = b.user_id
		WHERE u.role <> 'admin'
	`
	var total float64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		zap.L().Error("failed to sum allocated coins", zap.Error(err))
		return 0, err
	}
	return total, nil
}

func (r *Repository) record(ctx context.Context, from, to *string, amount float64, memo domain.Memo) error {
	query := `
		INSERT INTO coin_transactions (from_user_id, to_user_id, amount, kind, description)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.Exec(ctx, query, from, to, amount, string(memo.Kind), memo.Description); err != nil {
		zap.L().Error("failed to record coin transaction", zap.Error(err))
		return err
	}
	return nil
}

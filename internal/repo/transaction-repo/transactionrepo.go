package transactionrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// ListByUser returns the newest ledger rows where the user is either side.
func (r *Repository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.CoinTransaction, error) {
	query := `
		SELECT id, from_user_id, to_user_id, amount, kind, description, created_at
		FROM coin_transactions
		WHERE from_user_id = $1 OR to_user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	return r.list(ctx, query, userID, limit)
}

func (r *Repository) ListAll(ctx context.Context, limit int) ([]domain.CoinTransaction, error) {
	query := `
		SELECT id, from_user_id, to_user_id, amount, kind, description, created_at
		FROM coin_transactions
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.CoinTransaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch coin transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.CoinTransaction
	for rows.Next() {
		var tx domain.CoinTransaction
		err := rows.Scan(&tx.ID, &tx.FromUserID, &tx.ToUserID, &tx.Amount, &tx.Kind, &tx.Description, &tx.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan coin transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to iterate coin transactions", zap.Error(err))
		return nil, err
	}

	return txs, nil
}

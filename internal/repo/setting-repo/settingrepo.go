package settingrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

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

// GetSetting returns the stored value, persisting defaultValue when the key is absent.
func (r *Repository) GetSetting(ctx context.Context, key, defaultValue string) (string, error) {
	query := `SELECT value FROM settings WHERE key = $1`
	var value string
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		zap.L().Error("failed to get setting", zap.String("key", key), zap.Error(err))
		return "", err
	}

	insert := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert, key, defaultValue); err != nil {
		zap.L().Error("failed to store default setting", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return defaultValue, nil
}

func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		zap.L().Error("failed to set setting", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

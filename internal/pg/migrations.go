package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/migrations"
)

// RunMigrations applies every pending migration embedded in the binary.
// The pool itself stays open.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) (err error) {
	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.Migrations)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("can't create migration provider: %w", err)
	}
	defer func() {
		if cerr := provider.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("can't close migration db: %w", cerr))
		}
	}()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("can't apply migrations: %w", err)
	}
	for _, r := range results {
		zap.L().Info("migration applied",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("took", r.Duration))
	}
	if len(results) == 0 {
		zap.L().Debug("schema is up to date")
	}
	return nil
}

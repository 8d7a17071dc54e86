package pricingrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
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

// GetRule returns nil without error when the service has no rule.
func (r *Repository) GetRule(ctx context.Context, serviceID int64) (*domain.PricingRule, error) {
	query := `SELECT service_id, markup, custom_price FROM pricing_rules WHERE service_id = $1`
	var rule domain.PricingRule
	err := r.db.QueryRow(ctx, query, serviceID).Scan(&rule.ServiceID, &rule.Markup, &rule.CustomPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get pricing rule", zap.Int64("service_id", serviceID), zap.Error(err))
		return nil, err
	}
	return &rule, nil
}

func (r *Repository) ListRules(ctx context.Context) ([]domain.PricingRule, error) {
	query := `SELECT service_id, markup, custom_price FROM pricing_rules ORDER BY service_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to list pricing rules", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var rules []domain.PricingRule
	for rows.Next() {
		var rule domain.PricingRule
		if err := rows.Scan(&rule.ServiceID, &rule.Markup, &rule.CustomPrice); err != nil {
			zap.L().Error("failed to scan pricing rule row", zap.Error(err))
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *Repository) UpsertRule(ctx context.Context, rule domain.PricingRule) error {
	query := `
		INSERT INTO pricing_rules (service_id, markup, custom_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (service_id) DO UPDATE
		SET markup = EXCLUDED.markup, custom_price = EXCLUDED.custom_price, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, rule.ServiceID, rule.Markup, rule.CustomPrice); err != nil {
		zap.L().Error("failed to upsert pricing rule", zap.Int64("service_id", rule.ServiceID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) DeleteRule(ctx context.Context, serviceID int64) error {
	query := `DELETE FROM pricing_rules WHERE service_id = $1`
	tag, err := r.db.Exec(ctx, query, serviceID)
	if err != nil {
		zap.L().Error("failed to delete pricing rule", zap.Int64("service_id", serviceID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package orderrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/pg"
)

const orderColumns = `id, user_id, order_id, service_id, service_name, link, quantity, cost_coins,
	status, charge, start_count, remains, currency, created_at, updated_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanOrder(row pgx.Row, order *domain.Order) error {
	return row.Scan(&order.ID, &order.UserID, &order.OrderID, &order.ServiceID, &order.ServiceName,
		&order.Link, &order.Quantity, &order.CostCoins, &order.Status, &order.Charge,
		&order.StartCount, &order.Remains, &order.Currency, &order.CreatedAt, &order.UpdatedAt)
}

func (r *Repository) collect(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := scanOrder(rows, &order); err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// FindByID returns nil when the order does not exist or belongs to someone else.
func (r *Repository) FindByID(ctx context.Context, userID string, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`

	var order domain.Order
	err := scanOrder(r.db.QueryRow(ctx, query, id, userID), &order)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *Repository) FindOrdersByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.collect(ctx, query, userID)
}

// FindByProviderIDs keeps only the orders owned by userID.
func (r *Repository) FindByProviderIDs(ctx context.Context, userID string, orderIDs []int64) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 AND order_id = ANY($2)`
	return r.collect(ctx, query, userID, orderIDs)
}

// FindForRefresh selects orders whose status may still change, least recently updated first.
func (r *Repository) FindForRefresh(ctx context.Context, limit uint32) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE status <> ALL($1)
		ORDER BY updated_at ASC
		LIMIT $2`
	return r.collect(ctx, query, domain.FinalStatuses, int(limit))
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (user_id, order_id, service_id, service_name, link, quantity, cost_coins, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, order.UserID, order.OrderID, order.ServiceID, order.ServiceName,
			order.Link, order.Quantity, order.CostCoins, order.Status).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			zap.L().Error("can't save order", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// UpdateStatuses applies provider status reports in one transaction.
// Reports carrying an error are skipped.
func (r *Repository) UpdateStatuses(ctx context.Context, statuses []domain.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $1, charge = $2, start_count = $3, remains = $4, currency = $5, updated_at = NOW()
		WHERE order_id = $6
	`
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		for _, st := range statuses {
			if st.Error != "" {
				continue
			}
			if _, err := r.db.Exec(ctx, query, st.Status, st.Charge, st.StartCount, st.Remains, st.Currency, st.OrderID); err != nil {
				zap.L().Error("failed to update order", zap.Int64("order_id", st.OrderID), zap.Error(err))
				return err
			}
		}
		return nil
	})
}

package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/pg"
)

const userColumns = "id, username, email, password_hash, role, is_active, created_at"

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

func scanUser(row pgx.Row, user *domain.User) error {
	return row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.IsActive, &user.CreatedAt)
}

func (repo *Repository) find(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := scanUser(repo.db.QueryRow(ctx, query, arg), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return repo.find(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (repo *Repository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return repo.find(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

// Create stores the user together with its coin balance row.
func (repo *Repository) Create(ctx context.Context, user *domain.User, coins float64) (*domain.User, error) {
	insertUser := `
		INSERT INTO users (id, username, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	insertBalance := `
		INSERT INTO coin_balances (user_id, coins)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	err := repo.txManager.Begin(ctx, func(ctx context.Context) error {
		err := repo.db.QueryRow(ctx, insertUser, user.ID, user.Username, user.Email, user.PasswordHash, user.Role, user.IsActive).
			Scan(&user.CreatedAt)
		if err != nil {
			zap.L().Error("can't save user", zap.Error(err))
			return err
		}
		if _, err := repo.db.Exec(ctx, insertBalance, user.ID, coins); err != nil {
			zap.L().Error("can't create user balance", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (repo *Repository) ListWithBalances(ctx context.Context) ([]domain.UserWithBalance, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.role, u.is_active, u.created_at, COALESCE(b.coins, 0)
		FROM users u
		LEFT JOIN coin_balances b ON b.user_id = u.id
		ORDER BY u.created_at DESC
	`
	rows, err := repo.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.UserWithBalance
	for rows.Next() {
		var u domain.UserWithBalance
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.Balance)
		if err != nil {
			zap.L().Error("can't scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (repo *Repository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := repo.db.Exec(ctx, "UPDATE users SET is_active = $1 WHERE id = $2", active, id)
	if err != nil {
		zap.L().Error("can't update user status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the user and its balance row.
func (repo *Repository) Delete(ctx context.Context, id string) error {
	return repo.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := repo.db.Exec(ctx, "DELETE FROM coin_balances WHERE user_id = $1", id); err != nil {
			zap.L().Error("can't delete user balance", zap.Error(err))
			return err
		}
		tag, err := repo.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
		if err != nil {
			zap.L().Error("can't delete user", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

package transactionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/smmpanel/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	repo, mock := NewMock(t)
	now := time.Now()
	admin := "6f1e1f0d-8d51-4d7d-b3c6-2c1f9f6c0e22"
	user := "0b7c6c39-3b53-4e0f-a6f4-6a9e4a0b2a11"
	query := regexp.QuoteMeta(`
		SELECT id, from_user_id, to_user_id, amount, kind, description, created_at
		FROM coin_transactions
		WHERE from_user_id = $1 OR to_user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.CoinTransaction
	}{
		{
			name: "Rows on both sides",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "from_user_id", "to_user_id", "amount", "kind", "description", "created_at"}).
					AddRow(int64(2), &user, (*string)(nil), 93.75, domain.TxOrder, "order 23501", now).
					AddRow(int64(1), &admin, &user, 300.0, domain.TxTransfer, "allocation", now)
				mock.ExpectQuery(query).WithArgs(user, 50).WillReturnRows(rows)
			},
			result: []domain.CoinTransaction{
				{ID: 2, FromUserID: &user, Amount: 93.75, Kind: domain.TxOrder, Description: "order 23501", CreatedAt: now},
				{ID: 1, FromUserID: &admin, ToUserID: &user, Amount: 300, Kind: domain.TxTransfer, Description: "allocation", CreatedAt: now},
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(user, 50).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.ListByUser(ctx, user, 50)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListAll(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	admin := "6f1e1f0d-8d51-4d7d-b3c6-2c1f9f6c0e22"

	rows := pgxmock.NewRows([]string{"id", "from_user_id", "to_user_id", "amount", "kind", "description", "created_at"}).
		AddRow(int64(7), (*string)(nil), &admin, 5042.0, domain.TxSync, "provider balance sync", now)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM coin_transactions ORDER BY created_at DESC, id DESC LIMIT $1`)).
		WithArgs(10).
		WillReturnRows(rows)

	result, err := repo.ListAll(context.Background(), 10)
	assert.NoError(t, err)
	require.Len(t, result, 1)
	assert.Nil(t, result[0].FromUserID)
	assert.Equal(t, admin, *result[0].ToUserID)
	assert.Equal(t, domain.TxSync, result[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package provider

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Refresher, *MockOrderRepo, *MockStatusFetcher, *MockWorkerPoolI) {
	ctrl := gomock.NewController(t)

	orderRepo := NewMockOrderRepo(ctrl)
	fetcher := NewMockStatusFetcher(ctrl)
	pool := NewMockWorkerPoolI(ctrl)

	refresher := NewRefresher(orderRepo, fetcher, "")
	refresher.workerPool = pool
	return refresher, orderRepo, fetcher, pool
}

func runInline(pool *MockWorkerPoolI) *gomock.Call {
	return pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, task Task) error {
		_ = task()
		return nil
	})
}

func orders(ids ...int64) []domain.Order {
	out := make([]domain.Order, len(ids))
	for i, id := range ids {
		out[i] = domain.Order{OrderID: id, Status: domain.StatusPending}
	}
	return out
}

func TestRefresher_Start(t *testing.T) {
	refresher, _, _, pool := NewMock(t)
	closed := make(chan struct{})
	pool.EXPECT().Close().Do(func() { close(closed) })

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, refresher.Start(ctx))
	cancel()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("worker pool was not closed")
	}
}

func TestRefresher_StartInvalidSchedule(t *testing.T) {
	refresher, _, _, _ := NewMock(t)
	refresher.schedule = "every now and then"

	err := refresher.Start(context.Background())
	assert.ErrorContains(t, err, "invalid refresh schedule")
}

func TestRefresher_refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("updates statuses of pending orders", func(t *testing.T) {
		refresher, orderRepo, fetcher, pool := NewMock(t)
		statuses := []domain.OrderStatus{
			{OrderID: 1, Status: domain.StatusCompleted, Remains: "0"},
			{OrderID: 2, Error: "Incorrect order ID"},
		}

		orderRepo.EXPECT().FindForRefresh(ctx, uint32(refreshLimit)).Return(orders(1, 2), nil)
		runInline(pool)
		fetcher.EXPECT().MultiStatus(ctx, []int64{1, 2}).Return(statuses, nil)
		orderRepo.EXPECT().UpdateStatuses(ctx, statuses).Return(nil)

		refresher.refresh(ctx)

		_, inFlight := refresher.inFlight.Load(int64(1))
		assert.False(t, inFlight)
	})

	t.Run("splits into provider batches", func(t *testing.T) {
		refresher, orderRepo, fetcher, pool := NewMock(t)
		ids := make([]int64, 250)
		for i := range ids {
			ids[i] = int64(i + 1)
		}

		orderRepo.EXPECT().FindForRefresh(ctx, gomock.Any()).Return(orders(ids...), nil)
		runInline(pool).Times(3)
		fetcher.EXPECT().MultiStatus(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, batch []int64) ([]domain.OrderStatus, error) {
			assert.LessOrEqual(t, len(batch), MaxBatch)
			return nil, nil
		}).Times(3)
		orderRepo.EXPECT().UpdateStatuses(ctx, gomock.Any()).Return(nil).Times(3)

		refresher.refresh(ctx)
	})

	t.Run("skips orders already in flight", func(t *testing.T) {
		refresher, orderRepo, fetcher, pool := NewMock(t)
		refresher.inFlight.Store(int64(1), struct{}{})

		orderRepo.EXPECT().FindForRefresh(ctx, gomock.Any()).Return(orders(1, 2), nil)
		runInline(pool)
		fetcher.EXPECT().MultiStatus(ctx, []int64{2}).Return(nil, nil)
		orderRepo.EXPECT().UpdateStatuses(ctx, gomock.Any()).Return(nil)

		refresher.refresh(ctx)

		_, stillInFlight := refresher.inFlight.Load(int64(1))
		assert.True(t, stillInFlight)
	})

	t.Run("nothing to refresh", func(t *testing.T) {
		refresher, orderRepo, _, _ := NewMock(t)
		orderRepo.EXPECT().FindForRefresh(ctx, gomock.Any()).Return(nil, nil)

		refresher.refresh(ctx)
	})

	t.Run("repository failure", func(t *testing.T) {
		refresher, orderRepo, _, _ := NewMock(t)
		orderRepo.EXPECT().FindForRefresh(ctx, gomock.Any()).Return(nil, errors.New("db down"))

		refresher.refresh(ctx)
	})

	t.Run("provider failure leaves statuses untouched", func(t *testing.T) {
		refresher, orderRepo, fetcher, pool := NewMock(t)

		orderRepo.EXPECT().FindForRefresh(ctx, gomock.Any()).Return(orders(7), nil)
		runInline(pool)
		fetcher.EXPECT().MultiStatus(ctx, []int64{7}).Return(nil, errors.New("timeout"))

		refresher.refresh(ctx)

		_, inFlight := refresher.inFlight.Load(int64(7))
		assert.False(t, inFlight)
	})

	t.Run("waits for batches run by workers", func(t *testing.T) {
		refresher, orderRepo, fetcher, pool := NewMock(t)
		var updated atomic.Bool

		orderRepo.EXPECT().FindForRefresh(ctx, gomock.Any()).Return(orders(5), nil)
		pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, task Task) error {
			go func() {
				time.Sleep(20 * time.Millisecond)
				_ = task()
			}()
			return nil
		})
		fetcher.EXPECT().MultiStatus(ctx, []int64{5}).Return(nil, nil)
		orderRepo.EXPECT().UpdateStatuses(ctx, gomock.Any()).DoAndReturn(func(context.Context, []domain.OrderStatus) error {
			updated.Store(true)
			return nil
		})

		refresher.refresh(ctx)

		assert.True(t, updated.Load())
	})

	t.Run("pool rejects task", func(t *testing.T) {
		refresher, orderRepo, _, pool := NewMock(t)

		orderRepo.EXPECT().FindForRefresh(ctx, gomock.Any()).Return(orders(3), nil)
		pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(context.Canceled)

		refresher.refresh(ctx)

		_, inFlight := refresher.inFlight.Load(int64(3))
		assert.False(t, inFlight)
	})
}

func TestRefresher_refreshBatchUpdateError(t *testing.T) {
	refresher, orderRepo, fetcher, _ := NewMock(t)
	ctx := context.Background()

	fetcher.EXPECT().MultiStatus(ctx, []int64{1}).Return([]domain.OrderStatus{{OrderID: 1, Status: domain.StatusCanceled}}, nil)
	orderRepo.EXPECT().UpdateStatuses(ctx, gomock.Any()).Return(errors.New("deadlock"))

	err := refresher.refreshBatch(ctx, []int64{1})
	assert.ErrorContains(t, err, "failed to update order statuses")
}

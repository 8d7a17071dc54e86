package provider

//go:generate mockgen -source=refresher.go -destination=mock_refresher.go -package=provider

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSchedule = "@every 1m"
	refreshWorkers  = 10
	refreshLimit    = 1000
)

type OrderRepo interface {
	FindForRefresh(ctx context.Context, limit uint32) ([]domain.Order, error)
	UpdateStatuses(ctx context.Context, statuses []domain.OrderStatus) error
}

type StatusFetcher interface {
	MultiStatus(ctx context.Context, ids []int64) ([]domain.OrderStatus, error)
}

// Refresher polls the provider for orders that have not reached a final status.
type Refresher struct {
	orders     OrderRepo
	provider   StatusFetcher
	workerPool WorkerPoolI
	schedule   string
	limit      uint32
	inFlight   sync.Map
}

func NewRefresher(orders OrderRepo, provider StatusFetcher, schedule string) *Refresher {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Refresher{
		orders:     orders,
		provider:   provider,
		workerPool: NewWorkerPool(refreshWorkers),
		schedule:   schedule,
		limit:      refreshLimit,
	}
}

// Start schedules the refresh job. The job and the worker pool stop when ctx is done.
func (r *Refresher) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() { r.refresh(ctx) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.schedule, err)
	}
	c.Start()
	zap.L().Info("Order refresher started", zap.String("schedule", r.schedule))

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		r.workerPool.Close()
		zap.L().Info("Order refresher stopped")
	}()
	return nil
}

func (r *Refresher) refresh(ctx context.Context) {
	orders, err := r.orders.FindForRefresh(ctx, atomic.LoadUint32(&r.limit))
	if err != nil {
		zap.L().Error("Failed to fetch orders for refresh", zap.Error(err))
		return
	}

	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		if _, loaded := r.inFlight.LoadOrStore(order.OrderID, struct{}{}); loaded {
			continue
		}
		ids = append(ids, order.OrderID)
	}

	var g errgroup.Group
	for _, batch := range chunk(ids, MaxBatch) {
		g.Go(func() error {
			done := make(chan error, 1)
			err := r.workerPool.AddTask(ctx, func() error {
				defer r.release(batch)
				done <- r.refreshBatch(ctx, batch)
				return nil
			})
			if err != nil {
				r.release(batch)
				return err
			}
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error refreshing orders", zap.Error(err))
	}
}

func (r *Refresher) refreshBatch(ctx context.Context, batch []int64) error {
	statuses, err := r.provider.MultiStatus(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to fetch statuses for %d orders: %w", len(batch), err)
	}

	for _, st := range statuses {
		if st.Error != "" {
			zap.L().Warn("Provider reported order error", zap.Int64("order_id", st.OrderID), zap.String("error", st.Error))
		}
	}

	if err := r.orders.UpdateStatuses(ctx, statuses); err != nil {
		return fmt.Errorf("failed to update order statuses: %w", err)
	}
	return nil
}

func (r *Refresher) release(batch []int64) {
	for _, id := range batch {
		r.inFlight.Delete(id)
	}
}

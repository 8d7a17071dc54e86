package orderservice

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/internal/cache"
	"github.com/GlebRadaev/smmpanel/internal/domain"
)

const catalogKey = "services"

//go:generate mockgen -source=orderservice.go -destination=mock_orderservice.go -package=orderservice
type Repo interface {
	FindByID(ctx context.Context, userID string, id int64) (*domain.Order, error)
	FindOrdersByUserID(ctx context.Context, userID string) ([]domain.Order, error)
	FindByProviderIDs(ctx context.Context, userID string, orderIDs []int64) ([]domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
	UpdateStatuses(ctx context.Context, statuses []domain.OrderStatus) error
}

type Provider interface {
	Services(ctx context.Context) ([]domain.CatalogService, error)
	AddOrder(ctx context.Context, params domain.OrderParams) (int64, error)
	Status(ctx context.Context, orderID int64) (*domain.OrderStatus, error)
	Refill(ctx context.Context, orderID int64) (int64, error)
	Cancel(ctx context.Context, orderIDs []int64) ([]domain.CancelResult, error)
}

type Pricing interface {
	PriceCatalog(ctx context.Context, services []domain.CatalogService) ([]domain.PricedService, error)
	CalculateOrderCost(ctx context.Context, providerRate, quantity float64, serviceID int64) (float64, error)
}

type Ledger interface {
	GetBalance(ctx context.Context, userID string) (float64, error)
	Charge(ctx context.Context, userID string, amount float64, memo domain.Memo) (bool, error)
	Credit(ctx context.Context, userID string, amount float64, memo domain.Memo) (float64, error)
}

type Service struct {
	repo     Repo
	provider Provider
	pricing  Pricing
	ledger   Ledger
	catalog  *cache.TTL[[]domain.CatalogService]
}

func New(repo Repo, provider Provider, pricing Pricing, ledger Ledger, catalog *cache.TTL[[]domain.CatalogService]) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		pricing:  pricing,
		ledger:   ledger,
		catalog:  catalog,
	}
}

func notFound(id int64) error {
	return fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
}

func (s *Service) services(ctx context.Context) ([]domain.CatalogService, error) {
	return s.catalog.GetOrLoad(catalogKey, func() ([]domain.CatalogService, error) {
		services, err := s.provider.Services(ctx)
		if err != nil {
			zap.L().Error("failed to load provider catalog", zap.Error(err))
			return nil, err
		}
		return services, nil
	})
}

// Catalog lists provider services priced in coins per 1000. Services whose
// price cannot be resolved are left out.
func (s *Service) Catalog(ctx context.Context) ([]domain.PricedService, error) {
	services, err := s.services(ctx)
	if err != nil {
		return nil, err
	}
	return s.pricing.PriceCatalog(ctx, services)
}

func (s *Service) findService(ctx context.Context, serviceID int64) (*domain.CatalogService, error) {
	services, err := s.services(ctx)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].ServiceID == serviceID {
			return &services[i], nil
		}
	}
	return nil, domain.InvalidInput("unknown service %d", serviceID)
}

// commentCount is the quantity of a custom-comments order: one item per non-empty line.
func commentCount(comments string) int64 {
	var n int64
	for _, line := range strings.Split(comments, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// PlaceOrder charges the user, places the order with the provider and stores it.
// When the provider rejects the order the charge is refunded once.
func (s *Service) PlaceOrder(ctx context.Context, userID string, params domain.OrderParams) (*domain.Order, error) {
	svc, err := s.findService(ctx, params.ServiceID)
	if err != nil {
		return nil, err
	}

	if params.Comments != "" {
		params.Quantity = commentCount(params.Comments)
	}
	if params.Quantity <= 0 || params.Quantity < svc.Min || (svc.Max > 0 && params.Quantity > svc.Max) {
		return nil, domain.InvalidInput("quantity must be between %d and %d, got %d", svc.Min, svc.Max, params.Quantity)
	}

	cost, err := s.pricing.CalculateOrderCost(ctx, svc.Rate, float64(params.Quantity), svc.ServiceID)
	if err != nil {
		return nil, err
	}

	if cost > 0 {
		if err := s.charge(ctx, userID, cost, domain.Memo{Kind: domain.TxOrder, Description: "order: " + svc.Name}); err != nil {
			return nil, err
		}
	}

	providerID, err := s.provider.AddOrder(ctx, params)
	if err != nil {
		zap.L().Warn("provider rejected order", zap.String("user_id", userID), zap.Int64("service_id", svc.ServiceID), zap.Error(err))
		if cost > 0 {
			if refundErr := s.refund(ctx, userID, cost, "order rejected: "+svc.Name); refundErr != nil {
				return nil, refundErr
			}
		}
		return nil, err
	}

	order := &domain.Order{
		UserID:      userID,
		OrderID:     providerID,
		ServiceID:   svc.ServiceID,
		ServiceName: svc.Name,
		Link:        params.Link,
		Quantity:    params.Quantity,
		CostCoins:   cost,
		Status:      domain.StatusPending,
	}
	if err := s.repo.Save(ctx, order); err != nil {
		// The provider already holds the order, so the charge stands.
		zap.L().Error("can't save placed order", zap.Int64("order_id", providerID), zap.String("user_id", userID), zap.Error(err))
		return nil, domain.Storage(err)
	}

	zap.L().Info("order placed", zap.Int64("order_id", providerID), zap.String("user_id", userID), zap.Float64("cost", cost))
	return order, nil
}

func (s *Service) charge(ctx context.Context, userID string, amount float64, memo domain.Memo) error {
	ok, err := s.ledger.Charge(ctx, userID, amount, memo)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	balance, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		return err
	}
	return &domain.InsufficientBalanceError{Balance: balance, Requested: amount}
}

func (s *Service) refund(ctx context.Context, userID string, amount float64, description string) error {
	if _, err := s.ledger.Credit(ctx, userID, amount, domain.Memo{Kind: domain.TxRefund, Description: description}); err != nil {
		zap.L().Error("refund failed", zap.String("user_id", userID), zap.Float64("amount", amount), zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrRefundFailed, err)
	}
	return nil
}

func (s *Service) GetOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.FindOrdersByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, domain.Storage(err)
	}
	return orders, nil
}

func (s *Service) getOrder(ctx context.Context, userID string, id int64) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, domain.Storage(err)
	}
	if order == nil {
		return nil, notFound(id)
	}
	return order, nil
}

// RefreshOrder pulls the current provider status of one order and stores it.
func (s *Service) RefreshOrder(ctx context.Context, userID string, id int64) (*domain.Order, error) {
	order, err := s.getOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	status, err := s.provider.Status(ctx, order.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatuses(ctx, []domain.OrderStatus{*status}); err != nil {
		return nil, domain.Storage(err)
	}

	order.Status = status.Status
	order.Charge = status.Charge
	order.StartCount = status.StartCount
	order.Remains = status.Remains
	order.Currency = status.Currency
	return order, nil
}

// Refill re-runs a completed order at its original cost.
func (s *Service) Refill(ctx context.Context, userID string, id int64) (*domain.Refill, error) {
	order, err := s.getOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.Status, domain.StatusCompleted) {
		return nil, domain.InvalidInput("only completed orders can be refilled")
	}

	cost := order.CostCoins
	if cost > 0 {
		if err := s.charge(ctx, userID, cost, domain.Memo{Kind: domain.TxRefill, Description: fmt.Sprintf("refill of order %d", order.OrderID)}); err != nil {
			return nil, err
		}
	}

	refillID, err := s.provider.Refill(ctx, order.OrderID)
	if err != nil {
		zap.L().Warn("provider rejected refill", zap.Int64("order_id", order.OrderID), zap.Error(err))
		if cost > 0 {
			if refundErr := s.refund(ctx, userID, cost, fmt.Sprintf("refill of order %d rejected", order.OrderID)); refundErr != nil {
				return nil, refundErr
			}
		}
		return nil, err
	}

	balance, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Refill{RefillID: refillID, Cost: cost, NewBalance: balance}, nil
}

// Cancel forwards the cancellation of the user's own orders. Ids that do not
// belong to the user are reported as not found without reaching the provider.
func (s *Service) Cancel(ctx context.Context, userID string, orderIDs []int64) ([]domain.CancelResult, error) {
	if len(orderIDs) == 0 {
		return nil, domain.InvalidInput("no orders to cancel")
	}

	owned, err := s.repo.FindByProviderIDs(ctx, userID, orderIDs)
	if err != nil {
		return nil, domain.Storage(err)
	}
	ownedIDs := make(map[int64]struct{}, len(owned))
	for _, o := range owned {
		ownedIDs[o.OrderID] = struct{}{}
	}

	var forward []int64
	results := make(map[int64]domain.CancelResult, len(orderIDs))
	for _, id := range orderIDs {
		if _, ok := ownedIDs[id]; !ok {
			results[id] = domain.CancelResult{OrderID: id, Error: "order not found"}
			continue
		}
		forward = append(forward, id)
	}

	if len(forward) > 0 {
		answers, err := s.provider.Cancel(ctx, forward)
		if err != nil {
			return nil, err
		}
		for _, a := range answers {
			results[a.OrderID] = a
		}
	}

	out := make([]domain.CancelResult, 0, len(orderIDs))
	for _, id := range orderIDs {
		r, ok := results[id]
		if !ok {
			r = domain.CancelResult{OrderID: id, Error: "no answer from provider"}
		}
		out = append(out, r)
	}
	return out, nil
}

// CancelOrder cancels one order addressed by its local id.
func (s *Service) CancelOrder(ctx context.Context, userID string, id int64) (*domain.CancelResult, error) {
	order, err := s.getOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	results, err := s.Cancel(ctx, userID, []int64{order.OrderID})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

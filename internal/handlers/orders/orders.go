package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/dto"
	"github.com/GlebRadaev/smmpanel/internal/handlers/httperr"
	"github.com/GlebRadaev/smmpanel/pkg/auth"
	"github.com/GlebRadaev/smmpanel/pkg/utils"
	"github.com/GlebRadaev/smmpanel/pkg/validate"
)

//go:generate mockgen -source=orders.go -destination=mock_orders.go -package=orders
type Service interface {
	Catalog(ctx context.Context) ([]domain.PricedService, error)
	PlaceOrder(ctx context.Context, userID string, params domain.OrderParams) (*domain.Order, error)
	GetOrders(ctx context.Context, userID string) ([]domain.Order, error)
	RefreshOrder(ctx context.Context, userID string, id int64) (*domain.Order, error)
	Refill(ctx context.Context, userID string, id int64) (*domain.Refill, error)
	Cancel(ctx context.Context, userID string, orderIDs []int64) ([]domain.CancelResult, error)
	CancelOrder(ctx context.Context, userID string, id int64) (*domain.CancelResult, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func orderResponse(o *domain.Order) dto.OrderResponseDTO {
	resp := dto.OrderResponseDTO{
		ID:          o.ID,
		OrderID:     o.OrderID,
		ServiceID:   o.ServiceID,
		ServiceName: o.ServiceName,
		Link:        o.Link,
		Quantity:    o.Quantity,
		CostCoins:   o.CostCoins,
		Status:      o.Status,
		Charge:      o.Charge,
		StartCount:  o.StartCount,
		Remains:     o.Remains,
		Currency:    o.Currency,
	}
	if !o.CreatedAt.IsZero() {
		resp.CreatedAt = o.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return 0, false
	}
	return id, true
}

// Catalog godoc
//
//	@Summary		List provider services
//	@Description	Provider services with their price in coins per 1000 items.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ServiceDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		502	{object}	utils.Response	"Provider error"
//	@Failure		503	{object}	utils.Response	"Provider is temporarily unavailable"
//	@Router			/api/services [get]
func (h *OrderHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	services, err := h.orderService.Catalog(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}

	response := make([]dto.ServiceDTO, 0, len(services))
	for _, s := range services {
		response = append(response, dto.ServiceDTO{
			Service:      s.ServiceID,
			Name:         s.Name,
			Type:         s.Type,
			Category:     s.Category,
			Rate:         s.Rate,
			CoinsPer1000: s.CoinsPer1000,
			Min:          s.Min,
			Max:          s.Max,
			Refill:       s.Refill,
			Cancel:       s.Cancel,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// AddOrder godoc
//
//	@Summary		Place a new order
//	@Description	Charge the order cost and place the order with the provider. The charge is refunded when the provider rejects the order.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateOrderRequestDTO	true	"Order payload"
//	@Success		201		{object}	dto.OrderResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid order or insufficient balance"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Failure		502		{object}	utils.Response	"Provider error"
//	@Router			/api/orders [post]
func (h *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), auth.UserID(r.Context()), domain.OrderParams{
		ServiceID: req.ServiceID,
		Link:      req.Link,
		Quantity:  req.Quantity,
		Runs:      req.Runs,
		Interval:  req.Interval,
		Comments:  req.Comments,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, orderResponse(order))
}

// GetOrders godoc
//
//	@Summary		Get orders list for user
//	@Description	Orders of the authenticated user, newest first.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.OrdersResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetOrders(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		httperr.Respond(w, err)
		return
	}

	response := dto.OrdersResponseDTO{Orders: make([]dto.OrderResponseDTO, 0, len(orders))}
	for i := range orders {
		response.Orders = append(response.Orders, orderResponse(&orders[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// RefreshOrder godoc
//
//	@Summary	Refresh order status
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Order id"
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid order id"
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Failure	502	{object}	utils.Response	"Provider error"
//	@Router		/api/orders/{id}/refresh [post]
func (h *OrderHandler) RefreshOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	order, err := h.orderService.RefreshOrder(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderResponse(order))
}

// RefillOrder godoc
//
//	@Summary		Refill a completed order
//	@Description	Charges the original order cost again and asks the provider to refill.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Order id"
//	@Success		200	{object}	dto.RefillResponseDTO
//	@Failure		400	{object}	utils.Response	"Order cannot be refilled or insufficient balance"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		502	{object}	utils.Response	"Provider error"
//	@Router			/api/orders/{id}/refill [post]
func (h *OrderHandler) RefillOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	refill, err := h.orderService.Refill(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RefillResponseDTO{
		Success:    true,
		Refill:     refill.RefillID,
		Cost:       refill.Cost,
		NewBalance: refill.NewBalance,
	})
}

// CancelOrder godoc
//
//	@Summary	Cancel one order
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Order id"
//	@Success	200	{object}	dto.CancelResultDTO
//	@Failure	400	{object}	utils.Response	"Invalid order id"
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Failure	502	{object}	utils.Response	"Provider error"
//	@Router		/api/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	result, err := h.orderService.CancelOrder(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CancelResultDTO{OrderID: result.OrderID, Error: result.Error})
}

// CancelOrders godoc
//
//	@Summary		Cancel several orders
//	@Description	Takes provider order ids. Every id gets its own result; ids of other users are reported as not found.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CancelRequestDTO	true	"Provider order ids"
//	@Success		200		{array}		dto.CancelResultDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		502		{object}	utils.Response	"Provider error"
//	@Router			/api/orders/cancel [post]
func (h *OrderHandler) CancelOrders(w http.ResponseWriter, r *http.Request) {
	var req dto.CancelRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.orderService.Cancel(r.Context(), auth.UserID(r.Context()), req.OrderIDs)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.CancelResultDTO, 0, len(results))
	for _, res := range results {
		response = append(response, dto.CancelResultDTO{OrderID: res.OrderID, Error: res.Error})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

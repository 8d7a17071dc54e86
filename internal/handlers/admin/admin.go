package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/dto"
	"github.com/GlebRadaev/smmpanel/internal/handlers/balance"
	"github.com/GlebRadaev/smmpanel/internal/handlers/httperr"
	"github.com/GlebRadaev/smmpanel/internal/service/authservice"
	"github.com/GlebRadaev/smmpanel/pkg/auth"
	"github.com/GlebRadaev/smmpanel/pkg/utils"
	"github.com/GlebRadaev/smmpanel/pkg/validate"
)

//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=admin
type BalanceService interface {
	Allocate(ctx context.Context, adminID, userID string, amount float64) (*domain.Allocation, error)
	Deallocate(ctx context.Context, adminID, userID string, amount float64) (*domain.Allocation, error)
	SyncProviderBalance(ctx context.Context, adminID string) (*domain.ProviderSync, error)
	Overview(ctx context.Context) (*domain.BalanceOverview, error)
	AllHistory(ctx context.Context, limit int) ([]domain.CoinTransaction, error)
}

type PricingService interface {
	DefaultMarkup(ctx context.Context) (float64, error)
	SetDefaultMarkup(ctx context.Context, markup float64) error
	UsdRate(ctx context.Context) (float64, error)
	SetUsdRate(ctx context.Context, rate float64) error
	CoinRate(ctx context.Context) (float64, error)
	SetCoinRate(ctx context.Context, rate float64) error
	ListRules(ctx context.Context) ([]domain.PricingRule, error)
	SetRule(ctx context.Context, rule domain.PricingRule) error
	DeleteRule(ctx context.Context, serviceID int64) error
}

type UserService interface {
	CreateUser(ctx context.Context, email, username, password string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.UserWithBalance, error)
	SetActive(ctx context.Context, adminID, userID string, active bool) error
	DeleteUser(ctx context.Context, adminID, userID string) error
}

type AdminHandler struct {
	balanceService BalanceService
	pricingService PricingService
	userService    UserService
}

func New(balanceService BalanceService, pricingService PricingService, userService UserService) *AdminHandler {
	return &AdminHandler{
		balanceService: balanceService,
		pricingService: pricingService,
		userService:    userService,
	}
}

func decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// AllocateCoins godoc
//
//	@Summary		Allocate coins to a user
//	@Description	Moves coins from the admin balance to the user balance.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CoinMovementRequestDTO	true	"Allocation"
//	@Success		200		{object}	dto.AllocateResponseDTO
//	@Failure		400		{object}	dto.InsufficientBalanceDTO	"Insufficient admin balance"
//	@Failure		403		{object}	utils.Response				"Admin access required"
//	@Router			/api/admin/allocate-coins [post]
func (h *AdminHandler) AllocateCoins(w http.ResponseWriter, r *http.Request) {
	var req dto.CoinMovementRequestDTO
	if !decode(w, r, &req) {
		return
	}

	res, err := h.balanceService.Allocate(r.Context(), auth.UserID(r.Context()), req.UserID, *req.Amount)
	var ibe *domain.InsufficientBalanceError
	switch {
	case errors.As(err, &ibe):
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.InsufficientBalanceDTO{
			Error:        httperr.InsufficientMessage(ibe, "allocate"),
			AdminBalance: ibe.Balance,
		})
		return
	case err != nil:
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AllocateResponseDTO{
		Success:           true,
		AdminBalance:      res.AdminBalance,
		UserBalance:       res.UserBalance,
		AmountTransferred: res.Amount,
	})
}

// DeallocateCoins godoc
//
//	@Summary		Deallocate coins from a user
//	@Description	Removes coins from the user balance. The admin balance is not credited.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CoinMovementRequestDTO	true	"Deallocation"
//	@Success		200		{object}	dto.DeallocateResponseDTO
//	@Failure		400		{object}	dto.InsufficientBalanceDTO	"Insufficient user balance"
//	@Failure		403		{object}	utils.Response				"Admin access required"
//	@Router			/api/admin/deallocate-coins [post]
func (h *AdminHandler) DeallocateCoins(w http.ResponseWriter, r *http.Request) {
	var req dto.CoinMovementRequestDTO
	if !decode(w, r, &req) {
		return
	}

	res, err := h.balanceService.Deallocate(r.Context(), auth.UserID(r.Context()), req.UserID, *req.Amount)
	var ibe *domain.InsufficientBalanceError
	switch {
	case errors.As(err, &ibe):
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.InsufficientBalanceDTO{
			Error:          httperr.InsufficientMessage(ibe, "deallocate"),
			CurrentBalance: ibe.Balance,
		})
		return
	case err != nil:
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DeallocateResponseDTO{
		Success:           true,
		AdminBalance:      res.AdminBalance,
		UserBalance:       res.UserBalance,
		AmountDeallocated: res.Amount,
	})
}

// GetDefaultMarkup godoc
//
//	@Summary	Default markup
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.MarkupDTO
//	@Router		/api/admin/settings/default-markup [get]
func (h *AdminHandler) GetDefaultMarkup(w http.ResponseWriter, r *http.Request) {
	markup, err := h.pricingService.DefaultMarkup(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MarkupDTO{Success: true, Markup: markup})
}

// SetDefaultMarkup godoc
//
//	@Summary	Change default markup
//	@Tags		Admin
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.SetMarkupRequestDTO	true	"New markup"
//	@Success	200		{object}	dto.MarkupDTO
//	@Failure	400		{object}	utils.Response	"Invalid markup"
//	@Router		/api/admin/settings/default-markup [post]
func (h *AdminHandler) SetDefaultMarkup(w http.ResponseWriter, r *http.Request) {
	var req dto.SetMarkupRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := h.pricingService.SetDefaultMarkup(r.Context(), req.Markup); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MarkupDTO{Success: true, Markup: req.Markup, Message: "Default markup updated"})
}

func (h *AdminHandler) getRate(w http.ResponseWriter, r *http.Request, get func(context.Context) (float64, error)) {
	rate, err := get(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RateDTO{Success: true, Rate: rate})
}

func (h *AdminHandler) setRate(w http.ResponseWriter, r *http.Request, set func(context.Context, float64) error, message string) {
	var req dto.SetRateRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := set(r.Context(), req.Rate); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RateDTO{Success: true, Rate: req.Rate, Message: message})
}

// GetUsdRate godoc
//
//	@Summary	USD to PHP conversion rate
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.RateDTO
//	@Router		/api/admin/settings/usd-to-php-rate [get]
func (h *AdminHandler) GetUsdRate(w http.ResponseWriter, r *http.Request) {
	h.getRate(w, r, h.pricingService.UsdRate)
}

// SetUsdRate godoc
//
//	@Summary	Change USD to PHP conversion rate
//	@Tags		Admin
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.SetRateRequestDTO	true	"New rate"
//	@Success	200		{object}	dto.RateDTO
//	@Failure	400		{object}	utils.Response	"Invalid rate"
//	@Router		/api/admin/settings/usd-to-php-rate [post]
func (h *AdminHandler) SetUsdRate(w http.ResponseWriter, r *http.Request) {
	h.setRate(w, r, h.pricingService.SetUsdRate, "USD to PHP rate updated")
}

// GetCoinRate godoc
//
//	@Summary	Coin conversion rate
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.RateDTO
//	@Router		/api/admin/settings/coin-rate [get]
func (h *AdminHandler) GetCoinRate(w http.ResponseWriter, r *http.Request) {
	h.getRate(w, r, h.pricingService.CoinRate)
}

// SetCoinRate godoc
//
//	@Summary	Change coin conversion rate
//	@Tags		Admin
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.SetRateRequestDTO	true	"New rate"
//	@Success	200		{object}	dto.RateDTO
//	@Failure	400		{object}	utils.Response	"Invalid rate"
//	@Router		/api/admin/settings/coin-rate [post]
func (h *AdminHandler) SetCoinRate(w http.ResponseWriter, r *http.Request) {
	h.setRate(w, r, h.pricingService.SetCoinRate, "Coin rate updated")
}

// SyncProviderBalance godoc
//
//	@Summary		Sync admin balance with the provider
//	@Description	Sets the admin coin balance to the provider balance converted at the USD to PHP rate.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.SyncProviderBalanceResponseDTO
//	@Failure		502	{object}	utils.Response	"Provider error"
//	@Router			/api/admin/sync-provider-balance [get]
func (h *AdminHandler) SyncProviderBalance(w http.ResponseWriter, r *http.Request) {
	res, err := h.balanceService.SyncProviderBalance(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SyncProviderBalanceResponseDTO{
		Success:         true,
		ProviderBalance: dto.ProviderAmountDTO{Amount: res.ProviderAmount, Currency: res.ProviderCurrency},
		ConversionRate:  res.Rate,
		AdminCoins:      res.LocalAmount,
		Message:         "Admin balance synced with provider",
	})
}

// BalanceOverview godoc
//
//	@Summary	Provider balance against allocated coins
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.BalanceOverviewDTO
//	@Failure	502	{object}	utils.Response	"Provider error"
//	@Router		/api/admin/balance-overview [get]
func (h *AdminHandler) BalanceOverview(w http.ResponseWriter, r *http.Request) {
	res, err := h.balanceService.Overview(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceOverviewDTO{
		ProviderBalance:        dto.ProviderAmountDTO{Amount: res.ProviderAmount, Currency: res.ProviderCurrency},
		ProviderBalanceInCoins: res.ProviderCoins,
		TotalAllocated:         res.TotalAllocated,
		AvailableToAllocate:    res.Available,
	})
}

// Transactions godoc
//
//	@Summary	Latest coin movements of all users
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum number of rows (default 50, at most 200)"
//	@Success	200		{array}		dto.CoinTransactionDTO
//	@Failure	400		{object}	utils.Response	"Invalid limit"
//	@Router		/api/admin/transactions [get]
func (h *AdminHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	limit, ok := balance.Limit(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	txs, err := h.balanceService.AllHistory(r.Context(), limit)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, balance.Transactions(txs))
}

// ListUsers godoc
//
//	@Summary	Users with their balances
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.UsersResponseDTO
//	@Router		/api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	resp := dto.UsersResponseDTO{Users: make([]dto.UserDTO, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.UserDTO{
			ID:       u.ID,
			Email:    u.Email,
			Username: u.Username,
			Role:     u.Role,
			IsActive: u.IsActive,
			Balance:  u.Balance,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// CreateUser godoc
//
//	@Summary		Create a user
//	@Description	New users get the user role and an empty coin balance.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateUserRequestDTO	true	"New user"
//	@Success		201		{object}	dto.CreateUserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		409		{object}	utils.Response	"Username already taken"
//	@Router			/api/admin/users [post]
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequestDTO
	if !decode(w, r, &req) {
		return
	}
	user, err := h.userService.CreateUser(r.Context(), req.Email, req.Username, req.Password)
	if errors.Is(err, authservice.ErrUserExists) {
		utils.RespondWithError(w, http.StatusConflict, "Username already taken")
		return
	}
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.CreateUserResponseDTO{Success: true, UserID: user.ID})
}

// UpdateUserStatus godoc
//
//	@Summary	Enable or disable a user
//	@Tags		Admin
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"User id"
//	@Param		request	body		dto.UpdateUserStatusRequestDTO	true	"New status"
//	@Success	200		{object}	dto.MessageResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body"
//	@Failure	404		{object}	utils.Response	"User not found"
//	@Router		/api/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserStatusRequestDTO
	if !decode(w, r, &req) {
		return
	}
	err := h.userService.SetActive(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"), *req.IsActive)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Success: true, Message: "User updated"})
}

// DeleteUser godoc
//
//	@Summary	Delete a user
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	dto.MessageResponseDTO
//	@Failure	400	{object}	utils.Response	"Cannot delete your own account"
//	@Failure	404	{object}	utils.Response	"User not found"
//	@Router		/api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.DeleteUser(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Success: true, Message: "User deleted"})
}

// ListPricingRules godoc
//
//	@Summary	Per-service pricing rules
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.PricingRulesResponseDTO
//	@Router		/api/admin/pricing-rules [get]
func (h *AdminHandler) ListPricingRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.pricingService.ListRules(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	resp := dto.PricingRulesResponseDTO{Rules: make([]dto.PricingRuleDTO, 0, len(rules))}
	for _, rule := range rules {
		resp.Rules = append(resp.Rules, dto.PricingRuleDTO{
			ServiceID:   rule.ServiceID,
			Markup:      rule.Markup,
			CustomPrice: rule.CustomPrice,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func serviceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "serviceId"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid service id")
		return 0, false
	}
	return id, true
}

// SetPricingRule godoc
//
//	@Summary		Create or replace a pricing rule
//	@Description	A custom price wins over the markup when both are set.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			serviceId	path		int					true	"Provider service id"
//	@Param			request		body		dto.PricingRuleDTO	true	"Rule"
//	@Success		200			{object}	dto.PricingRuleDTO
//	@Failure		400			{object}	utils.Response	"Invalid rule"
//	@Router			/api/admin/pricing-rules/{serviceId} [put]
func (h *AdminHandler) SetPricingRule(w http.ResponseWriter, r *http.Request) {
	id, ok := serviceID(w, r)
	if !ok {
		return
	}
	var req dto.PricingRuleDTO
	if !decode(w, r, &req) {
		return
	}
	req.ServiceID = id

	rule := domain.PricingRule{ServiceID: id, Markup: req.Markup, CustomPrice: req.CustomPrice}
	if err := h.pricingService.SetRule(r.Context(), rule); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, req)
}

// DeletePricingRule godoc
//
//	@Summary	Delete a pricing rule
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		serviceId	path		int	true	"Provider service id"
//	@Success	200			{object}	dto.MessageResponseDTO
//	@Failure	404			{object}	utils.Response	"Rule not found"
//	@Router		/api/admin/pricing-rules/{serviceId} [delete]
func (h *AdminHandler) DeletePricingRule(w http.ResponseWriter, r *http.Request) {
	id, ok := serviceID(w, r)
	if !ok {
		return
	}
	if err := h.pricingService.DeleteRule(r.Context(), id); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Success: true, Message: "Pricing rule deleted"})
}

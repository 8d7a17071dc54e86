package balance

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/dto"
	"github.com/GlebRadaev/smmpanel/internal/handlers/httperr"
	"github.com/GlebRadaev/smmpanel/pkg/auth"
	"github.com/GlebRadaev/smmpanel/pkg/utils"
	"github.com/GlebRadaev/smmpanel/pkg/validate"
)

//go:generate mockgen -source=balance.go -destination=mock_balance.go -package=balance
type Service interface {
	GetBalance(ctx context.Context, userID string) (float64, error)
	AddCoins(ctx context.Context, userID string, amount float64) (float64, error)
	DeductCoins(ctx context.Context, userID string, amount float64) (bool, error)
	History(ctx context.Context, userID string, limit int) ([]domain.CoinTransaction, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the coin balance of the authenticated user. A new account starts with 1000 coins.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.balanceService.GetBalance(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Balance: balance})
}

// UpdateBalance godoc
//
//	@Summary		Add or deduct coins
//	@Description	Add coins to, or deduct coins from, the balance of the authenticated user. The action defaults to add.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BalanceUpdateRequestDTO	true	"Balance update payload"
//	@Success		200		{object}	dto.BalanceResponseDTO		"New balance"
//	@Failure		400		{object}	dto.InsufficientBalanceDTO	"Invalid amount or insufficient balance"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/balance [post]
func (h *BalanceHandler) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req dto.BalanceUpdateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Action == "deduct" {
		h.deduct(w, r, userID, *req.Amount)
		return
	}

	balance, err := h.balanceService.AddCoins(r.Context(), userID, *req.Amount)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Balance: balance})
}

func (h *BalanceHandler) deduct(w http.ResponseWriter, r *http.Request, userID string, amount float64) {
	ok, err := h.balanceService.DeductCoins(r.Context(), userID, amount)
	if err != nil {
		httperr.Respond(w, err)
		return
	}

	balance, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if !ok {
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.InsufficientBalanceDTO{
			Error:          httperr.InsufficientMessage(&domain.InsufficientBalanceError{Balance: balance, Requested: amount}, "deduct"),
			CurrentBalance: balance,
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Balance: balance})
}

// History godoc
//
//	@Summary		Coin history
//	@Description	Latest ledger rows that moved coins in or out of the authenticated user's balance.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum number of rows (default 50, at most 200)"
//	@Success		200		{array}		dto.CoinTransactionDTO
//	@Failure		400		{object}	utils.Response	"Invalid limit"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/balance/history [get]
func (h *BalanceHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, ok := Limit(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	txs, err := h.balanceService.History(r.Context(), auth.UserID(r.Context()), limit)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, Transactions(txs))
}

// Limit reads the optional limit query parameter; 0 means the default.
func Limit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, false
	}
	return limit, true
}

func Transactions(txs []domain.CoinTransaction) []dto.CoinTransactionDTO {
	out := make([]dto.CoinTransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.CoinTransactionDTO{
			ID:          tx.ID,
			FromUserID:  tx.FromUserID,
			ToUserID:    tx.ToUserID,
			Amount:      tx.Amount,
			Kind:        string(tx.Kind),
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		})
	}
	return out
}

package pricing

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/smmpanel/internal/dto"
	"github.com/GlebRadaev/smmpanel/internal/handlers/httperr"
	"github.com/GlebRadaev/smmpanel/pkg/utils"
	"github.com/GlebRadaev/smmpanel/pkg/validate"
)

//go:generate mockgen -source=pricing.go -destination=mock_pricing.go -package=pricing
type Service interface {
	CalculateOrderCost(ctx context.Context, providerRate, quantity float64, serviceID int64) (float64, error)
}

type PricingHandler struct {
	pricingService Service
}

func New(pricingService Service) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

// CalculateOrderCost godoc
//
//	@Summary		Calculate order cost
//	@Description	Price an order in coins. providerRateInUsdPerUnit is the provider rate in USD per 1000 items.
//	@Tags			Pricing
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CalculateOrderCostRequestDTO	true	"Cost request"
//	@Success		200		{object}	dto.CalculateOrderCostResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/calculate-order-cost [post]
func (h *PricingHandler) CalculateOrderCost(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateOrderCostRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	cost, err := h.pricingService.CalculateOrderCost(r.Context(), *req.ProviderRateInUsdPerUnit, *req.Quantity, *req.ServiceID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CalculateOrderCostResponseDTO{Cost: cost})
}

// Package httperr maps service errors to HTTP responses.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/provider"
	"github.com/GlebRadaev/smmpanel/pkg/money"
	"github.com/GlebRadaev/smmpanel/pkg/utils"
)

// InsufficientMessage renders the balance shortfall the way the panel shows it.
func InsufficientMessage(e *domain.InsufficientBalanceError, verb string) string {
	return fmt.Sprintf("Insufficient balance. You have %s but tried to %s %s",
		money.Format(e.Balance), verb, money.Format(e.Requested))
}

func trimSentinel(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// Status picks the response code and client-facing message for err.
func Status(err error) (int, string) {
	var (
		ibe *domain.InsufficientBalanceError
		pe  *domain.ProviderError
	)
	switch {
	case errors.As(err, &ibe):
		return http.StatusBadRequest, InsufficientMessage(ibe, "spend")
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, "Insufficient balance"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, trimSentinel(err, domain.ErrInvalidInput)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrRefundFailed):
		return http.StatusInternalServerError, domain.ErrRefundFailed.Error()
	case errors.Is(err, provider.ErrUnavailable):
		return http.StatusServiceUnavailable, "Provider is temporarily unavailable"
	case errors.As(err, &pe):
		// an error body is the provider's answer about the request itself
		if pe.StatusCode == http.StatusOK {
			return http.StatusBadRequest, pe.Message
		}
		return http.StatusBadGateway, pe.Message
	case errors.Is(err, domain.ErrInvalidConfiguration):
		return http.StatusInternalServerError, "Pricing is misconfigured"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// Respond writes err as an error response, logging server-side failures.
func Respond(w http.ResponseWriter, err error) {
	status, message := Status(err)
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	utils.RespondWithError(w, status, message)
}

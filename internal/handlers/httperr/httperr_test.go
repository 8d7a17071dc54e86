package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/provider"
	"github.com/GlebRadaev/smmpanel/pkg/utils"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "insufficient balance with amounts",
			err:         &domain.InsufficientBalanceError{Balance: 10, Requested: 93.75},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Insufficient balance. You have ₱10.00 but tried to spend ₱93.75",
		},
		{
			name:        "bare insufficient balance",
			err:         domain.ErrInsufficientBalance,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Insufficient balance",
		},
		{
			name:        "invalid input",
			err:         domain.InvalidInput("quantity must be between %d and %d, got %d", 50, 100, 10),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "quantity must be between 50 and 100, got 10",
		},
		{
			name:        "not found",
			err:         fmt.Errorf("%w: order 7", domain.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Not found",
		},
		{
			name:        "provider rejection",
			err:         &domain.ProviderError{Message: "Quantity less than minimal 50", StatusCode: http.StatusOK},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Quantity less than minimal 50",
		},
		{
			name:        "provider outage",
			err:         &domain.ProviderError{Message: "provider returned status 503", StatusCode: http.StatusServiceUnavailable},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "provider returned status 503",
		},
		{
			name:        "breaker open",
			err:         fmt.Errorf("%w: circuit breaker is open", provider.ErrUnavailable),
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "Provider is temporarily unavailable",
		},
		{
			name:        "refund failed",
			err:         fmt.Errorf("%w: %w", domain.ErrRefundFailed, domain.Storage(errors.New("db down"))),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "refund failed, please contact support",
		},
		{
			name:        "misconfigured markup",
			err:         domain.InvalidConfiguration("markup for service 1 is 0"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Pricing is misconfigured",
		},
		{
			name:        "storage",
			err:         domain.Storage(errors.New("db down")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := Status(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestRespond(t *testing.T) {
	rr := httptest.NewRecorder()
	Respond(rr, domain.InvalidInput("no orders to cancel"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp utils.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "no orders to cancel", resp.Message)
}

package balance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/dto"
	"github.com/GlebRadaev/smmpanel/pkg/auth"
	"github.com/GlebRadaev/smmpanel/pkg/utils"
)

const userID = "0b7c6c39-3b53-4e0f-a6f4-6a9e4a0b2a11"

func NewMock(t *testing.T) (*BalanceHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func withUser(req *http.Request) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, userID))
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  dto.BalanceResponseDTO
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), userID).Return(1000.0, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.BalanceResponseDTO{Balance: 1000},
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), userID).Return(0.0, domain.Storage(errors.New("error")))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withUser(httptest.NewRequest("GET", "/api/balance", nil))
			rr := httptest.NewRecorder()
			handler.GetBalance(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
				return
			}
			var resp dto.BalanceResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}

func TestUpdateBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  *dto.BalanceResponseDTO
	}{
		{
			name: "Add by default",
			body: `{"amount":100}`,
			prepareMock: func() {
				service.EXPECT().AddCoins(gomock.Any(), userID, 100.0).Return(1100.0, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.BalanceResponseDTO{Balance: 1100},
		},
		{
			name: "Deduct",
			body: `{"amount":250,"action":"deduct"}`,
			prepareMock: func() {
				service.EXPECT().DeductCoins(gomock.Any(), userID, 250.0).Return(true, nil)
				service.EXPECT().GetBalance(gomock.Any(), userID).Return(750.0, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.BalanceResponseDTO{Balance: 750},
		},
		{
			name: "Deduct more than balance",
			body: `{"amount":1500,"action":"deduct"}`,
			prepareMock: func() {
				service.EXPECT().DeductCoins(gomock.Any(), userID, 1500.0).Return(false, nil)
				service.EXPECT().GetBalance(gomock.Any(), userID).Return(1000.0, nil)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Insufficient balance. You have ₱1000.00 but tried to deduct ₱1500.00",
		},
		{
			name:          "Invalid request body",
			body:          `{"amount":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing amount",
			body:          `{"action":"add"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "amount is required",
		},
		{
			name:          "Unknown action",
			body:          `{"amount":10,"action":"steal"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "action must be one of: add deduct",
		},
		{
			name: "Non-positive amount",
			body: `{"amount":-5}`,
			prepareMock: func() {
				service.EXPECT().AddCoins(gomock.Any(), userID, -5.0).Return(0.0, domain.InvalidInput("amount must be a positive number, got -5"))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "amount must be a positive number, got -5",
		},
		{
			name: "Storage failure on deduct",
			body: `{"amount":5,"action":"deduct"}`,
			prepareMock: func() {
				service.EXPECT().DeductCoins(gomock.Any(), userID, 5.0).Return(false, domain.Storage(errors.New("db down")))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withUser(httptest.NewRequest("POST", "/api/balance", bytes.NewReader([]byte(tt.body))))
			rr := httptest.NewRecorder()
			handler.UpdateBalance(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != nil {
				var resp dto.BalanceResponseDTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, *tt.expectedBody, resp)
				return
			}
			var resp utils.Response
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedError, resp.Message)
		})
	}
}

func TestHistoryHandler(t *testing.T) {
	handler, service := NewMock(t)
	from := "00000000-0000-0000-0000-000000000001"
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		query        string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name:  "Default limit",
			query: "",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), userID, 0).Return([]domain.CoinTransaction{
					{ID: 2, FromUserID: &from, ToUserID: ptr(userID), Amount: 300, Kind: domain.TxTransfer, Description: "allocation from admin", CreatedAt: created},
					{ID: 1, ToUserID: ptr(userID), Amount: 1000, Kind: domain.TxAdd, CreatedAt: created},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name:  "Explicit limit",
			query: "?limit=10",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), userID, 10).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  0,
		},
		{
			name:         "Bad limit",
			query:        "?limit=ten",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "Storage failure",
			query: "",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), userID, 0).Return(nil, domain.Storage(errors.New("db down")))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withUser(httptest.NewRequest("GET", "/api/balance/history"+tt.query, nil))
			rr := httptest.NewRecorder()
			handler.History(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode != http.StatusOK {
				return
			}
			var resp []dto.CoinTransactionDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Len(t, resp, tt.expectedLen)
			if tt.expectedLen > 0 {
				assert.Equal(t, "transfer", resp[0].Kind)
				assert.Equal(t, from, *resp[0].FromUserID)
			}
		})
	}
}

func TestLimit(t *testing.T) {
	tests := []struct {
		query string
		limit int
		ok    bool
	}{
		{query: "", limit: 0, ok: true},
		{query: "limit=25", limit: 25, ok: true},
		{query: "limit=0", ok: false},
		{query: "limit=-3", ok: false},
		{query: "limit=abc", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/?"+tt.query, nil)
			limit, ok := Limit(req)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func ptr(s string) *string { return &s }

package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/pkg/clients"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithRetryInterval(0), WithBreaker(NewBreaker(t.Name()))}, opts...)
	return NewClient(server.URL, "test-key", clients.NewHTTPClient(), opts...)
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestClient_Services(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-key", r.PostForm.Get("key"))
		assert.Equal(t, "services", r.PostForm.Get("action"))
		respond(w, http.StatusOK, `[
			{"service": 1, "name": "Followers", "type": "Default", "category": "Instagram", "rate": "0.90", "min": "50", "max": "10000", "refill": true, "cancel": false},
			{"service": "2", "name": "Comments", "type": "Custom Comments", "category": "Instagram", "rate": 8, "min": 10, "max": 1500, "refill": false, "cancel": true}
		]`)
	})

	services, err := client.Services(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CatalogService{
		{ServiceID: 1, Name: "Followers", Type: "Default", Category: "Instagram", Rate: 0.9, Min: 50, Max: 10000, Refill: true},
		{ServiceID: 2, Name: "Comments", Type: "Custom Comments", Category: "Instagram", Rate: 8, Min: 10, Max: 1500, Cancel: true},
	}, services)
}

func TestClient_AddOrder(t *testing.T) {
	tests := []struct {
		name      string
		params    domain.OrderParams
		body      string
		wantForm  map[string]string
		wantEmpty []string
		wantID    int64
		wantErr   string
	}{
		{
			name:      "default order",
			params:    domain.OrderParams{ServiceID: 1, Link: "https://example.com/p", Quantity: 100},
			body:      `{"order": 23501}`,
			wantForm:  map[string]string{"action": "add", "service": "1", "link": "https://example.com/p", "quantity": "100"},
			wantEmpty: []string{"runs", "interval", "comments"},
			wantID:    23501,
		},
		{
			name:     "drip feed",
			params:   domain.OrderParams{ServiceID: 1, Link: "l", Quantity: 100, Runs: 2, Interval: 5},
			body:     `{"order": "77"}`,
			wantForm: map[string]string{"runs": "2", "interval": "5"},
			wantID:   77,
		},
		{
			name:      "custom comments",
			params:    domain.OrderParams{ServiceID: 2, Link: "l", Comments: "nice\nwow"},
			body:      `{"order": 9}`,
			wantForm:  map[string]string{"comments": "nice\nwow"},
			wantEmpty: []string{"quantity"},
			wantID:    9,
		},
		{
			name:    "provider error is verbatim",
			params:  domain.OrderParams{ServiceID: 1, Link: "l", Quantity: 1},
			body:    `{"error": "Quantity less than minimal 50"}`,
			wantErr: "Quantity less than minimal 50",
		},
		{
			name:    "missing order id",
			params:  domain.OrderParams{ServiceID: 1, Link: "l", Quantity: 1},
			body:    `{}`,
			wantErr: "provider did not return an order id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				for k, v := range tt.wantForm {
					assert.Equal(t, v, r.PostForm.Get(k), k)
				}
				for _, k := range tt.wantEmpty {
					assert.Empty(t, r.PostForm.Get(k), k)
				}
				respond(w, http.StatusOK, tt.body)
			})

			id, err := client.AddOrder(context.Background(), tt.params)
			if tt.wantErr != "" {
				var pe *domain.ProviderError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, tt.wantErr, pe.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestClient_AddOrderIsNotRetriedOnServerError(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		respond(w, http.StatusInternalServerError, `oops`)
	})

	_, err := client.AddOrder(context.Background(), domain.OrderParams{ServiceID: 1, Link: "l", Quantity: 1})

	var pe *domain.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusInternalServerError, pe.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Status(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "status", r.PostForm.Get("action"))
		assert.Equal(t, "42", r.PostForm.Get("order"))
		respond(w, http.StatusOK, `{"charge": "0.27819", "start_count": 3572, "status": "Partial", "remains": "157", "currency": "USD"}`)
	})

	status, err := client.Status(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, &domain.OrderStatus{
		OrderID:    42,
		Status:     domain.StatusPartial,
		Charge:     "0.27819",
		StartCount: "3572",
		Remains:    "157",
		Currency:   "USD",
	}, status)
}

func TestClient_MultiStatus(t *testing.T) {
	var batches atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		ids := strings.Split(r.PostForm.Get("orders"), ",")
		assert.LessOrEqual(t, len(ids), MaxBatch)
		batches.Add(1)

		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			switch id {
			case "2":
				parts = append(parts, `"2": {"error": "Incorrect order ID"}`)
			case "3":
			default:
				parts = append(parts, fmt.Sprintf(`%q: {"status": "In progress", "charge": "0.1", "remains": "0", "currency": "USD"}`, id))
			}
		}
		respond(w, http.StatusOK, "{"+strings.Join(parts, ",")+"}")
	})

	ids := make([]int64, 150)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	statuses, err := client.MultiStatus(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, statuses, 150)
	assert.Equal(t, int32(2), batches.Load())

	assert.Equal(t, int64(1), statuses[0].OrderID)
	assert.Equal(t, domain.StatusInProgress, statuses[0].Status)
	assert.Equal(t, "Incorrect order ID", statuses[1].Error)
	assert.Equal(t, "missing from provider response", statuses[2].Error)
	assert.Equal(t, int64(150), statuses[149].OrderID)
	assert.Empty(t, statuses[149].Error)
}

func TestClient_Refill(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantID  int64
		wantErr string
	}{
		{name: "numeric id", body: `{"refill": 1}`, wantID: 1},
		{name: "string id", body: `{"refill": "12"}`, wantID: 12},
		{name: "nested error", body: `{"refill": {"error": "Refill is disabled"}}`, wantErr: "Refill is disabled"},
		{name: "top level error", body: `{"error": "Incorrect order ID"}`, wantErr: "Incorrect order ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "refill", r.PostForm.Get("action"))
				respond(w, http.StatusOK, tt.body)
			})

			id, err := client.Refill(context.Background(), 5)
			if tt.wantErr != "" {
				var pe *domain.ProviderError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, tt.wantErr, pe.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestClient_Cancel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "cancel", r.PostForm.Get("action"))
		assert.Equal(t, "9,2", r.PostForm.Get("orders"))
		respond(w, http.StatusOK, `[{"order": 9, "cancel": {"error": "Incorrect order ID"}}, {"order": 2, "cancel": 1}]`)
	})

	results, err := client.Cancel(context.Background(), []int64{9, 2})
	require.NoError(t, err)
	assert.Equal(t, []domain.CancelResult{
		{OrderID: 9, Error: "Incorrect order ID"},
		{OrderID: 2},
	}, results)
}

func TestClient_Balance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, `{"balance": "100.84292", "currency": "USD"}`)
	})

	balance, err := client.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.ProviderBalance{Amount: 100.84292, Currency: "USD"}, balance)
}

func TestClient_RetriesRateLimit(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			respond(w, http.StatusTooManyRequests, `{}`)
			return
		}
		respond(w, http.StatusOK, `{"order": 1}`)
	})

	id, err := client.AddOrder(context.Background(), domain.OrderParams{ServiceID: 1, Link: "l", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		respond(w, http.StatusServiceUnavailable, `down`)
	})

	_, err := client.Balance(context.Background())

	var pe *domain.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusServiceUnavailable, pe.StatusCode)
	assert.Equal(t, int32(maxRetries), hits.Load())
}

func TestClient_BadResponses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "non json", status: http.StatusOK, body: `<html>maintenance</html>`, wantStatus: http.StatusBadGateway, wantMsg: "provider returned an invalid response"},
		{name: "wrong shape", status: http.StatusOK, body: `[1, 2]`, wantStatus: http.StatusBadGateway, wantMsg: "provider returned an invalid response"},
		{name: "client error with message", status: http.StatusBadRequest, body: `{"error": "Invalid API key"}`, wantStatus: http.StatusBadRequest, wantMsg: "Invalid API key"},
		{name: "client error without body", status: http.StatusForbidden, body: ``, wantStatus: http.StatusForbidden, wantMsg: "provider returned status 403"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				respond(w, tt.status, tt.body)
			})

			_, err := client.Balance(context.Background())

			var pe *domain.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantStatus, pe.StatusCode)
			assert.Equal(t, tt.wantMsg, pe.Message)
		})
	}
}

func TestClient_BreakerOpens(t *testing.T) {
	var hits atomic.Int32
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name: "trip-fast",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		respond(w, http.StatusBadGateway, `bad gateway`)
	}, WithBreaker(breaker))

	_, err := client.Balance(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))

	_, err = client.Balance(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(maxRetries), hits.Load())
}

func TestNewBreaker_TripsAfterFiveFailures(t *testing.T) {
	breaker := NewBreaker(t.Name())
	outage := func() ([]byte, error) {
		return nil, &domain.ProviderError{Message: "bad gateway", StatusCode: http.StatusBadGateway}
	}

	for i := 0; i < 4; i++ {
		_, _ = breaker.Execute(outage)
	}
	assert.Equal(t, gobreaker.StateClosed, breaker.State())

	_, _ = breaker.Execute(outage)
	assert.Equal(t, gobreaker.StateOpen, breaker.State())
}

func TestClient_ProviderRejectionsDoNotTripBreaker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, `{"error": "Not enough funds on balance"}`)
	})

	for i := 0; i < 10; i++ {
		_, err := client.AddOrder(context.Background(), domain.OrderParams{ServiceID: 1, Link: "l", Quantity: 1})
		var pe *domain.ProviderError
		require.ErrorAs(t, err, &pe)
	}
	assert.Equal(t, gobreaker.StateClosed, client.breaker.State())
}

func TestChunk(t *testing.T) {
	assert.Nil(t, chunk(nil, 100))
	assert.Equal(t, [][]int64{{1, 2}, {3}}, chunk([]int64{1, 2, 3}, 2))
	assert.Equal(t, [][]int64{{1, 2}}, chunk([]int64{1, 2}, 2))
}

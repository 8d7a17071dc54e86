package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/pkg/clients"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1

	// MaxBatch is the largest id list the provider accepts for multi-status and cancel.
	MaxBatch = 100
)

var ErrUnavailable = errors.New("provider unavailable")

type Option func(*Client)

// WithRetryInterval sets the base wait between attempts.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		c.retryInterval = d
	}
}

func WithBreaker(cb *gobreaker.CircuitBreaker[[]byte]) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// Client talks to an SMM panel v2 API: every call is a form POST of key + action.
type Client struct {
	url           string
	key           string
	client        clients.HTTPClientI
	breaker       *gobreaker.CircuitBreaker[[]byte]
	retryInterval time.Duration
}

func NewClient(apiURL, key string, client clients.HTTPClientI, opts ...Option) *Client {
	c := &Client{
		url:           apiURL,
		key:           key,
		client:        client,
		retryInterval: retryInterval,
		breaker:       NewBreaker("smm-provider"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewBreaker trips after five consecutive failures. Provider-side rejections
// (4xx, error bodies) are answers, not outages, and do not count.
func NewBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			var pe *domain.ProviderError
			if errors.As(err, &pe) {
				return pe.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

func (c *Client) Services(ctx context.Context) ([]domain.CatalogService, error) {
	body, err := c.call(ctx, "services", nil, maxRetries)
	if err != nil {
		return nil, err
	}

	var resp []serviceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed("services", err)
	}

	services := make([]domain.CatalogService, 0, len(resp))
	for _, s := range resp {
		services = append(services, s.toDomain())
	}
	return services, nil
}

// AddOrder places an order and returns the provider's order id.
// Comments replace quantity for custom-comment services.
func (c *Client) AddOrder(ctx context.Context, params domain.OrderParams) (int64, error) {
	form := url.Values{}
	form.Set("service", strconv.FormatInt(params.ServiceID, 10))
	form.Set("link", params.Link)
	if params.Comments != "" {
		form.Set("comments", params.Comments)
	} else {
		form.Set("quantity", strconv.FormatInt(params.Quantity, 10))
	}
	if params.Runs > 0 {
		form.Set("runs", strconv.FormatInt(params.Runs, 10))
	}
	if params.Interval > 0 {
		form.Set("interval", strconv.FormatInt(params.Interval, 10))
	}

	// Placing is not idempotent, so only a rate-limit answer is retried.
	body, err := c.call(ctx, "add", form, 1)
	if err != nil {
		return 0, err
	}

	var resp addResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, malformed("add", err)
	}
	if resp.Order <= 0 {
		return 0, &domain.ProviderError{Message: "provider did not return an order id", StatusCode: http.StatusOK}
	}
	return int64(resp.Order), nil
}

func (c *Client) Status(ctx context.Context, orderID int64) (*domain.OrderStatus, error) {
	form := url.Values{}
	form.Set("order", strconv.FormatInt(orderID, 10))

	body, err := c.call(ctx, "status", form, maxRetries)
	if err != nil {
		return nil, err
	}

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed("status", err)
	}
	status := resp.toDomain(orderID)
	return &status, nil
}

// MultiStatus fetches statuses in batches of MaxBatch. The result follows the
// order of ids; ids the provider rejected or omitted carry Error.
func (c *Client) MultiStatus(ctx context.Context, ids []int64) ([]domain.OrderStatus, error) {
	statuses := make([]domain.OrderStatus, 0, len(ids))
	for _, batch := range chunk(ids, MaxBatch) {
		form := url.Values{}
		form.Set("orders", joinIDs(batch))

		body, err := c.call(ctx, "status", form, maxRetries)
		if err != nil {
			return nil, err
		}

		var resp map[string]statusResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, malformed("status", err)
		}

		for _, id := range batch {
			st, ok := resp[strconv.FormatInt(id, 10)]
			if !ok {
				statuses = append(statuses, domain.OrderStatus{OrderID: id, Error: "missing from provider response"})
				continue
			}
			statuses = append(statuses, st.toDomain(id))
		}
	}
	return statuses, nil
}

// Refill asks the provider to top up a dropped order and returns the refill id.
func (c *Client) Refill(ctx context.Context, orderID int64) (int64, error) {
	form := url.Values{}
	form.Set("order", strconv.FormatInt(orderID, 10))

	body, err := c.call(ctx, "refill", form, 1)
	if err != nil {
		return 0, err
	}

	var resp refillResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, malformed("refill", err)
	}
	if msg, ok := errorMessage(resp.Refill); ok {
		return 0, &domain.ProviderError{Message: msg, StatusCode: http.StatusOK}
	}

	var id flexInt
	if err := json.Unmarshal(resp.Refill, &id); err != nil {
		return 0, malformed("refill", err)
	}
	return int64(id), nil
}

// Cancel requests cancellation; the provider answers per order.
func (c *Client) Cancel(ctx context.Context, ids []int64) ([]domain.CancelResult, error) {
	results := make([]domain.CancelResult, 0, len(ids))
	for _, batch := range chunk(ids, MaxBatch) {
		form := url.Values{}
		form.Set("orders", joinIDs(batch))

		body, err := c.call(ctx, "cancel", form, 1)
		if err != nil {
			return nil, err
		}

		var resp []cancelResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, malformed("cancel", err)
		}
		for _, r := range resp {
			result := domain.CancelResult{OrderID: int64(r.Order)}
			if msg, ok := errorMessage(r.Cancel); ok {
				result.Error = msg
			}
			results = append(results, result)
		}
	}
	return results, nil
}

func (c *Client) Balance(ctx context.Context) (*domain.ProviderBalance, error) {
	body, err := c.call(ctx, "balance", nil, maxRetries)
	if err != nil {
		return nil, err
	}

	var resp balanceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed("balance", err)
	}
	return &domain.ProviderBalance{Amount: float64(resp.Balance), Currency: resp.Currency}, nil
}

func (c *Client) call(ctx context.Context, action string, params url.Values, attempts int) ([]byte, error) {
	form := url.Values{}
	for k, v := range params {
		form[k] = v
	}
	form.Set("key", c.key)
	form.Set("action", action)

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.post(ctx, action, form, attempts)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err != nil {
		return nil, err
	}

	if msg, ok := errorMessage(body); ok {
		zap.L().Warn("Provider rejected request", zap.String("action", action), zap.String("error", msg))
		return nil, &domain.ProviderError{Message: msg, StatusCode: http.StatusOK}
	}
	return body, nil
}

// post retries transport failures and 5xx up to attempts times; 429 is always
// retried because a rate-limited request was never processed.
func (c *Client) post(ctx context.Context, action string, form url.Values, attempts int) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		statusCode, respBody, respHeaders, err := c.client.PostForm(ctx, c.url, form)
		wait := c.retryInterval * time.Duration(attempt)

		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("provider %s: %w", action, err)
		case statusCode == http.StatusTooManyRequests:
			lastErr = &domain.ProviderError{Message: "rate limit exceeded", StatusCode: statusCode}
			wait = c.retryAfter(respHeaders, attempt)
			zap.L().Warn("Rate limit detected, retrying",
				zap.String("action", action),
				zap.Int("attempt", attempt),
				zap.Duration("retryAfter", wait))
			if attempt < maxRetries {
				if err := sleep(ctx, wait); err != nil {
					return nil, err
				}
			}
			continue
		case statusCode >= http.StatusInternalServerError:
			lastErr = &domain.ProviderError{Message: fmt.Sprintf("provider returned status %d", statusCode), StatusCode: statusCode}
		case statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices:
			if msg, ok := errorMessage(respBody); ok {
				return nil, &domain.ProviderError{Message: msg, StatusCode: statusCode}
			}
			return nil, &domain.ProviderError{Message: fmt.Sprintf("provider returned status %d", statusCode), StatusCode: statusCode}
		case !json.Valid(respBody):
			zap.L().Error("Provider returned non-JSON body", zap.String("action", action), zap.Int("status", statusCode))
			return nil, &domain.ProviderError{Message: "provider returned an invalid response", StatusCode: http.StatusBadGateway}
		default:
			return respBody, nil
		}

		if attempt >= attempts {
			break
		}
		zap.L().Warn("Provider request failed, retrying",
			zap.String("action", action),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))
		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) retryAfter(headers http.Header, attempt int) time.Duration {
	retryAfter := c.retryInterval * time.Duration(attempt)
	if v := headers.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	return retryAfter
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func malformed(action string, err error) error {
	zap.L().Error("Failed to decode provider response", zap.String("action", action), zap.Error(err))
	return &domain.ProviderError{Message: "provider returned an invalid response", StatusCode: http.StatusBadGateway}
}

func chunk(ids []int64, size int) [][]int64 {
	var batches [][]int64
	for size < len(ids) {
		ids, batches = ids[size:], append(batches, ids[:size])
	}
	if len(ids) > 0 {
		batches = append(batches, ids)
	}
	return batches
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

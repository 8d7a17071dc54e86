package clients

//go:generate mockgen -source=http_client.go -destination=mock_http_client.go -package=clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "smmpanel/1.0"
	maxBodySize      = 8 << 20
)

var ErrBodyTooLarge = errors.New("response body too large")

type HTTPClientI interface {
	PostForm(ctx context.Context, endpoint string, form url.Values) (statusCode int, respBody []byte, respHeaders http.Header, err error)
}

type Option func(*HTTPClient)

func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.http.Timeout = d }
}

func WithUserAgent(ua string) Option {
	return func(h *HTTPClient) { h.userAgent = ua }
}

// HTTPClient posts url-encoded forms and returns the whole response body.
type HTTPClient struct {
	http      *http.Client
	userAgent string
	client    HTTPClientI
}

func NewHTTPClient(opts ...Option) *HTTPClient {
	h := &HTTPClient{
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HTTPClient) PostForm(ctx context.Context, endpoint string, form url.Values) (int, []byte, http.Header, error) {
	if h.client != nil {
		return h.client.PostForm(ctx, endpoint, form)
	}
	return h.postForm(ctx, endpoint, form)
}

func (h *HTTPClient) postForm(ctx context.Context, endpoint string, form url.Values) (int, []byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.http.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	// The body is fully read by then, so a close failure only gets logged.
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.L().Warn("failed to close response body", zap.String("endpoint", endpoint), zap.Error(err))
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return 0, nil, nil, err
	}
	if len(respBody) > maxBodySize {
		return resp.StatusCode, nil, resp.Header, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, maxBodySize)
	}
	return resp.StatusCode, respBody, resp.Header, nil
}

// SetClient routes every request through c; used by tests.
func (h *HTTPClient) SetClient(c HTTPClientI) {
	h.client = c
}

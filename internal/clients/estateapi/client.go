// Package estateapi is the HTTP client of the external real-estate API.
package estateapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"listing_editor/internal/lib/logger/sl"
)

const maxResponseSize = 4 << 20

type ctxKey int

const (
	tokenKey ctxKey = iota
	traceIDKey
)

// WithToken attaches the caller's bearer token to outgoing requests.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

type Client struct {
	log        *slog.Logger
	baseURL    string
	httpClient *http.Client
}

func New(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:        log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// call выполняет запрос и возвращает тело успешного ответа.
// Не-2xx ответы превращаются в *APIError с fallback сообщением.
func (c *Client) call(ctx context.Context, op, method, path string, body io.Reader, contentType, fallback string) ([]byte, error) {
	log := c.log.With(
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
	)

	log.Debug("sending request to estate api")

	resp, err := c.doRequest(ctx, method, path, body, contentType)
	if err != nil {
		log.Error("failed to perform request to estate api", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		log.Error("failed to read response body", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, data, fallback)
		log.Warn("estate api returned error",
			slog.Int("status_code", resp.StatusCode),
			slog.String("message", apiErr.UserMessage()),
		)
		return nil, fmt.Errorf("%s: %w", op, apiErr)
	}

	return data, nil
}

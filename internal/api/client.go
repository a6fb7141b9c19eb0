package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"blushmart-web/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultTimeout = 15 * time.Second

// Client is the shared HTTP client for the upstream storefront backend.
// All domain gateways go through it: it owns the base URL, the request
// throttle and the Authorization header convention.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a Client for baseURL. rps <= 0 disables throttling.
func NewClient(baseURL string, rps float64) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}
	return c
}

// Transport swaps the underlying RoundTripper. Used by tests.
func (c *Client) Transport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

func (c *Client) GetJSON(ctx context.Context, path, token string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) PostJSON(ctx context.Context, path, token string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, token, body, out)
}

func (c *Client) PutJSON(ctx context.Context, path, token string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, token, body, out)
}

func (c *Client) PatchJSON(ctx context.Context, path, token string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, token, body, out)
}

func (c *Client) DeleteJSON(ctx context.Context, path, token string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, out)
}

// PostMultipart sends an already-encoded multipart body, e.g. product
// uploads carrying image files.
func (c *Client) PostMultipart(ctx context.Context, path, token, contentType string, body *bytes.Buffer, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return c.send(ctx, req, token, out)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(ctx, req, token, out)
}

func (c *Client) send(ctx context.Context, req *http.Request, token string, out any) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	log := logger.FromCtx(ctx).With(
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("backend request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, respBody)
		log.Warn("backend returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("backend_message", apiErr.Message),
			zap.Duration("duration", time.Since(start)),
		)
		return apiErr
	}

	log.Debug("backend request ok",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

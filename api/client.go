package api

import (
	"bytes"
	"clementus360/taskai/config"
	"clementus360/taskai/middleware"
	"clementus360/taskai/session"
	"clementus360/taskai/types"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the single choke point for calls to the task service.
type Client struct {
	baseURL string
	http    *http.Client
	monitor *session.Monitor
}

type Option func(*clientOptions)

type clientOptions struct {
	timeout   time.Duration
	transport http.RoundTripper
}

func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithTransport replaces the innermost transport, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

func New(baseURL string, monitor *session.Monitor, opts ...Option) *Client {
	o := clientOptions{
		timeout:   config.DefaultHTTPTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(&o)
	}

	chain := middleware.Chain(
		middleware.JSONMiddleware(),
		middleware.AuthMiddleware(monitor.Store()),
		middleware.LoggingMiddleware(),
	)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   o.timeout,
			Transport: chain(o.transport),
		},
		monitor: monitor,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

type SendOption func(*sendOptions)

type sendOptions struct {
	skipAuth bool
}

// SkipAuth sends the request without a credential. Only login and
// registration use it.
func SkipAuth() SendOption {
	return func(o *sendOptions) { o.skipAuth = true }
}

// Send performs one request. body, when non-nil, is JSON encoded; a 2xx
// response body is decoded into out when out is non-nil and the body is
// not empty.
func (c *Client) Send(ctx context.Context, method, path string, body, out any, opts ...SendOption) error {
	var so sendOptions
	for _, opt := range opts {
		opt(&so)
	}
	if so.skipAuth {
		ctx = middleware.WithSkipAuth(ctx)
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized && !so.skipAuth {
		// clear and navigate before the caller sees the error
		c.monitor.Expire()
		return ErrUnauthenticated
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody types.ErrorResponse
		_ = json.Unmarshal(payload, &errBody)
		config.Logger.Warnf("%s %s returned status %d", method, path, resp.StatusCode)
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Detail: errBody.Message()}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

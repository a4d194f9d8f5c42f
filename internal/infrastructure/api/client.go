// Package api implements the HTTP surface toward the remote account
// backend: a thin client wrapper plus the gateway implementations of the
// core ports.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/benben6515/metc/internal/core/ports"
)

// The backend identifies its callers by a fixed header; the value is part
// of the hosted API's contract.
const (
	identHeader = "interviewerName"
	identValue  = "Benben"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// StatusError is returned for any response outside the 2xx range. Message
// carries the server-supplied error text when the body had one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL string
	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Tokens supplies the bearer token attached to outgoing requests and
	// is cleared when the backend answers 401.
	Tokens ports.TokenStore
	// OnUnauthorized, when set, runs after a 401 response has cleared the
	// stored token, regardless of which call triggered it.
	OnUnauthorized func()
	Logger         zerolog.Logger
}

// Client wraps one remote API base URL with default headers, bearer token
// injection, and the global unauthorized-response side effect.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         ports.TokenStore
	onUnauthorized func()
	log            zerolog.Logger
}

func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:        opts.BaseURL,
		http:           &http.Client{Timeout: timeout},
		tokens:         opts.Tokens,
		onUnauthorized: opts.OnUnauthorized,
		log:            opts.Logger,
	}
}

func (c *Client) Get(ctx context.Context, route, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, route, path, nil)
}

func (c *Client) Post(ctx context.Context, route, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, route, path, body)
}

func (c *Client) Patch(ctx context.Context, route, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, route, path, body)
}

func (c *Client) Delete(ctx context.Context, route, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, route, path, nil)
}

// do performs one request/response round trip. route is the path template
// used for metric labels; path is the concrete request path.
func (c *Client) do(ctx context.Context, method, route, path string, body any) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(identHeader, identValue)

	if c.tokens != nil {
		if token, err := c.tokens.Load(); err != nil {
			c.log.Warn().Err(err).Msg("reading stored token failed")
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("api request")

	start := time.Now()
	resp, err := c.http.Do(req)
	RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	if err != nil {
		RequestsTotal.WithLabelValues(method, route, "error").Inc()
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("api network error")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		RequestsTotal.WithLabelValues(method, route, "error").Inc()
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	RequestsTotal.WithLabelValues(method, route, strconv.Itoa(resp.StatusCode)).Inc()
	c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("api response")

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverMessage(raw)
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("path", path).
			Str("message", msg).
			Msg("api error response")
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	return raw, nil
}

// handleUnauthorized clears the stored token and notifies the application
// so it can force navigation to the login view. This runs for every 401,
// independent of which call produced it.
func (c *Client) handleUnauthorized(path string) {
	UnauthorizedTotal.Inc()
	c.log.Warn().Str("path", path).Msg("unauthorized response, clearing stored token")
	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			c.log.Warn().Err(err).Msg("clearing stored token failed")
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// serverMessage extracts the error text a backend response carries in its
// body, preferring the "message" field over "error".
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

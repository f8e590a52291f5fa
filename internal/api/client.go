// Package api is the HTTP adapter for the wellness backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/logger"
)

var (
	// ErrNetwork is returned when a request got no response
	ErrNetwork = apperrors.ErrNetwork
	// ErrUnauthorized is returned for 401 responses and ends the session
	ErrUnauthorized = apperrors.ErrUnauthorized
	// ErrForbidden is returned for 403 responses; the session stays valid
	ErrForbidden = errors.New("permission denied")
	// ErrNotFound is returned for 404 responses
	ErrNotFound = errors.New("resource not found")
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// APIError is a non-2xx response that is not otherwise classified
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Envelope is the JSON wrapper around every backend response
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// TokenSource returns the current access token, or "" when logged out
type TokenSource func() string

// Client talks to the backend REST API
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the underlying http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTokenSource sets where the bearer credential comes from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithUnauthorizedHook registers fn to run whenever the backend rejects the
// credential. The session uses it to force a logout.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New creates a client for the backend at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: constants.DefaultTimeoutSeconds * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IsPublic reports whether path is sent without a bearer credential
func IsPublic(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for _, p := range constants.PublicEndpoints {
		if path == p {
			return true
		}
	}
	return false
}

// Do sends a request and decodes the envelope's data into out (which may be
// nil). Failures are mapped onto ErrNetwork, ErrUnauthorized, ErrNotFound or
// *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !IsPublic(path) && c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)
	if err != nil {
		return fmt.Errorf("%w: reading response of %s %s: %v", ErrNetwork, method, path, err)
	}

	var env Envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil && resp.StatusCode < 300 {
			return fmt.Errorf("failed to decode response of %s %s: %w", method, path, jsonErr)
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%w: %s %s", ErrUnauthorized, method, path)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s %s", ErrForbidden, method, path)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode data of %s %s: %w", method, path, err)
	}
	return nil
}

func escape(segment string) string {
	return url.PathEscape(segment)
}

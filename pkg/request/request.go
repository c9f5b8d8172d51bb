// Package request is the typed request layer every domain service is built on.
//
// Each call issues exactly one HTTP request to BaseURL + ProxyPrefix + path
// and decodes the JSON response into the caller's type:
//
//	user, err := request.Get[*models.User](ctx, client, "/users/me")
//	_, err = request.Put[request.NoContent](ctx, client, "/notifications/read-all", nil)
//
// The layer does not retry, validate response shapes or recover from errors.
// Non-2xx responses and transport failures surface as *RequestError. Retries,
// auth headers and request ids belong to the transport the client is built on.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// NoContent is the result type for endpoints whose response body is ignored.
type NoContent struct{}

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues requests against the proxied Hermes API.
type Client struct {
	baseURL string
	prefix  string
	doer    Doer
	logger  hclog.Logger
}

// New creates a client from cfg, applying defaults first.
func New(cfg *Config) (*Client, error) {
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request client config: %w", err)
	}

	return NewWithDoer(cfg.BaseURL, cfg.ProxyPrefix, cfg.NewHTTPClient(), cfg.Logger), nil
}

// NewWithDoer creates a client that sends requests through doer.
func NewWithDoer(baseURL, prefix string, doer Doer, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		prefix:  strings.TrimSuffix(prefix, "/"),
		doer:    doer,
		logger:  logger.Named("request"),
	}
}

// URL returns the absolute URL for path.
func (c *Client) URL(path string) string {
	return c.baseURL + c.prefix + path
}

// Get issues a GET request and decodes the response into T.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return do[T](ctx, c, http.MethodGet, path, nil)
}

// Post issues a POST request with body encoded as JSON and decodes the
// response into T. A nil body sends no payload.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return do[T](ctx, c, http.MethodPost, path, body)
}

// Put issues a PUT request with body encoded as JSON and decodes the response
// into T. A nil body sends no payload.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return do[T](ctx, c, http.MethodPut, path, body)
}

func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var result T

	if path == "" || !strings.HasPrefix(path, "/") {
		return result, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return result, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), bodyReader)
	if err != nil {
		return result, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return result, &RequestError{
			Method:  method,
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to read response: %v", err),
			Err:        err,
		}
	}

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, respBody),
		}
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return result, nil
	}

	// Endpoints without a result succeed whatever the body holds.
	if _, ok := any(&result).(*NoContent); ok {
		return result, nil
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return result, fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}

	return result, nil
}

// errorMessage extracts a human readable message from an error response.
func errorMessage(status int, body []byte) string {
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Error != "" {
			return apiErr.Error
		}
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}

	return http.StatusText(status)
}

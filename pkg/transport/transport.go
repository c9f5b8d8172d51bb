// Package transport builds the HTTP round-tripper chain that sits beneath the
// request layer. It owns everything the request layer deliberately does not:
// bearer-token injection, request correlation ids and retries with backoff.
package transport

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Options configures the transport chain.
type Options struct {
	// AuthToken is sent as a Bearer token when non-empty.
	AuthToken string

	// MaxRetries is the number of additional attempts for idempotent requests.
	// Zero disables retries.
	MaxRetries int

	// RetryDelay is the initial backoff interval (default: 500ms).
	RetryDelay time.Duration

	// MaxRetryDelay caps a single backoff interval (default: 10s).
	MaxRetryDelay time.Duration

	Logger hclog.Logger
}

// New wraps base (http.DefaultTransport when nil) with auth, request id and
// retry handling.
func New(base http.RoundTripper, opts Options) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 500 * time.Millisecond
	}
	if opts.MaxRetryDelay <= 0 {
		opts.MaxRetryDelay = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	var rt http.RoundTripper = &retryTransport{
		next:          base,
		maxRetries:    opts.MaxRetries,
		retryDelay:    opts.RetryDelay,
		maxRetryDelay: opts.MaxRetryDelay,
		logger:        opts.Logger.Named("retry"),
	}
	rt = &requestIDTransport{next: rt}

	if opts.AuthToken != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: opts.AuthToken,
				TokenType:   "Bearer",
			}),
			Base: rt,
		}
	}

	return rt
}

type requestIDTransport struct {
	next http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	r.Header.Set(RequestIDHeader, uuid.NewString())
	return t.next.RoundTrip(r)
}

type retryTransport struct {
	next          http.RoundTripper
	maxRetries    int
	retryDelay    time.Duration
	maxRetryDelay time.Duration
	logger        hclog.Logger
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.maxRetries <= 0 || !isIdempotent(req.Method) || !rewindable(req) {
		return t.next.RoundTrip(req)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = t.retryDelay
	b.MaxInterval = t.maxRetryDelay
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(
		backoff.WithMaxRetries(b, uint64(t.maxRetries)),
		req.Context(),
	)

	var (
		resp    *http.Response
		attempt int
	)
	operation := func() error {
		r := req
		if attempt > 0 {
			r = req.Clone(req.Context())
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return backoff.Permanent(fmt.Errorf("failed to rewind request body: %w", err))
				}
				r.Body = body
			}
		}
		attempt++

		res, err := t.next.RoundTrip(r)
		if err != nil {
			if req.Context().Err() != nil {
				return backoff.Permanent(err)
			}
			t.logger.Debug("request failed, will retry",
				"method", req.Method,
				"url", req.URL.Redacted(),
				"attempt", attempt,
				"error", err,
			)
			return err
		}

		// The last attempt hands its response back to the caller as-is.
		if isRetryableStatus(res.StatusCode) && attempt <= t.maxRetries {
			_, _ = io.Copy(io.Discard, res.Body)
			res.Body.Close()
			t.logger.Debug("retryable status, will retry",
				"method", req.Method,
				"url", req.URL.Redacted(),
				"attempt", attempt,
				"status", res.StatusCode,
			)
			return fmt.Errorf("retryable status %d", res.StatusCode)
		}

		resp = res
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return resp, nil
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

func rewindable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

// isRetryableStatus reports whether status is worth another attempt:
// 5xx, 429 (rate limit) and 408 (timeout).
func isRetryableStatus(status int) bool {
	switch {
	case status >= 500:
		return true
	case status == http.StatusTooManyRequests, status == http.StatusRequestTimeout:
		return true
	}
	return false
}

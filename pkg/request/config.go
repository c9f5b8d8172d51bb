package request

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/hermes-client/pkg/transport"
)

// DefaultProxyPrefix is the path under which the web front end proxies the
// Hermes API.
const DefaultProxyPrefix = "/api/proxy"

// Config contains configuration for the request client.
type Config struct {
	// BaseURL is the origin of the Hermes front end
	// Example: "https://hermes.example.com"
	BaseURL string

	// ProxyPrefix is prepended to every request path
	// Default: "/api/proxy"
	ProxyPrefix string

	// AuthToken is the API token for authentication (Bearer token)
	AuthToken string `json:"-"`

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool

	// Timeout for a single request including retries
	// Default: 30 seconds
	Timeout time.Duration

	// MaxRetries for idempotent requests, handled by the transport
	// Default: 0
	MaxRetries int

	// RetryDelay is the initial backoff between retries
	// Default: 500 milliseconds
	RetryDelay time.Duration

	Logger hclog.Logger
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		ProxyPrefix: DefaultProxyPrefix,
		TLSVerify:   &tlsVerify,
		Timeout:     30 * time.Second,
		RetryDelay:  500 * time.Millisecond,
	}
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.ProxyPrefix == "" {
		c.ProxyPrefix = defaults.ProxyPrefix
	}
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = defaults.RetryDelay
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https scheme, got: %s", parsedURL.Scheme)
	}

	if c.ProxyPrefix != "" && !strings.HasPrefix(c.ProxyPrefix, "/") {
		return fmt.Errorf("proxy_prefix must start with '/', got: %s", c.ProxyPrefix)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative, got: %d", c.MaxRetries)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be non-negative, got: %v", c.RetryDelay)
	}

	return nil
}

// NewHTTPClient creates the HTTP client used by the request layer. Auth,
// request ids and retries are layered on by the transport package.
func (c *Config) NewHTTPClient() *http.Client {
	base := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		base.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout: c.Timeout,
		Transport: transport.New(base, transport.Options{
			AuthToken:  c.AuthToken,
			MaxRetries: c.MaxRetries,
			RetryDelay: c.RetryDelay,
			Logger:     c.Logger,
		}),
	}
}

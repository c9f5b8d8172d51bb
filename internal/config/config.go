// Package config loads the client configuration file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

// Storage types
const (
	StorageTypeFile   = "file"
	StorageTypeSQLite = "sqlite"
	StorageTypeMemory = "memory"
)

// DefaultDirName is the directory under the user's home holding the config
// file and persisted state.
const DefaultDirName = ".hermes-client"

// Config is the client configuration.
//
// Example configuration (HCL):
//
//	base_url    = "https://hermes.example.com"
//	auth_token  = env("HERMES_TOKEN")
//	timeout     = "30s"
//	max_retries = 3
//
//	storage {
//	  type = "file"
//	  path = "~/.hermes-client"
//	}
type Config struct {
	// BaseURL is the origin of the Hermes front end.
	BaseURL string `hcl:"base_url,optional" json:"base_url"`

	// ProxyPrefix is the API proxy path (default: "/api/proxy").
	ProxyPrefix string `hcl:"proxy_prefix,optional" json:"proxy_prefix"`

	// AuthToken is sent as a Bearer token. Prefer env("...") over a literal.
	AuthToken string `hcl:"auth_token,optional" json:"-"`

	// Timeout is a Go duration string (default: "30s").
	Timeout string `hcl:"timeout,optional" json:"timeout"`

	// MaxRetries for idempotent requests (default: 0).
	MaxRetries int `hcl:"max_retries,optional" json:"max_retries"`

	// RetryDelay is the initial retry backoff (default: "500ms").
	RetryDelay string `hcl:"retry_delay,optional" json:"retry_delay"`

	// TLSVerify controls TLS certificate verification (default: true).
	TLSVerify *bool `hcl:"tls_verify,optional" json:"tls_verify"`

	// LogLevel is one of trace, debug, info, warn, error, off (default: "warn").
	LogLevel string `hcl:"log_level,optional" json:"log_level"`

	Storage *Storage `hcl:"storage,block" json:"storage"`
}

// Storage configures where the client persists its session.
type Storage struct {
	// Type is one of "file", "sqlite" or "memory" (default: "file").
	Type string `hcl:"type,optional" json:"type"`

	// Path is the state directory (file) or database file (sqlite).
	Path string `hcl:"path,optional" json:"path"`
}

// DefaultDir returns ~/.hermes-client.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.hcl")
}

// Default returns a configuration with every optional value filled in.
func Default() *Config {
	return &Config{
		ProxyPrefix: request.DefaultProxyPrefix,
		Timeout:     "30s",
		RetryDelay:  "500ms",
		LogLevel:    "warn",
		Storage: &Storage{
			Type: StorageTypeFile,
			Path: DefaultDir(),
		},
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if err := hclsimple.DecodeFile(path, evalContext(), cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.ProxyPrefix == "" {
		c.ProxyPrefix = d.ProxyPrefix
	}
	if c.Timeout == "" {
		c.Timeout = d.Timeout
	}
	if c.RetryDelay == "" {
		c.RetryDelay = d.RetryDelay
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Storage == nil {
		c.Storage = d.Storage
	}
	if c.Storage.Type == "" {
		c.Storage.Type = StorageTypeFile
	}
	if c.Storage.Path == "" && c.Storage.Type == StorageTypeFile {
		c.Storage.Path = DefaultDir()
	}
	if c.Storage.Path == "" && c.Storage.Type == StorageTypeSQLite {
		c.Storage.Path = filepath.Join(DefaultDir(), "state.db")
	}
	c.Storage.Path = expandHome(c.Storage.Path)
}

// evalContext exposes env("NAME") to configuration files.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": function.New(&function.Spec{
				Params: []function.Parameter{
					{Name: "name", Type: cty.String},
				},
				Type: function.StaticReturnType(cty.String),
				Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
					return cty.StringVal(os.Getenv(args[0].AsString())), nil
				},
			}),
		},
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

var logLevels = []interface{}{"trace", "debug", "info", "warn", "error", "off"}

// Validate checks the whole configuration and reports every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.ProxyPrefix, validation.Match(regexp.MustCompile(`^/`))),
		validation.Field(&c.Timeout, validation.By(positiveDuration)),
		validation.Field(&c.RetryDelay, validation.By(positiveDuration)),
		validation.Field(&c.MaxRetries, validation.Min(0)),
		validation.Field(&c.LogLevel, validation.In(logLevels...)),
	); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Storage != nil {
		if err := validation.ValidateStruct(c.Storage,
			validation.Field(&c.Storage.Type, validation.Required,
				validation.In(StorageTypeFile, StorageTypeSQLite, StorageTypeMemory)),
			validation.Field(&c.Storage.Path, validation.When(
				c.Storage.Type != StorageTypeMemory, validation.Required)),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("storage: %w", err))
		}
	}

	return result.ErrorOrNil()
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme")
	}
	return nil
}

func positiveDuration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("must be a duration such as 30s")
	}
	if d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// RequestConfig converts the configuration into a request client config.
func (c *Config) RequestConfig(logger hclog.Logger) (*request.Config, error) {
	rc := &request.Config{
		BaseURL:     c.BaseURL,
		ProxyPrefix: c.ProxyPrefix,
		AuthToken:   c.AuthToken,
		TLSVerify:   c.TLSVerify,
		MaxRetries:  c.MaxRetries,
		Logger:      logger,
	}

	var err error
	if c.Timeout != "" {
		if rc.Timeout, err = time.ParseDuration(c.Timeout); err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
	}
	if c.RetryDelay != "" {
		if rc.RetryDelay, err = time.ParseDuration(c.RetryDelay); err != nil {
			return nil, fmt.Errorf("invalid retry_delay: %w", err)
		}
	}

	return rc, nil
}

// Package base holds what every hermes-client command shares: global flags,
// configuration, the request client, services and the client-side stores.
package base

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/hermes-client/internal/config"
	"github.com/hashicorp-forge/hermes-client/pkg/auth"
	"github.com/hashicorp-forge/hermes-client/pkg/database"
	"github.com/hashicorp-forge/hermes-client/pkg/query"
	"github.com/hashicorp-forge/hermes-client/pkg/request"
	"github.com/hashicorp-forge/hermes-client/pkg/services"
	"github.com/hashicorp-forge/hermes-client/pkg/storage"
	"github.com/hashicorp-forge/hermes-client/pkg/verification"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrNotLoggedIn is returned by RequireSession when nobody is signed in.
var ErrNotLoggedIn = errors.New("not logged in, run \"hermes-client login\" first")

// Command is embedded by every command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is the filesystem file storage is created on (default: OS).
	Fs afero.Fs

	flagConfig   string
	flagAddress  string
	flagFormat   string
	flagLogLevel string

	Config       *config.Config
	Services     *services.Services
	Auth         *auth.Store
	Verification *verification.Store
	Workspaces   *query.WorkspaceQuery

	db *gorm.DB
}

// GlobalFlags registers the flags shared by every command on f.
func (c *Command) GlobalFlags(f *FlagSet) {
	f.StringVar(&c.flagConfig, "config", envOr("HERMES_CLIENT_CONFIG", config.DefaultPath()),
		"Path to the configuration file. Env: HERMES_CLIENT_CONFIG.")
	f.StringVar(&c.flagAddress, "address", os.Getenv("HERMES_ADDR"),
		"Hermes base URL, overriding base_url. Env: HERMES_ADDR.")
	f.StringVar(&c.flagFormat, "format", FormatJSON,
		"Output format: json or yaml.")
	f.StringVar(&c.flagLogLevel, "log-level", "",
		"Log level, overriding log_level.")
}

// Init loads configuration and wires the client. Call it after parsing flags.
func (c *Command) Init() error {
	if c.flagFormat != FormatJSON && c.flagFormat != FormatYAML {
		return fmt.Errorf("unsupported format %q", c.flagFormat)
	}

	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		return err
	}
	if c.flagAddress != "" {
		cfg.BaseURL = c.flagAddress
	}
	if token := os.Getenv("HERMES_TOKEN"); token != "" && cfg.AuthToken == "" {
		cfg.AuthToken = token
	}
	if c.flagLogLevel != "" {
		cfg.LogLevel = c.flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.Config = cfg

	if c.Log == nil {
		c.Log = hclog.NewNullLogger()
	}
	c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	reqCfg, err := cfg.RequestConfig(c.Log)
	if err != nil {
		return err
	}
	client, err := request.New(reqCfg)
	if err != nil {
		return err
	}
	c.Services = services.New(client)

	st, err := c.openStorage(cfg.Storage)
	if err != nil {
		return err
	}
	c.Auth = auth.NewStore(st, c.Log)
	c.Verification = verification.NewStore()
	c.Workspaces = query.NewWorkspaceQuery(c.Services.Workspaces.Get, c.Log)

	return nil
}

func (c *Command) openStorage(cfg *config.Storage) (storage.Storage, error) {
	switch cfg.Type {
	case config.StorageTypeMemory:
		return storage.NewMemoryStorage(), nil

	case config.StorageTypeSQLite:
		db, err := database.Open(database.Config{Path: cfg.Path}, c.Log)
		if err != nil {
			return nil, err
		}
		c.db = db
		return storage.NewDBStorage(db)

	case config.StorageTypeFile:
		fs := c.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		return storage.NewFileStorage(fs, filepath.Clean(cfg.Path))

	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// Close releases what Init opened. It is safe to call more than once.
func (c *Command) Close() error {
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	c.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RequireSession returns ErrNotLoggedIn unless a user is signed in.
func (c *Command) RequireSession() error {
	if !c.Auth.State().IsAuthenticated {
		return ErrNotLoggedIn
	}
	return nil
}

// Output writes v to the UI in the selected format.
func (c *Command) Output(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if c.flagFormat == FormatYAML {
		// Round-trip through JSON so YAML keys match the JSON field names.
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		if data, err = yaml.Marshal(generic); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	}

	c.UI.Output(string(data))
	return nil
}

// Fail reports err and returns the exit code. An unauthorized response means
// the server-side session is gone, so the local session is cleared too.
func (c *Command) Fail(err error) int {
	if request.IsUnauthorized(err) && c.Auth != nil && c.Auth.State().IsAuthenticated {
		c.Auth.Logout()
		c.UI.Error("Session expired, you have been logged out.")
	}
	c.UI.Error(err.Error())
	return 1
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

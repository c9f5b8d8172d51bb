// Package database opens the local SQLite database the client keeps its
// durable state in.
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds configuration for the local database.
type Config struct {
	// Path is the SQLite database file. ":memory:" keeps it in memory.
	Path string

	// BusyTimeout is how long SQLite waits on a locked database (default: 5s).
	BusyTimeout time.Duration
}

// Open opens (creating if needed) the SQLite database described by cfg.
func Open(cfg Config, log hclog.Logger) (*gorm.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := cfg.Path
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL",
			cfg.Path, cfg.BusyTimeout.Milliseconds())
	}

	gormConfig := &gorm.Config{}
	if log != nil {
		gormConfig.Logger = NewGormLogger(log.Named("gorm"))
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	// SQLite serializes writers; one connection also keeps ":memory:"
	// databases from being split across connections.
	sqlDB.SetMaxOpenConns(1)

	if log != nil {
		log.Debug("opened local database", "path", cfg.Path)
	}

	return db, nil
}

// NewGormLogger routes gorm's warnings and errors through log. Lookups that
// find no record are expected and not logged.
func NewGormLogger(log hclog.Logger) logger.Interface {
	return logger.New(
		log.StandardLogger(&hclog.StandardLoggerOptions{ForceLevel: hclog.Warn}),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// Package cli provides common initialization for the ledger command.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"ledger/internal/categorizer"
	"ledger/internal/config"
	"ledger/internal/kv"
	"ledger/internal/kv/memory"
	"ledger/internal/kv/sqlite"
	"ledger/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the application logger at the given level and makes
// it the slog default. Unknown levels fall back to info.
func SetupLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	logger := log.New(log.Config{Level: lvl, Component: log.ComponentApp, Output: os.Stderr})
	log.SetDefault(logger)
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", level)
	}
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Exits the process on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", log.FieldError, err, log.FieldErrorType, log.ErrorTypeConfiguration)
		os.Exit(1)
	}
	return cfg
}

// OpenBackend opens the configured key-value backend. The returned closer
// is never nil.
func OpenBackend(cfg *config.Config) (kv.Store, io.Closer, error) {
	switch cfg.DataBackend {
	case "sqlite":
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return store, store, nil
	case "memory":
		if cfg.StorageQuotaBytes > 0 {
			return memory.NewWithQuota(cfg.StorageQuotaBytes), io.NopCloser(nil), nil
		}
		return memory.New(), io.NopCloser(nil), nil
	}
	return nil, nil, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
}

// InitBackend is OpenBackend that exits the process on failure.
func InitBackend(logger *log.Logger, cfg *config.Config) (kv.Store, io.Closer) {
	store, closer, err := OpenBackend(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	logger.WithComponent(log.ComponentKV).InfoContext(context.Background(), "Storage backend ready",
		log.FieldBackend, cfg.DataBackend)
	return store, closer
}

// BuildCategorizer loads the keyword table (the configured file or the
// built-in one) and wraps it in a cache unless the cache size is zero.
func BuildCategorizer(cfg *config.Config) (categorizer.Classifier, error) {
	rules := categorizer.DefaultRules()
	if cfg.CategoriesFile != "" {
		loaded, err := categorizer.LoadRules(cfg.CategoriesFile)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}
	var c categorizer.Classifier = categorizer.New(rules)
	if cfg.CategoryCacheSize > 0 {
		c = categorizer.NewCached(c, cfg.CategoryCacheSize, cfg.CategoryCacheTTL)
	}
	return c, nil
}

// InitCategorizer is BuildCategorizer that exits the process on failure.
func InitCategorizer(logger *log.Logger, cfg *config.Config) categorizer.Classifier {
	c, err := BuildCategorizer(cfg)
	if err != nil {
		logger.Error("Failed to load categorization rules", log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeConfiguration, "path", cfg.CategoriesFile)
		os.Exit(1)
	}
	logger.WithComponent(log.ComponentCategorizer).InfoContext(context.Background(), "Categorizer ready",
		"rules_file", cfg.CategoriesFile, "cache_size", cfg.CategoryCacheSize)
	return c
}

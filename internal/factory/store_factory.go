package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/adapters/store"
	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/core"
)

// StoreFactory creates verdict repositories based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateVerdictRepository creates a verdict repository based on the configuration
func (f *StoreFactory) CreateVerdictRepository() (core.VerdictRepository, error) {
	storeCfg, err := f.cfg.GetStore()
	if err != nil {
		return nil, err
	}

	f.logger.Info("Opening verdict store", zap.String("type", storeCfg.Type))

	switch storeCfg.Type {
	case "memory":
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(storeCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storeCfg.SQLitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(storeCfg.MySQLDSN, f.logger)
	case "badger":
		if err := os.MkdirAll(storeCfg.BadgerDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create Badger directory: %w", err)
		}
		return store.NewBadgerStore(storeCfg.BadgerDir, f.logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeCfg.Type)
	}
}

// CreateFreshnessPolicy returns the configured freshness window
func (f *StoreFactory) CreateFreshnessPolicy() (core.FreshnessPolicy, error) {
	storeCfg, err := f.cfg.GetStore()
	if err != nil {
		return nil, err
	}
	return core.MaxAgePolicy{MaxAge: storeCfg.MaxAge}, nil
}

// IsStoreEnabled returns whether verdicts are cached
func (f *StoreFactory) IsStoreEnabled() bool {
	return f.cfg.GetBool("store.enabled")
}

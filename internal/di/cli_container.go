package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/logging"
)

// CLIFlags contains the persistent flags of the CLI application
type CLIFlags struct {
	ConfigFile string
	Provider   string
	StoreType  string
	NoStore    bool
	Verbose    bool
	JSONLog    bool
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration, with flags overriding the file
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		cfg, err := config.NewWithFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		if used := cfg.GetViper().ConfigFileUsed(); used != "" {
			logger.Info("Loaded configuration from file", zap.String("file", used))
		}
		applyFlags(cfg, flags)
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	if err := provideAnalysis(container); err != nil {
		return nil, err
	}

	return container, nil
}

// applyFlags overrides configuration values set on the command line
func applyFlags(cfg *config.Config, flags *CLIFlags) {
	v := cfg.GetViper()
	if flags.Provider != "" {
		v.Set("llm.provider", flags.Provider)
	}
	if flags.StoreType != "" {
		v.Set("store.type", flags.StoreType)
	}
	if flags.NoStore {
		v.Set("store.enabled", false)
	}
}

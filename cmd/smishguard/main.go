package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/core"
	"github.com/mikey/smishguard/internal/di"
	"github.com/mikey/smishguard/internal/ports"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	cfg *config.Config,
	logger *zap.Logger,
	gateways []ports.Gateway,
	judge core.LanguageModelJudge,
	repo core.VerdictRepository,
) error {
	defer logger.Sync()

	serverCfg, err := cfg.GetServer()
	if err != nil {
		return err
	}

	for _, gw := range gateways {
		if err := gw.Start(); err != nil {
			logger.Error("Failed to start gateway", zap.String("gateway", gw.Name()), zap.Error(err))
			return err
		}
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()

	for _, gw := range gateways {
		if err := gw.Stop(ctx); err != nil {
			logger.Error("Failed to stop gateway", zap.String("gateway", gw.Name()), zap.Error(err))
		}
	}

	// Close any resources that need closing
	if closer, ok := judge.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close language model client", zap.Error(err))
		}
	}
	if repo != nil {
		if err := repo.Close(); err != nil {
			logger.Error("Failed to close verdict store", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}

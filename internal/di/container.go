package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/core"
	"github.com/mikey/smishguard/internal/factory"
	"github.com/mikey/smishguard/internal/logging"
	"github.com/mikey/smishguard/internal/ports"
	"github.com/mikey/smishguard/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideAnalysis(container); err != nil {
		return nil, err
	}

	// Register gateways
	if err := container.Provide(factory.NewGatewayFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.GatewayFactory) ([]ports.Gateway, error) {
		return f.CreateGateways()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideAnalysis registers everything the analysis service needs. It
// expects *config.Config and *zap.Logger to be provided already.
func provideAnalysis(container *dig.Container) error {
	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return err
	}

	// Register classifier clients
	if err := container.Provide(func(f *factory.LLMFactory) (core.LanguageModelJudge, error) {
		return f.CreateJudge()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.SpamClassifier, error) {
		return f.CreateSpamClassifier()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.URLReputationChecker, error) {
		return f.CreateURLChecker()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Timeouts, error) {
		return f.CreateTimeouts()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.ClassifierFactory) (*core.Aggregator, error) {
		return f.CreateAggregator()
	}); err != nil {
		return err
	}
	if err := container.Provide(core.NewFanOut); err != nil {
		return err
	}

	// Register verdict store and freshness window
	if err := container.Provide(func(f *factory.StoreFactory) (core.VerdictRepository, error) {
		if !f.IsStoreEnabled() {
			return nil, nil
		}
		return f.CreateVerdictRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.StoreFactory) (core.FreshnessPolicy, error) {
		return f.CreateFreshnessPolicy()
	}); err != nil {
		return err
	}

	// Register analysis service
	return container.Provide(func(
		repo core.VerdictRepository,
		fanOut *core.FanOut,
		aggregator *core.Aggregator,
		freshness core.FreshnessPolicy,
		storeFactory *factory.StoreFactory,
		logger *zap.Logger,
	) *core.AnalysisService {
		return core.NewAnalysisService(
			repo,
			fanOut,
			aggregator,
			freshness,
			logger,
			storeFactory.IsStoreEnabled(),
		)
	})
}

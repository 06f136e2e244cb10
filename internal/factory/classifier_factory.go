package factory

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/adapters/spamclf"
	"github.com/mikey/smishguard/internal/adapters/urlscan"
	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/core"
)

// ClassifierFactory creates the HTTP classifier clients and the fan-out
// that drives them
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSpamClassifier returns a nil classifier when disabled
func (f *ClassifierFactory) CreateSpamClassifier() (core.SpamClassifier, error) {
	spamCfg, err := f.cfg.GetSpam()
	if err != nil {
		return nil, err
	}
	if !spamCfg.Enabled {
		f.logger.Warn("Spam classifier disabled")
		return nil, nil
	}
	if spamCfg.Endpoint == "" {
		return nil, fmt.Errorf("spam classifier endpoint is required")
	}
	return spamclf.NewClient(spamCfg.Endpoint, &http.Client{}, f.logger), nil
}

// CreateURLChecker returns a nil checker when disabled
func (f *ClassifierFactory) CreateURLChecker() (core.URLReputationChecker, error) {
	scanCfg, err := f.cfg.GetURLScan()
	if err != nil {
		return nil, err
	}
	if !scanCfg.Enabled {
		f.logger.Warn("URL reputation checker disabled")
		return nil, nil
	}
	if scanCfg.Endpoint == "" {
		return nil, fmt.Errorf("url reputation endpoint is required")
	}
	return urlscan.NewClient(scanCfg.Endpoint, scanCfg.APIKey, &http.Client{}, f.logger), nil
}

// CreateTimeouts reads the per-classifier deadlines. The defaults are floors:
// a configured value may raise a deadline but never lower it.
func (f *ClassifierFactory) CreateTimeouts() (core.Timeouts, error) {
	timeouts := core.DefaultTimeouts

	llmCfg, err := f.cfg.GetLLM()
	if err != nil {
		return timeouts, err
	}
	spamCfg, err := f.cfg.GetSpam()
	if err != nil {
		return timeouts, err
	}
	scanCfg, err := f.cfg.GetURLScan()
	if err != nil {
		return timeouts, err
	}

	timeouts.LanguageModel = max(llmCfg.Timeout, timeouts.LanguageModel)
	timeouts.Spam = max(spamCfg.Timeout, timeouts.Spam)
	timeouts.URL = max(scanCfg.Timeout, timeouts.URL)
	return timeouts, nil
}

// CreateAggregator creates the score aggregator for the configured mode
func (f *ClassifierFactory) CreateAggregator() (*core.Aggregator, error) {
	mode, err := core.ParseScoringMode(f.cfg.GetScoring().Mode)
	if err != nil {
		return nil, err
	}
	return core.NewAggregator(mode), nil
}

package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/adapters/bedrock"
	"github.com/mikey/smishguard/internal/adapters/gemini"
	"github.com/mikey/smishguard/internal/adapters/openai"
	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/core"
	"github.com/mikey/smishguard/internal/utils"
)

// LLMFactory creates language-model judges
type LLMFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *LLMFactory {
	return &LLMFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateJudge creates a judge for the configured provider. It returns a nil
// judge when the language model is disabled.
func (f *LLMFactory) CreateJudge() (core.LanguageModelJudge, error) {
	llmConfig, err := f.cfg.GetLLM()
	if err != nil {
		return nil, err
	}
	if !llmConfig.Enabled {
		f.logger.Warn("Language model judge disabled")
		return nil, nil
	}

	f.logger.Info("Creating language model judge", zap.String("provider", llmConfig.Provider))

	switch llmConfig.Provider {
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	case "openai":
		return openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}

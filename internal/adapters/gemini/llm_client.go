package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/mikey/smishguard/internal/adapters/llmjudge"
	"github.com/mikey/smishguard/internal/core"
)

// GeminiClient is an implementation of the LanguageModelJudge interface using Google Gemini
type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	prompts   *llmjudge.PromptBuilder
	logger    *zap.Logger
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	ctx context.Context,
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	prompts *llmjudge.PromptBuilder,
	logger *zap.Logger,
) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = genai.NewUserContent(genai.Text(llmjudge.SystemPrompt))

	return &GeminiClient{
		client:    client,
		model:     model,
		modelName: modelName,
		prompts:   prompts,
		logger:    logger,
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Judge asks Gemini how likely text is a scam
func (c *GeminiClient) Judge(ctx context.Context, text string) (*core.Judgement, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(c.prompts.Build(text)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from Gemini: %w", core.ErrMalformedResponse)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	c.logger.Debug("Gemini judgement received",
		zap.String("model", c.modelName),
		zap.Int("parts", len(resp.Candidates[0].Content.Parts)))

	return llmjudge.ParseJudgement(sb.String(), c.modelName)
}

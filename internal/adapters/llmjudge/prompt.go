// Package llmjudge holds the prompt and answer format shared by every
// language-model provider.
package llmjudge

import (
	"fmt"

	"github.com/mikey/smishguard/internal/utils"
)

// SystemPrompt is sent as the system role where the provider supports one
const SystemPrompt = "You are an SMS fraud analyst. Respond only with JSON."

const promptFormat = `You are a fraud detection system for SMS messages (smishing).
Analyze the following message and decide how likely it is to be a scam or phishing attempt.
%sRespond with a JSON object containing:
- confidence: number between 0 and 1 (higher means more likely to be fraudulent)
- justification: string (brief explanation in the language of the message)

Message:
%s

Respond only with the JSON object and nothing else.`

// PromptBuilder formats message text into the judge prompt
type PromptBuilder struct {
	textProcessor *utils.TextProcessor
	maxBodySize   int
}

// NewPromptBuilder creates a new PromptBuilder
func NewPromptBuilder(textProcessor *utils.TextProcessor, maxBodySize int) *PromptBuilder {
	return &PromptBuilder{
		textProcessor: textProcessor,
		maxBodySize:   maxBodySize,
	}
}

// Build returns the user prompt for text
func (b *PromptBuilder) Build(text string) string {
	processed := b.textProcessor.ProcessText(text, b.maxBodySize)
	return BuildPrompt(processed, b.textProcessor.DetectLanguage(processed))
}

// BuildPrompt formats text into the judge prompt. An empty language skips the hint.
func BuildPrompt(text string, language string) string {
	hint := ""
	if language != "" {
		hint = fmt.Sprintf("The message appears to be written in %s.\n", language)
	}
	return fmt.Sprintf(promptFormat, hint, text)
}

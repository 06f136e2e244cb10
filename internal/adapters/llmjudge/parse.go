package llmjudge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikey/smishguard/internal/core"
)

type judgementResponse struct {
	Confidence    *float64 `json:"confidence"`
	Justification *string  `json:"justification"`
}

// ParseJudgement decodes a model answer into a Judgement. The JSON object may
// be surrounded by prose or a markdown code fence.
func ParseJudgement(responseText string, model string) (*core.Judgement, error) {
	jsonStr, ok := extractJSON(responseText)
	if !ok {
		return nil, fmt.Errorf("no JSON object in model response: %w", core.ErrMalformedResponse)
	}

	var resp judgementResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse model response as JSON: %v: %w", err, core.ErrMalformedResponse)
	}
	if resp.Confidence == nil {
		return nil, fmt.Errorf("model response missing confidence: %w", core.ErrMalformedResponse)
	}
	if resp.Justification == nil {
		return nil, fmt.Errorf("model response missing justification: %w", core.ErrMalformedResponse)
	}

	return &core.Judgement{
		Confidence:    *resp.Confidence,
		Justification: strings.TrimSpace(*resp.Justification),
		Model:         model,
	}, nil
}

// extractJSON returns the text between the first '{' and the last '}'
func extractJSON(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

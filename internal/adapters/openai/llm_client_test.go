package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/adapters/llmjudge"
	"github.com/mikey/smishguard/internal/core"
	"github.com/mikey/smishguard/internal/utils"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"

	logger := zap.NewNop()
	prompts := llmjudge.NewPromptBuilder(utils.NewTextProcessor(logger), 4096)
	return NewOpenAIClient(openai.NewClientWithConfig(cfg), "gpt-4o-mini", 256, 0, 1, prompts, logger)
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:    "chatcmpl-1",
		Model: "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func TestJudge(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/v1/chat/completions", r.URL.Path)
		req.Equal("Bearer test-key", r.Header.Get("Authorization"))

		var in openai.ChatCompletionRequest
		req.NoError(json.NewDecoder(r.Body).Decode(&in))
		req.Equal("gpt-4o-mini", in.Model)
		req.Len(in.Messages, 2)
		req.Equal(openai.ChatMessageRoleSystem, in.Messages[0].Role)
		req.Contains(in.Messages[1].Content, "Reclama tu premio")
		req.NotNil(in.ResponseFormat)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse(`{"confidence": 0.7, "justification": "Premio falso"}`))
	})

	j, err := client.Judge(context.Background(), "Reclama tu premio en premio.example")
	req.NoError(err)
	req.Equal(0.7, j.Confidence)
	req.Equal("Premio falso", j.Justification)
	req.Equal("gpt-4o-mini", j.Model)
}

func TestJudge_No_Choices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "chatcmpl-2"})
	})

	_, err := client.Judge(context.Background(), "hola")
	require.ErrorIs(t, err, core.ErrMalformedResponse)
}

func TestJudge_Bad_Content(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse("I refuse"))
	})

	_, err := client.Judge(context.Background(), "hola")
	require.ErrorIs(t, err, core.ErrMalformedResponse)
}

func TestJudge_API_Error(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited", "type": "requests"}}`))
	})

	_, err := client.Judge(context.Background(), "hola")
	req.Error(err)
	req.NotErrorIs(err, core.ErrMalformedResponse)
}

// Package spamclf calls the remote machine-learned spam classifier.
package spamclf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/core"
)

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Prediction *string `json:"prediction"`
}

// Client implements core.SpamClassifier over HTTP
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a spam classifier client. A nil httpClient uses http.DefaultClient.
func NewClient(endpoint string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Classify posts text to the classifier and maps its prediction to a label
func (c *Client) Classify(ctx context.Context, text string) (core.SpamLabel, error) {
	jsonBody, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("spam classifier error (status %d): %s", resp.StatusCode, truncate(body))
	}

	var out predictResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %v: %w", err, core.ErrMalformedResponse)
	}
	if out.Prediction == nil {
		return "", fmt.Errorf("response missing prediction: %w", core.ErrMalformedResponse)
	}

	c.logger.Debug("Spam classifier prediction", zap.String("prediction", *out.Prediction))

	if strings.EqualFold(strings.TrimSpace(*out.Prediction), "spam") {
		return core.SpamLabelSpam, nil
	}
	return core.SpamLabelNotSpam, nil
}

func truncate(body []byte) string {
	const maxErrBody = 256
	if len(body) > maxErrBody {
		return string(body[:maxErrBody]) + "..."
	}
	return string(body)
}

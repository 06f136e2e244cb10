// Package urlscan calls the remote URL reputation service.
package urlscan

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

const apiKeyHeader = "x-apikey"

type scanRequest struct {
	URL string `json:"url"`
}

type scanResponse struct {
	OverallResult *string `json:"overall_result"`
}

// Client implements core.URLReputationChecker over HTTP
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a URL reputation client. apiKey may be empty.
func NewClient(endpoint string, apiKey string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Check asks the reputation service whether url is malicious
func (c *Client) Check(ctx context.Context, url string) (core.URLReputation, error) {
	jsonBody, err := json.Marshal(scanRequest{URL: url})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

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
		return "", fmt.Errorf("url scan error (status %d)", resp.StatusCode)
	}

	var out scanResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %v: %w", err, core.ErrMalformedResponse)
	}
	if out.OverallResult == nil {
		return "", fmt.Errorf("response missing overall_result: %w", core.ErrMalformedResponse)
	}

	c.logger.Debug("URL scan result",
		zap.String("url", url),
		zap.String("overall_result", *out.OverallResult))

	if strings.EqualFold(strings.TrimSpace(*out.OverallResult), "malicious") {
		return core.URLMalicious, nil
	}
	return core.URLNotMalicious, nil
}

package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/arjunms/maninventory-api/internal/config"
	"github.com/arjunms/maninventory-api/pkg/apperror"
)

// Message is a single chat message sent to the completions endpoint
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client talks to the upstream chat-completions gateway. All AI features go
// through this single client so the API key never reaches the frontend.
type Client struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a gateway client from config
func NewClient(cfg *config.AIConfig) *Client {
	return &Client{
		url:    cfg.GatewayURL,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// IsConfigured reports whether an API key is set
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Complete sends the messages to the gateway and returns the assistant's
// reply content. Gateway throttling and billing failures map to their own
// errors so handlers can pass the condition through to the client.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if !c.IsConfigured() {
		return "", apperror.ErrStoreUnavailable
	}

	body, err := json.Marshal(completionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", apperror.ErrUpstreamRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", apperror.ErrUpstreamPaymentRequired
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}

	var completion completionResponse
	if err := json.Unmarshal(data, &completion); err != nil {
		return "", apperror.ErrUpstreamParse
	}
	if len(completion.Choices) == 0 {
		return "", apperror.ErrUpstreamParse
	}

	return completion.Choices[0].Message.Content, nil
}

package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/model"
)

const defaultAnthropicBaseURL = "https://api.anthropic.com"

// anthropicClient implements the Client interface for the Anthropic API.
type anthropicClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// newAnthropicClient creates a new Anthropic API client.
func newAnthropicClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = "claude-3-sonnet-20240229"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 512
	}

	return &anthropicClient{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     defaultAnthropicBaseURL,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// anthropicResponse represents the Anthropic API response structure.
type anthropicResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Role       string `json:"role"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// complete sends one messages request and returns the text content.
func (c *anthropicClient) complete(ctx context.Context, system string, history []ChatTurn, user string) (string, error) {
	messages := make([]map[string]string, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, map[string]string{"role": string(turn.Role), "content": turn.Content})
	}
	messages = append(messages, map[string]string{"role": "user", "content": user})

	requestBody := map[string]any{
		"model":       c.model,
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
		"system":      system,
		"messages":    messages,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(body))
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", &common.RetryableError{Err: fmt.Errorf("%w: %v", common.ErrRateLimit, apiErr), Retryable: true}
		}
		return "", &common.RetryableError{Err: apiErr, Retryable: resp.StatusCode >= 500}
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Content) == 0 {
		return "", common.ErrEmptyResponse
	}

	return response.Content[0].Text, nil
}

const anthropicJSONOnlySystem = "You are a personal finance assistant. Respond only with valid JSON in the exact format requested, with no surrounding text."

// SuggestCategory asks Anthropic to categorize a transaction description.
func (c *anthropicClient) SuggestCategory(ctx context.Context, description string) (model.Category, error) {
	content, err := c.complete(ctx, anthropicJSONOnlySystem, nil, buildCategoryPrompt(description))
	if err != nil {
		return "", err
	}
	return parseCategoryResponse(content)
}

// ForecastExpenses asks Anthropic for a cumulative 30-day expense projection.
func (c *anthropicClient) ForecastExpenses(ctx context.Context, ledger []model.Transaction) ([]model.ForecastPoint, error) {
	content, err := c.complete(ctx, anthropicJSONOnlySystem, nil, buildForecastPrompt(ledger, model.Today()))
	if err != nil {
		return nil, err
	}
	return parseForecastResponse(content)
}

// GenerateInsights asks Anthropic for spending commentary.
func (c *anthropicClient) GenerateInsights(ctx context.Context, ledger []model.Transaction) (string, error) {
	content, err := c.complete(ctx,
		"You are a personal finance assistant. Respond with short, actionable markdown insights only.",
		nil, buildInsightsPrompt(ledger))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// Chat continues the conversation with the ledger attached to every turn.
func (c *anthropicClient) Chat(ctx context.Context, conv *Conversation, message string, ledger []model.Transaction) (string, error) {
	var history []ChatTurn
	if conv != nil {
		history = conv.Turns()
	}

	content, err := c.complete(ctx, chatSystemPrompt, history, buildChatPrompt(message, ledger))
	if err != nil {
		return "", err
	}

	reply := strings.TrimSpace(content)
	if conv != nil {
		conv.Append(RoleUser, message)
		conv.Append(RoleAssistant, reply)
	}
	return reply, nil
}

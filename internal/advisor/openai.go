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

const defaultOpenAIBaseURL = "https://api.openai.com"

// openAIClient implements the Client interface for the OpenAI API.
type openAIClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// newOpenAIClient creates a new OpenAI API client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4-turbo-preview"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 512
	}

	return &openAIClient{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     defaultOpenAIBaseURL,
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

// openAIResponse represents the chat completions response structure.
type openAIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// complete sends one chat-completion request and returns the text content.
func (c *openAIClient) complete(ctx context.Context, system string, history []ChatTurn, user string) (string, error) {
	messages := []map[string]string{{"role": "system", "content": system}}
	for _, turn := range history {
		messages = append(messages, map[string]string{"role": string(turn.Role), "content": turn.Content})
	}
	messages = append(messages, map[string]string{"role": "user", "content": user})

	requestBody := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

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
		apiErr := fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", &common.RetryableError{Err: fmt.Errorf("%w: %v", common.ErrRateLimit, apiErr), Retryable: true}
		}
		return "", &common.RetryableError{Err: apiErr, Retryable: resp.StatusCode >= 500}
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", common.ErrEmptyResponse
	}

	return response.Choices[0].Message.Content, nil
}

const openAIJSONOnlySystem = "You are a personal finance assistant. You MUST respond with ONLY valid JSON. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON."

// SuggestCategory asks OpenAI to categorize a transaction description.
func (c *openAIClient) SuggestCategory(ctx context.Context, description string) (model.Category, error) {
	content, err := c.complete(ctx, openAIJSONOnlySystem, nil, buildCategoryPrompt(description))
	if err != nil {
		return "", err
	}
	return parseCategoryResponse(content)
}

// ForecastExpenses asks OpenAI for a cumulative 30-day expense projection.
func (c *openAIClient) ForecastExpenses(ctx context.Context, ledger []model.Transaction) ([]model.ForecastPoint, error) {
	content, err := c.complete(ctx, openAIJSONOnlySystem, nil, buildForecastPrompt(ledger, model.Today()))
	if err != nil {
		return nil, err
	}
	return parseForecastResponse(content)
}

// GenerateInsights asks OpenAI for spending commentary.
func (c *openAIClient) GenerateInsights(ctx context.Context, ledger []model.Transaction) (string, error) {
	content, err := c.complete(ctx,
		"You are a personal finance assistant. Respond with short, actionable markdown insights only.",
		nil, buildInsightsPrompt(ledger))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// Chat continues the conversation with the ledger attached to every turn.
func (c *openAIClient) Chat(ctx context.Context, conv *Conversation, message string, ledger []model.Transaction) (string, error) {
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

package advisor

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/model"
)

// geminiClient implements the Client interface for the Gemini API.
type geminiClient struct {
	apiKey string
	model  string
}

// newGeminiClient creates a new Gemini API client.
func newGeminiClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is required", common.ErrMissingConfig)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &geminiClient{apiKey: cfg.APIKey, model: modelName}, nil
}

// generate sends one request to Gemini and returns the response text.
func (c *geminiClient) generate(ctx context.Context, system string, history []ChatTurn, user string, jsonOnly bool) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      c.apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create genai client: %w", err)
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.RoleUser
		if turn.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: user}},
	})

	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if jsonOnly {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", common.ErrEmptyResponse
	}
	return text, nil
}

// SuggestCategory asks Gemini to categorize a transaction description.
func (c *geminiClient) SuggestCategory(ctx context.Context, description string) (model.Category, error) {
	content, err := c.generate(ctx, "", nil, buildCategoryPrompt(description), true)
	if err != nil {
		return "", err
	}
	return parseCategoryResponse(content)
}

// ForecastExpenses asks Gemini for a cumulative 30-day expense projection.
func (c *geminiClient) ForecastExpenses(ctx context.Context, ledger []model.Transaction) ([]model.ForecastPoint, error) {
	content, err := c.generate(ctx, "", nil, buildForecastPrompt(ledger, model.Today()), true)
	if err != nil {
		return nil, err
	}
	return parseForecastResponse(content)
}

// GenerateInsights asks Gemini for spending commentary.
func (c *geminiClient) GenerateInsights(ctx context.Context, ledger []model.Transaction) (string, error) {
	content, err := c.generate(ctx, "", nil, buildInsightsPrompt(ledger), false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// Chat continues the conversation with the ledger attached to every turn.
func (c *geminiClient) Chat(ctx context.Context, conv *Conversation, message string, ledger []model.Transaction) (string, error) {
	var history []ChatTurn
	if conv != nil {
		history = conv.Turns()
	}

	content, err := c.generate(ctx, chatSystemPrompt, history, buildChatPrompt(message, ledger), false)
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

// Package advisor is the seam to the generative-AI provider. It supports
// Gemini, OpenAI and Anthropic backends plus a deterministic local fallback,
// with retry logic, rate limiting and response caching. No operation ever
// surfaces a provider failure to the caller: every call site degrades to a
// documented fallback value.
package advisor

import (
	"context"
	"time"

	"github.com/finsight/finsight/internal/model"
)

// Client defines the interface for advisory providers.
type Client interface {
	// SuggestCategory proposes a category for a transaction description.
	SuggestCategory(ctx context.Context, description string) (model.Category, error)
	// ForecastExpenses projects cumulative debit spend for the next 30 days.
	ForecastExpenses(ctx context.Context, ledger []model.Transaction) ([]model.ForecastPoint, error)
	// GenerateInsights produces short markdown-flavored spending commentary.
	GenerateInsights(ctx context.Context, ledger []model.Transaction) (string, error)
	// Chat answers a question about the ledger, continuing the conversation.
	Chat(ctx context.Context, conv *Conversation, message string, ledger []model.Transaction) (string, error)
}

// Config holds configuration for the advisory gateway.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}

// forecastHorizonDays is how far forward ForecastExpenses projects.
const forecastHorizonDays = 30

// minHistoryForForecast is the debit count below which the gateway skips the
// provider and uses the local heuristic.
const minHistoryForForecast = 3

package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/model"
)

// Fallback strings returned when the provider cannot be reached. Callers
// render these directly; they are part of the gateway contract.
const (
	insightsUnavailable = "Could not generate insights at this time."
	chatUnavailable     = "Sorry, I'm having trouble connecting right now."
)

// Gateway wraps an advisory provider with retry, rate limiting, caching and
// deterministic local fallbacks. No Gateway method returns an error: total
// provider unavailability degrades to the documented fallback values.
type Gateway struct {
	client      Client
	fallback    *LocalClient
	cache       *suggestionCache
	rateLimiter *rateLimiter
	logger      *slog.Logger
	conv        *Conversation
	retryOpts   common.RetryOptions
	convMu      sync.Mutex
}

// NewGateway creates an advisory gateway for the configured provider. An
// unknown provider or a failed client construction (typically a missing API
// key) degrades to the local provider rather than failing: the application
// must stay functional offline.
func NewGateway(cfg Config, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := newProviderClient(cfg)
	if err != nil {
		logger.Warn("Advisory provider unavailable, using local fallback",
			"provider", cfg.Provider,
			"error", err)
		client = NewLocalClient()
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Gateway{
		client:      client,
		fallback:    NewLocalClient(),
		cache:       newSuggestionCache(cfg.CacheTTL),
		rateLimiter: newRateLimiter(cfg.RateLimit),
		logger:      logger,
		retryOpts:   retryOpts,
	}
}

// newProviderClient builds the raw client for the configured provider.
func newProviderClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return newGeminiClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	case "local", "":
		return NewLocalClient(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported advisory provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}

// SuggestCategory proposes a category for a description. It always returns a
// value from the closed category set; provider failure maps to Other via the
// local pattern matcher.
func (g *Gateway) SuggestCategory(ctx context.Context, description string) model.Category {
	if category, found := g.cache.get(description); found {
		g.logger.Debug("suggestion cache hit", "description", description)
		return category
	}

	var category model.Category
	err := g.callProvider(ctx, func() error {
		var callErr error
		category, callErr = g.client.SuggestCategory(ctx, description)
		return callErr
	})
	if err != nil {
		g.logger.Warn("Category suggestion failed, using local fallback", "error", err)
		category, _ = g.fallback.SuggestCategory(ctx, description)
	}

	g.cache.set(description, category)
	return category
}

// ForecastExpenses projects cumulative debit spend for the next 30 days.
// With fewer than three historical debits the provider is skipped entirely
// and the daily-average heuristic is used.
func (g *Gateway) ForecastExpenses(ctx context.Context, ledger []model.Transaction) []model.ForecastPoint {
	if countDebits(ledger) < minHistoryForForecast {
		g.logger.Debug("Not enough debit history for a provider forecast, using heuristic")
		points, _ := g.fallback.ForecastExpenses(ctx, ledger)
		return points
	}

	var points []model.ForecastPoint
	err := g.callProvider(ctx, func() error {
		var callErr error
		points, callErr = g.client.ForecastExpenses(ctx, ledger)
		return callErr
	})
	if err != nil {
		g.logger.Warn("Expense forecast failed, using heuristic fallback", "error", err)
		points, _ = g.fallback.ForecastExpenses(ctx, ledger)
	}
	return points
}

// GenerateInsights produces spending commentary, degrading to a fixed
// apology string on failure.
func (g *Gateway) GenerateInsights(ctx context.Context, ledger []model.Transaction) string {
	var insights string
	err := g.callProvider(ctx, func() error {
		var callErr error
		insights, callErr = g.client.GenerateInsights(ctx, ledger)
		return callErr
	})
	if err != nil {
		g.logger.Warn("Insight generation failed", "error", err)
		return insightsUnavailable
	}
	return insights
}

// StartConversation returns the session's conversation handle, creating it on
// first use. Calling it again returns the same handle with no side effects.
func (g *Gateway) StartConversation() *Conversation {
	g.convMu.Lock()
	defer g.convMu.Unlock()
	if g.conv == nil {
		g.conv = NewConversation()
	}
	return g.conv
}

// Chat answers a question about the ledger within the given conversation,
// degrading to a fixed trouble-connecting message on failure. The full
// current ledger is sent on every call.
func (g *Gateway) Chat(ctx context.Context, conv *Conversation, message string, ledger []model.Transaction) string {
	var reply string
	err := g.callProvider(ctx, func() error {
		var callErr error
		reply, callErr = g.client.Chat(ctx, conv, message, ledger)
		return callErr
	})
	if err != nil {
		g.logger.Warn("Chat request failed", "error", err)
		return chatUnavailable
	}
	return reply
}

// callProvider applies the rate limiter and retry policy around one provider
// operation.
func (g *Gateway) callProvider(ctx context.Context, operation func() error) error {
	return common.WithRetry(ctx, func() error {
		if err := g.rateLimiter.wait(ctx); err != nil {
			return err
		}
		return operation()
	}, g.retryOpts)
}

// Close releases background goroutines held by the cache and rate limiter.
func (g *Gateway) Close() {
	g.cache.Close()
	g.rateLimiter.Close()
}

func countDebits(ledger []model.Transaction) int {
	var n int
	for _, txn := range ledger {
		if txn.Type == model.Debit {
			n++
		}
	}
	return n
}

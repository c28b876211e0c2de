package advisor

import (
	"context"
	"fmt"
	"regexp"

	"github.com/finsight/finsight/internal/model"
)

// LocalClient is the deterministic offline provider. It is both the default
// when no API key is configured and the fallback every gateway operation
// degrades to when the real provider fails.
type LocalClient struct {
	now func() model.Date
}

// NewLocalClient creates the offline provider.
func NewLocalClient() *LocalClient {
	return &LocalClient{now: model.Today}
}

// defaultDailySpend is assumed when there is no debit history to average.
const defaultDailySpend = 50

var categoryPatterns = []struct {
	re       *regexp.Regexp
	category model.Category
}{
	{regexp.MustCompile(`(?i)paycheck|deposit|salary`), model.CategoryIncome},
	{regexp.MustCompile(`(?i)groceries|market|food`), model.CategoryGroceries},
	{regexp.MustCompile(`(?i)uber|lyft|transport|transit`), model.CategoryTransport},
	{regexp.MustCompile(`(?i)netflix|hulu|spotify|movie|cinema`), model.CategoryEntertainment},
	{regexp.MustCompile(`(?i)bill|electric|water|gas|internet`), model.CategoryUtilities},
	{regexp.MustCompile(`(?i)rent`), model.CategoryRent},
	{regexp.MustCompile(`(?i)amazon|target|shopping`), model.CategoryShopping},
}

// SuggestCategory matches the description against known merchant patterns.
// Unrecognized descriptions map to Other; it never fails.
func (c *LocalClient) SuggestCategory(_ context.Context, description string) (model.Category, error) {
	for _, p := range categoryPatterns {
		if p.re.MatchString(description) {
			return p.category, nil
		}
	}
	return model.CategoryOther, nil
}

// ForecastExpenses projects the daily average of the trailing 30 days of
// debits forward as a cumulative series.
func (c *LocalClient) ForecastExpenses(_ context.Context, ledger []model.Transaction) ([]model.ForecastPoint, error) {
	now := c.now()
	windowStart := now.AddDays(-forecastHorizonDays)

	var recentSpend float64
	for _, txn := range ledger {
		if txn.Type == model.Debit && !txn.Date.Before(windowStart) {
			recentSpend += txn.Amount
		}
	}

	dailyAverage := recentSpend / forecastHorizonDays
	if dailyAverage == 0 {
		dailyAverage = defaultDailySpend
	}

	points := make([]model.ForecastPoint, 0, forecastHorizonDays)
	var cumulative float64
	for i := 1; i <= forecastHorizonDays; i++ {
		cumulative += dailyAverage
		points = append(points, model.ForecastPoint{
			Date:     now.AddDays(i),
			Forecast: roundCents(cumulative),
		})
	}
	return points, nil
}

// GenerateInsights summarizes total debit spend with a fixed template.
func (c *LocalClient) GenerateInsights(_ context.Context, ledger []model.Transaction) (string, error) {
	var debitTotal float64
	for _, txn := range ledger {
		if txn.Type == model.Debit {
			debitTotal += txn.Amount
		}
	}
	return fmt.Sprintf(
		"* You've spent a total of **$%.2f** this month. Keep an eye on your spending goals!\n"+
			"* Consider reviewing your **Entertainment** category for potential savings.",
		debitTotal), nil
}

// Chat returns a fixed offline reply.
func (c *LocalClient) Chat(_ context.Context, conv *Conversation, message string, _ []model.Transaction) (string, error) {
	reply := "I'm running in offline mode and can't answer questions without an AI provider configured. Try the dashboard for a spending summary."
	if conv != nil {
		conv.Append(RoleUser, message)
		conv.Append(RoleAssistant, reply)
	}
	return reply, nil
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

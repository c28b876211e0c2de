package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/finsight/internal/model"
)

func TestLocalClient_SuggestCategory(t *testing.T) {
	ctx := context.Background()
	client := NewLocalClient()

	tests := []struct {
		name        string
		description string
		want        model.Category
	}{
		{name: "paycheck is income", description: "PAYCHECK DEPOSIT", want: model.CategoryIncome},
		{name: "market is groceries", description: "Whole Foods Market", want: model.CategoryGroceries},
		{name: "uber is transport", description: "UBER RIDE 4512", want: model.CategoryTransport},
		{name: "netflix is entertainment", description: "NETFLIX.COM", want: model.CategoryEntertainment},
		{name: "electric bill is utilities", description: "city electric bill", want: model.CategoryUtilities},
		{name: "rent", description: "MONTHLY RENT", want: model.CategoryRent},
		{name: "amazon is shopping", description: "AMZN Mktp AMAZON", want: model.CategoryShopping},
		{name: "unrecognized is Other", description: "XJ-9912 TERMINAL", want: model.CategoryOther},
		{name: "empty is Other", description: "", want: model.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.SuggestCategory(ctx, tt.description)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalClient_ForecastExpenses(t *testing.T) {
	ctx := context.Background()
	now := model.NewDate(2024, time.July, 1)
	client := &LocalClient{now: func() model.Date { return now }}

	t.Run("no history uses the default daily spend", func(t *testing.T) {
		points, err := client.ForecastExpenses(ctx, nil)
		require.NoError(t, err)
		require.Len(t, points, 30)

		assert.True(t, points[0].Date.Equal(now.AddDays(1)))
		assert.Equal(t, float64(defaultDailySpend), points[0].Forecast)
		assert.True(t, points[29].Date.Equal(now.AddDays(30)))
		assert.Equal(t, float64(defaultDailySpend*30), points[29].Forecast)
	})

	t.Run("forecast is cumulative over the recent daily average", func(t *testing.T) {
		ledger := []model.Transaction{
			{ID: "a", Date: now.AddDays(-5), Description: "x", Amount: 150, Type: model.Debit, Category: model.CategoryOther},
			{ID: "b", Date: now.AddDays(-10), Description: "y", Amount: 150, Type: model.Debit, Category: model.CategoryOther},
			{ID: "c", Date: now.AddDays(-45), Description: "too old", Amount: 9000, Type: model.Debit, Category: model.CategoryOther},
			{ID: "d", Date: now.AddDays(-2), Description: "credit", Amount: 500, Type: model.Credit, Category: model.CategoryIncome},
		}

		points, err := client.ForecastExpenses(ctx, ledger)
		require.NoError(t, err)
		require.Len(t, points, 30)

		// 300 over 30 days = 10/day, cumulative.
		assert.Equal(t, 10.0, points[0].Forecast)
		assert.Equal(t, 300.0, points[29].Forecast)
	})

	t.Run("deterministic for the same input", func(t *testing.T) {
		first, err := client.ForecastExpenses(ctx, nil)
		require.NoError(t, err)
		second, err := client.ForecastExpenses(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestLocalClient_GenerateInsights(t *testing.T) {
	ctx := context.Background()
	client := NewLocalClient()

	ledger := []model.Transaction{
		{ID: "a", Date: model.NewDate(2024, time.July, 1), Description: "x", Amount: 100.50, Type: model.Debit, Category: model.CategoryOther},
		{ID: "b", Date: model.NewDate(2024, time.July, 2), Description: "y", Amount: 400, Type: model.Credit, Category: model.CategoryIncome},
	}

	insights, err := client.GenerateInsights(ctx, ledger)
	require.NoError(t, err)
	assert.Contains(t, insights, "$100.50", "only debits count toward the spend total")
}

func TestLocalClient_ChatRecordsTurns(t *testing.T) {
	ctx := context.Background()
	client := NewLocalClient()
	conv := NewConversation()

	reply, err := client.Chat(ctx, conv, "how much did I spend?", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
	require.Equal(t, 2, conv.Len())
	assert.Equal(t, RoleUser, conv.Turns()[0].Role)
	assert.Equal(t, RoleAssistant, conv.Turns()[1].Role)
}

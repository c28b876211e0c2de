package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finsight/finsight/internal/model"
)

func TestRenderTransactionTable(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		out := RenderTransactionTable(nil)
		assert.Contains(t, out, "No transactions yet")
	})

	t.Run("rows carry date, description and amount", func(t *testing.T) {
		txns := []model.Transaction{
			{
				ID:          "abc-123",
				Date:        model.NewDate(2024, time.July, 1),
				Description: "WHOLE FOODS MARKET",
				Amount:      89.90,
				Type:        model.Debit,
				Category:    model.CategoryGroceries,
			},
			{
				ID:          "def-456",
				Date:        model.NewDate(2024, time.June, 28),
				Description: "PAYCHECK DEPOSIT",
				Amount:      3500,
				Type:        model.Credit,
				Category:    model.CategoryIncome,
			},
		}

		out := RenderTransactionTable(txns)
		assert.Contains(t, out, "2024-07-01")
		assert.Contains(t, out, "WHOLE FOODS MARKET")
		assert.Contains(t, out, "89.90")
		assert.Contains(t, out, "Groceries")
		assert.Contains(t, out, "3500.00")
	})

	t.Run("long descriptions are truncated", func(t *testing.T) {
		txns := []model.Transaction{{
			ID:          "abc",
			Date:        model.NewDate(2024, time.July, 1),
			Description: "A VERY LONG MERCHANT NAME THAT GOES ON AND ON AND ON FOREVER",
			Amount:      1,
			Type:        model.Debit,
			Category:    model.CategoryOther,
		}}

		out := RenderTransactionTable(txns)
		assert.Contains(t, out, "...")
		assert.NotContains(t, out, "ON FOREVER")
	})
}

func TestRenderCategorySpend(t *testing.T) {
	t.Run("empty spend", func(t *testing.T) {
		assert.Contains(t, RenderCategorySpend(nil), "No spending recorded")
	})

	t.Run("bars scale to the largest category", func(t *testing.T) {
		out := RenderCategorySpend([]model.CategorySpend{
			{Category: model.CategoryRent, Amount: 1200},
			{Category: model.CategoryGroceries, Amount: 300},
		})
		assert.Contains(t, out, "Rent")
		assert.Contains(t, out, "1200")
		assert.Contains(t, out, "Groceries")
		assert.Contains(t, out, "█")
	})
}

func TestRenderSpendSeries(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		assert.Contains(t, RenderSpendSeries(nil), "Nothing to project yet")
	})

	t.Run("forecast gaps render blank", func(t *testing.T) {
		forecast := 140.0
		out := RenderSpendSeries([]model.SeriesPoint{
			{Date: model.NewDate(2024, time.July, 1), Actual: 120},
			{Date: model.NewDate(2024, time.July, 2), Actual: 120, Forecast: &forecast},
		})
		assert.Contains(t, out, "2024-07-01")
		assert.Contains(t, out, "120.00")
		assert.Contains(t, out, "140.00")
	})
}

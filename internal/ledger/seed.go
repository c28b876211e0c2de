package ledger

import "github.com/finsight/finsight/internal/model"

// StarterLedger builds the fixed seed dataset used when no usable ledger is
// persisted. Dates are anchored relative to now so a fresh install always
// shows recent activity.
func StarterLedger(now model.Date) []model.Transaction {
	return []model.Transaction{
		{ID: "seed-1", Date: now.AddDays(-28), Description: "PAYCHECK DEPOSIT", Amount: 3500, Type: model.Credit, Category: model.CategoryIncome},
		{ID: "seed-2", Date: now.AddDays(-25), Description: "MONTHLY RENT", Amount: 1200, Type: model.Debit, Category: model.CategoryRent},
		{ID: "seed-3", Date: now.AddDays(-20), Description: "Trader Joes Groceries", Amount: 125.50, Type: model.Debit, Category: model.CategoryGroceries},
		{ID: "seed-4", Date: now.AddDays(-15), Description: "ELECTRICITY BILL", Amount: 75.20, Type: model.Debit, Category: model.CategoryUtilities},
		{ID: "seed-5", Date: now.AddDays(-10), Description: "NETFLIX", Amount: 15.99, Type: model.Debit, Category: model.CategoryEntertainment},
		{ID: "seed-6", Date: now.AddDays(-5), Description: "UBER RIDE", Amount: 22.45, Type: model.Debit, Category: model.CategoryTransport},
		{ID: "seed-7", Date: now, Description: "WHOLE FOODS MARKET", Amount: 89.90, Type: model.Debit, Category: model.CategoryGroceries},
	}
}

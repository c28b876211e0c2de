package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finsight/finsight/internal/model"
)

// chatSystemPrompt constrains the assistant to the supplied ledger data.
const chatSystemPrompt = `You are finsight, a helpful personal finance assistant. You will answer questions based ONLY on the user's transaction data provided in the prompt. Do not invent any data. If you don't know the answer, say so. Respond concisely. You can answer questions like 'How much did I spend on [Category]?' or 'Show my last 5 transactions'. You cannot set reminders or perform actions.`

func buildCategoryPrompt(description string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Categorize the following transaction description: %q\n\n", description))
	sb.WriteString("Choose exactly one of these categories:\n")
	for _, c := range model.Categories {
		sb.WriteString("- " + string(c) + "\n")
	}
	sb.WriteString("\nRespond with ONLY a JSON object of the form {\"category\": \"<name>\"}. No markdown, no commentary.")
	return sb.String()
}

func buildForecastPrompt(ledger []model.Transaction, now model.Date) string {
	type histPoint struct {
		Date   string  `json:"date"`
		Amount float64 `json:"amount"`
	}
	var hist []histPoint
	for _, txn := range ledger {
		if txn.Type == model.Debit {
			hist = append(hist, histPoint{Date: txn.Date.String(), Amount: txn.Amount})
		}
	}
	histJSON, _ := json.Marshal(hist)

	return fmt.Sprintf(
		"Based on the following historical daily expenses, project the CUMULATIVE daily expense for the next %d days. "+
			"Today's date is %s. "+
			"Respond with ONLY a JSON array of objects, each with \"date\" (YYYY-MM-DD) and \"forecast\" (the cumulative forecasted expense for that day). "+
			"No markdown fences, no commentary. Historical data: %s",
		forecastHorizonDays, now, histJSON)
}

func buildInsightsPrompt(ledger []model.Transaction) string {
	summary := make(map[string]float64)
	for _, txn := range ledger {
		if txn.Type == model.Debit {
			summary[string(txn.Category)] += txn.Amount
		}
	}
	summaryJSON, _ := json.Marshal(summary)

	return fmt.Sprintf(
		"Here is a summary of a user's spending this month by category: %s. "+
			"Provide 1-2 simple, personalized, text-based recommendations or insights in markdown format. "+
			"For example: \"You've spent $X on 'Category', which is Y%% higher than your average. Consider...\". "+
			"Keep the insights concise and actionable.",
		summaryJSON)
}

func buildChatPrompt(message string, ledger []model.Transaction) string {
	ledgerJSON, _ := json.Marshal(ledger)
	return fmt.Sprintf(
		"Here is the user's transaction data (JSON format): %s. The user asks: %q. Please answer based on the data provided.",
		ledgerJSON, message)
}

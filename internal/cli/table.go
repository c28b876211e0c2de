package cli

import (
	"fmt"
	"strings"

	"github.com/finsight/finsight/internal/model"
)

// RenderTransactionTable renders a ledger as an aligned table, newest first
// as given. Debit amounts are shown negative and red, credits positive and
// teal.
func RenderTransactionTable(txns []model.Transaction) string {
	if len(txns) == 0 {
		return SubtleStyle.Render("No transactions yet.")
	}

	descWidth := len("DESCRIPTION")
	for _, txn := range txns {
		if len(txn.Description) > descWidth {
			descWidth = len(txn.Description)
		}
	}
	if descWidth > 40 {
		descWidth = 40
	}

	var b strings.Builder
	header := fmt.Sprintf("%-10s  %-*s  %12s  %-13s  %s",
		"DATE", descWidth, "DESCRIPTION", "AMOUNT", "CATEGORY", "ID")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, txn := range txns {
		desc := txn.Description
		if len(desc) > descWidth {
			desc = desc[:descWidth-3] + "..."
		}

		amount := fmt.Sprintf("%.2f", txn.Amount)
		if txn.Type == model.Debit {
			amount = DebitStyle.Render("-" + amount)
		} else {
			amount = CreditStyle.Render("+" + amount)
		}

		b.WriteString(fmt.Sprintf("%-10s  %-*s  %12s  %-13s  %s\n",
			txn.Date.String(),
			descWidth, desc,
			amount,
			txn.Category,
			SubtleStyle.Render(txn.ID)))
	}

	return b.String()
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finsight/finsight/internal/cli"
	"github.com/finsight/finsight/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE:  runList,
	}

	cmd.Flags().String("category", "", "only show transactions in this category")
	cmd.Flags().String("type", "", "only show debit or credit transactions")
	cmd.Flags().Int("limit", 0, "show at most this many transactions")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	txns := store.Transactions()

	if categoryFlag, _ := cmd.Flags().GetString("category"); categoryFlag != "" {
		category, ok := model.ParseCategory(categoryFlag)
		if !ok {
			return fmt.Errorf("unknown category %q (valid: %s)", categoryFlag, categoryList())
		}
		txns = filterTransactions(txns, func(t model.Transaction) bool { return t.Category == category })
	}

	if typeFlag, _ := cmd.Flags().GetString("type"); typeFlag != "" {
		txnType, err := model.ParseTransactionType(typeFlag)
		if err != nil {
			return err
		}
		txns = filterTransactions(txns, func(t model.Transaction) bool { return t.Type == txnType })
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && limit < len(txns) {
		txns = txns[:limit]
	}

	fmt.Println(cli.FormatTitle("Transactions")) //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderTransactionTable(txns)) //nolint:forbidigo // User-facing output
	return nil
}

func filterTransactions(txns []model.Transaction, keep func(model.Transaction) bool) []model.Transaction {
	filtered := txns[:0:0]
	for _, txn := range txns {
		if keep(txn) {
			filtered = append(filtered, txn)
		}
	}
	return filtered
}

func categoryList() string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

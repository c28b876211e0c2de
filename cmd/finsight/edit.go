package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsight/finsight/internal/cli"
	"github.com/finsight/finsight/internal/model"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing transaction",
		Long: `Edit an existing transaction by id. Only the given flags change;
everything else keeps its current value.`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().String("date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().String("description", "", "new description")
	cmd.Flags().Float64("amount", 0, "new amount (positive)")
	cmd.Flags().String("type", "", "new type (debit or credit)")
	cmd.Flags().String("category", "", "new category")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	store, cleanup, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	txn, found := store.Find(id)
	if !found {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("No transaction with id %s; nothing to edit.", id))) //nolint:forbidigo // User-facing output
		return nil
	}

	if dateFlag, _ := cmd.Flags().GetString("date"); dateFlag != "" {
		date, parseErr := model.ParseDate(dateFlag)
		if parseErr != nil {
			return parseErr
		}
		txn.Date = date
	}
	if descFlag, _ := cmd.Flags().GetString("description"); descFlag != "" {
		txn.Description = descFlag
	}
	if amountFlag, _ := cmd.Flags().GetFloat64("amount"); amountFlag != 0 {
		txn.Amount = amountFlag
	}
	if typeFlag, _ := cmd.Flags().GetString("type"); typeFlag != "" {
		txnType, parseErr := model.ParseTransactionType(typeFlag)
		if parseErr != nil {
			return parseErr
		}
		txn.Type = txnType
	}
	if categoryFlag, _ := cmd.Flags().GetString("category"); categoryFlag != "" {
		category, ok := model.ParseCategory(categoryFlag)
		if !ok {
			return fmt.Errorf("unknown category %q (valid: %s)", categoryFlag, categoryList())
		}
		txn.Category = category
	}

	if err := store.Update(ctx, txn); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %s: %s %.2f (%s) as %s", //nolint:forbidigo // User-facing output
		txn.ID, txn.Description, txn.Amount, txn.Type, txn.Category)))
	return nil
}

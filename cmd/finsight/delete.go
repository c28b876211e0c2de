package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsight/finsight/internal/cli"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete transactions from the ledger",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, id := range args {
		if _, found := store.Find(id); !found {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("No transaction with id %s; skipping.", id))) //nolint:forbidigo // User-facing output
			continue
		}
		store.Delete(ctx, id)
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %s", id))) //nolint:forbidigo // User-facing output
	}

	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsight/finsight/internal/analytics"
	"github.com/finsight/finsight/internal/cli"
	"github.com/finsight/finsight/internal/model"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show spending breakdown, 30-day forecast and advisor insights",
		RunE:  runDashboard,
	}

	cmd.Flags().Bool("no-insights", false, "skip the advisor insights section")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	gateway := newGateway()
	defer gateway.Close()

	txns := store.Transactions()

	fmt.Println(cli.FormatTitle("Dashboard")) //nolint:forbidigo // User-facing output
	fmt.Println()                             //nolint:forbidigo // User-facing output

	fmt.Println(cli.RenderBox("Spending by category", //nolint:forbidigo // User-facing output
		cli.RenderCategorySpend(analytics.SpendByCategory(txns))))

	forecast := gateway.ForecastExpenses(ctx, txns)
	series := analytics.MergeActualWithForecast(txns, forecast, model.Today())
	fmt.Println(cli.RenderBox("Cumulative spend, last 30 days and next 30", //nolint:forbidigo // User-facing output
		cli.RenderSpendSeries(series)))

	if skip, _ := cmd.Flags().GetBool("no-insights"); !skip {
		insights := gateway.GenerateInsights(ctx, txns)
		fmt.Println(cli.RenderBox("Advisor insights", insights)) //nolint:forbidigo // User-facing output
	}

	return nil
}

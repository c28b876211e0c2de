package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/finsight/finsight/internal/advisor"
	"github.com/finsight/finsight/internal/cli"
	"github.com/finsight/finsight/internal/importer"
	"github.com/finsight/finsight/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import transactions from CSV or OFX/QFX files",
		Long: `Import transactions from bank export files.

CSV files need columns date,description,amount,type with an optional fifth
category column. OFX and QFX exports are parsed as-is. Rows without a
category are categorized by the advisor.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("format", "", "force file format (csv or ofx, default: by extension)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	gateway := newGateway()
	defer gateway.Close()

	formatFlag, _ := cmd.Flags().GetString("format")

	var inputs []model.TransactionInput
	for _, path := range args {
		fileInputs, err := parseImportFile(path, formatFlag)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		slog.Info("Parsed import file", "file", path, "transactions", len(fileInputs))
		inputs = append(inputs, fileInputs...)
	}

	if len(inputs) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found in the given files.")) //nolint:forbidigo // User-facing output
		return nil
	}

	categorize(ctx, gateway, inputs)

	added, err := store.AddBulk(ctx, inputs)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions.", len(added)))) //nolint:forbidigo // User-facing output
	return nil
}

func parseImportFile(path, formatFlag string) ([]model.TransactionInput, error) {
	format := formatFlag
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			format = "csv"
		case ".ofx", ".qfx":
			format = "ofx"
		default:
			return nil, fmt.Errorf("cannot tell the format from the extension, use --format")
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("Failed to close import file", "file", path, "error", closeErr)
		}
	}()

	switch format {
	case "csv":
		return importer.ReadCSV(file)
	case "ofx":
		return importer.NewOFXParser().ParseFile(file)
	default:
		return nil, fmt.Errorf("unknown format %q (csv or ofx)", format)
	}
}

// categorize fills in missing categories through the advisor, one row at a
// time behind a progress bar.
func categorize(ctx context.Context, gateway *advisor.Gateway, inputs []model.TransactionInput) {
	missing := 0
	for _, in := range inputs {
		if in.Category == "" {
			missing++
		}
	}
	if missing == 0 {
		return
	}

	bar := progressbar.NewOptions(missing,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Categorizing transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	for i := range inputs {
		if inputs[i].Category != "" {
			continue
		}
		inputs[i].Category = gateway.SuggestCategory(ctx, inputs[i].Description)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
}

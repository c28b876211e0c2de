package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/finsight/finsight/internal/advisor"
	"github.com/finsight/finsight/internal/cli"
	"github.com/finsight/finsight/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction to the ledger",
		Long: `Add a transaction to the ledger.

With --description and --amount the transaction is added directly; otherwise
an interactive prompt walks through the fields. When no category is given the
advisor suggests one from the description.`,
		RunE: runAdd,
	}

	cmd.Flags().String("date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().String("description", "", "transaction description")
	cmd.Flags().Float64("amount", 0, "transaction amount (positive)")
	cmd.Flags().String("type", "debit", "transaction type (debit or credit)")
	cmd.Flags().String("category", "", "category (default: ask the advisor)")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	gateway := newGateway()
	defer gateway.Close()

	description, _ := cmd.Flags().GetString("description")
	amount, _ := cmd.Flags().GetFloat64("amount")

	var input model.TransactionInput
	if description != "" && amount > 0 {
		input, err = inputFromFlags(cmd, description, amount)
	} else {
		input, err = promptTransaction(ctx, gateway)
	}
	if err != nil {
		return err
	}

	if input.Category == "" {
		input.Category = gateway.SuggestCategory(ctx, input.Description)
	}

	txn, err := store.Add(ctx, input)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s %s %.2f (%s) as %s", //nolint:forbidigo // User-facing output
		txn.Date, txn.Description, txn.Amount, txn.Type, txn.Category)))
	return nil
}

func inputFromFlags(cmd *cobra.Command, description string, amount float64) (model.TransactionInput, error) {
	input := model.TransactionInput{
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Date:        model.Today(),
	}

	if dateFlag, _ := cmd.Flags().GetString("date"); dateFlag != "" {
		date, err := model.ParseDate(dateFlag)
		if err != nil {
			return model.TransactionInput{}, err
		}
		input.Date = date
	}

	typeFlag, _ := cmd.Flags().GetString("type")
	txnType, err := model.ParseTransactionType(typeFlag)
	if err != nil {
		return model.TransactionInput{}, err
	}
	input.Type = txnType

	if categoryFlag, _ := cmd.Flags().GetString("category"); categoryFlag != "" {
		category, ok := model.ParseCategory(categoryFlag)
		if !ok {
			return model.TransactionInput{}, fmt.Errorf("unknown category %q (valid: %s)", categoryFlag, categoryList())
		}
		input.Category = category
	}

	return input, nil
}

// promptTransaction walks through the fields interactively. The advisor
// suggestion is requested as soon as the description is known so it is
// usually ready by the time the category prompt appears; re-entered
// descriptions supersede earlier in-flight suggestions.
func promptTransaction(ctx context.Context, gateway *advisor.Gateway) (model.TransactionInput, error) {
	fmt.Println(cli.FormatTitle("Add Transaction")) //nolint:forbidigo // User-facing output
	fmt.Println()                                   //nolint:forbidigo // User-facing output

	reader := bufio.NewReader(os.Stdin)
	suggester := advisor.NewSuggester(gateway)
	suggestionCh := make(chan model.Category, 8)

	var description string
	for {
		var err error
		description, err = promptString(reader, "Description")
		if err != nil {
			return model.TransactionInput{}, err
		}
		if description != "" {
			break
		}
		fmt.Println(cli.FormatError("Description cannot be empty.")) //nolint:forbidigo // User-facing output
	}
	suggester.Request(ctx, description, func(c model.Category) { suggestionCh <- c })

	amount, err := promptAmount(reader, "Amount")
	if err != nil {
		return model.TransactionInput{}, err
	}

	typeInput, err := promptChoice(reader, "Type (debit/credit)", []string{"debit", "credit"})
	if err != nil {
		return model.TransactionInput{}, err
	}
	txnType, _ := model.ParseTransactionType(typeInput)

	dateInput, err := promptString(reader, "Date (YYYY-MM-DD, empty for today)")
	if err != nil {
		return model.TransactionInput{}, err
	}
	date := model.Today()
	if dateInput != "" {
		date, err = model.ParseDate(dateInput)
		if err != nil {
			return model.TransactionInput{}, err
		}
	}

	category := awaitSuggestion(ctx, suggestionCh)
	if category != "" {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Advisor suggests: %s", category))) //nolint:forbidigo // User-facing output
	}
	categoryInput, err := promptString(reader, fmt.Sprintf("Category (empty for %s)", orOther(category)))
	if err != nil {
		return model.TransactionInput{}, err
	}
	if categoryInput != "" {
		parsed, ok := model.ParseCategory(categoryInput)
		if !ok {
			return model.TransactionInput{}, fmt.Errorf("unknown category %q (valid: %s)", categoryInput, categoryList())
		}
		category = parsed
	} else if category == "" {
		category = model.CategoryOther
	}

	return model.TransactionInput{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        txnType,
		Category:    category,
	}, nil
}

// awaitSuggestion waits briefly for a suggestion, then drains the channel so
// the latest one wins.
func awaitSuggestion(ctx context.Context, ch chan model.Category) model.Category {
	var category model.Category
	select {
	case category = <-ch:
	case <-ctx.Done():
		return ""
	case <-time.After(3 * time.Second):
		return ""
	}
	for {
		select {
		case category = <-ch:
		default:
			return category
		}
	}
}

func promptString(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s", cli.FormatPrompt(prompt)) //nolint:forbidigo // User-facing output

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(input), nil
}

func promptChoice(reader *bufio.Reader, prompt string, validChoices []string) (string, error) {
	for {
		input, err := promptString(reader, prompt)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		fmt.Println(cli.FormatError("Invalid choice. Please try again.")) //nolint:forbidigo // User-facing output
	}
}

func promptAmount(reader *bufio.Reader, prompt string) (float64, error) {
	for {
		input, err := promptString(reader, prompt)
		if err != nil {
			return 0, err
		}

		input = strings.TrimPrefix(input, "$")

		amount, err := strconv.ParseFloat(input, 64)
		if err != nil {
			fmt.Println(cli.FormatError("Please enter a valid amount (numbers only, no currency symbols needed)")) //nolint:forbidigo // User-facing output
			continue
		}

		if amount <= 0 {
			fmt.Println(cli.FormatError("Please enter an amount greater than $0")) //nolint:forbidigo // User-facing output
			continue
		}

		return amount, nil
	}
}

func orOther(c model.Category) model.Category {
	if c == "" {
		return model.CategoryOther
	}
	return c
}

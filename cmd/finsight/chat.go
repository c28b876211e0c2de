package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finsight/finsight/internal/cli"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask the advisor about your finances",
		Long: `Ask the advisor about your finances.

With a question argument, answers once and exits. Without one, starts an
interactive session; the conversation carries across turns. Exit with "quit"
or Ctrl+C.`,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	gateway := newGateway()
	defer gateway.Close()

	conv := gateway.StartConversation()

	// One-shot mode.
	if len(args) > 0 {
		reply := gateway.Chat(ctx, conv, strings.Join(args, " "), store.Transactions())
		fmt.Println(reply) //nolint:forbidigo // User-facing output
		return nil
	}

	handler := cli.NewInterruptHandler(os.Stdout)
	ctx = handler.HandleInterrupts(ctx)
	reader := cli.NewLineReader(os.Stdin)

	fmt.Println(cli.FormatTitle("Advisor chat"))                                    //nolint:forbidigo // User-facing output
	fmt.Println(cli.FormatInfo("Ask about your spending. Type \"quit\" to leave.")) //nolint:forbidigo // User-facing output
	fmt.Println()                                                                   //nolint:forbidigo // User-facing output

	for {
		fmt.Print(cli.FormatPrompt("you")) //nolint:forbidigo // User-facing output

		line, err := reader.ReadLine(ctx)
		if errors.Is(err, cli.ErrInputCancelled) || errors.Is(err, io.EOF) {
			fmt.Println() //nolint:forbidigo // User-facing output
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		reply := gateway.Chat(ctx, conv, line, store.Transactions())
		fmt.Println()      //nolint:forbidigo // User-facing output
		fmt.Println(reply) //nolint:forbidigo // User-facing output
		fmt.Println()      //nolint:forbidigo // User-facing output
	}
}

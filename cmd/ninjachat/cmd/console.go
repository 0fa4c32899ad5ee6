package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/ninjachat/internal/assistant"
	"github.com/msto63/ninjachat/internal/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Line based chat on the terminal",
	Long: `Starts the console variant. Every line is sent to the assistant, the
reply is printed and spoken. Type "exit" or press Ctrl+C to quit.`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		printError("console", err)
		return err
	}
	defer a.Close()

	fmt.Printf("Audio output directory: %s\n", a.Artifacts().Dir())

	ctrl, err := a.Controller(ctx, assistant.ConsoleFeatures())
	if err != nil {
		printError("console", err)
		return err
	}
	defer ctrl.Close()

	if !ctrl.Configured() {
		fmt.Fprintf(os.Stderr, "No API key found. Set OPENAI_API_KEY or run \"ninjachat apikey set\".\n")
	}

	return console.New(ctrl, console.Config{In: os.Stdin, Out: os.Stdout}).Run(ctx)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the chat models visible to the API key",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	services, _, err := a.Resolve()
	if err != nil {
		printError("connect", err)
		return err
	}
	if services == nil {
		return fmt.Errorf("no API key configured; set OPENAI_API_KEY or run \"ninjachat apikey set\"")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OpenAI.StatusCheck.Duration)
	defer cancel()

	models, err := services.Chat.ListModels(ctx)
	if err != nil {
		printError("list models", err)
		return err
	}

	fmt.Println("Available models")
	fmt.Println("================")
	for _, id := range models {
		marker := " "
		if id == services.Chat.Model() {
			marker = "*"
		}
		fmt.Printf(" %s %s\n", marker, id)
	}
	fmt.Println()
	fmt.Printf("%d models (* = configured chat model)\n", len(models))
	return nil
}

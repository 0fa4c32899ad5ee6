package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/ninjachat/internal/credential"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the stored API key",
	Long: `Stores, removes or inspects the OpenAI API key.

Examples:
  ninjachat apikey set sk-...     # Store the key
  ninjachat apikey set            # Read the key from stdin
  ninjachat apikey status         # Show where the key comes from
  ninjachat apikey clear          # Remove the stored key`,
	RunE: runAPIKeyStatus,
}

var apikeySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAPIKeySet,
}

var apikeyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE:  runAPIKeyClear,
}

var apikeyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active API key source",
	RunE:  runAPIKeyStatus,
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.AddCommand(apikeySetCmd)
	apikeyCmd.AddCommand(apikeyClearCmd)
	apikeyCmd.AddCommand(apikeyStatusCmd)
}

func runAPIKeySet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var key string
	if len(args) > 0 {
		key = args[0]
	} else {
		fmt.Print("API key: ")
		reader := bufio.NewReader(os.Stdin)
		key, _ = reader.ReadString('\n')
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("no API key given")
	}

	if err := a.Resolver().Update(key); err != nil {
		printError("save API key", err)
		return err
	}
	fmt.Printf("API key %s saved to %s\n", credential.Mask(key), a.Resolver().Store.Describe())
	return nil
}

func runAPIKeyClear(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Resolver().Clear(); err != nil {
		printError("remove API key", err)
		return err
	}
	fmt.Printf("API key removed from %s\n", a.Resolver().Store.Describe())
	return nil
}

func runAPIKeyStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	key, source := a.Resolver().Resolve()
	if source == credential.SourceNone {
		fmt.Println("No API key configured.")
		fmt.Println("Set OPENAI_API_KEY or run: ninjachat apikey set")
		return nil
	}
	fmt.Printf("API key:  %s\n", credential.Mask(key))
	fmt.Printf("Source:   %s\n", source)
	fmt.Printf("Store:    %s\n", a.Resolver().Store.Describe())
	return nil
}

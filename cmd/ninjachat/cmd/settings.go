package cmd

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/msto63/ninjachat/internal/personality"
	"github.com/msto63/ninjachat/internal/settings"
)

var settingsJSON bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or reset the persisted settings",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	RunE:  runSettingsShow,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	RunE:  runSettingsReset,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsResetCmd)

	settingsCmd.PersistentFlags().BoolVar(&settingsJSON, "json", false, "Print as JSON")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store := settings.NewStore(cfg.Resolve(cfg.Storage.SettingsFile))
	s := store.Load()

	if settingsJSON {
		data, err := sonic.ConfigStd.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Settings (%s)\n", store.Path())
	fmt.Println("==========================================")
	fmt.Printf("  Theme:        %s\n", s.Theme)
	fmt.Printf("  Voice:        %s\n", s.Voice)
	fmt.Printf("  Voice speed:  %.2f\n", s.VoiceSpeed)
	fmt.Printf("  Volume:       %.2f\n", s.Volume)
	for _, trait := range personality.AllTraits {
		fmt.Printf("  %-13s %.2f\n", trait.Label()+":", s.Trait(trait))
	}
	if s.CustomPrompt == "" {
		fmt.Println("  Prompt:       (default)")
	} else {
		fmt.Printf("  Prompt:       %s\n", s.CustomPrompt)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	store := settings.NewStore(cfg.Resolve(cfg.Storage.SettingsFile))
	if err := store.Reset(); err != nil {
		printError("reset settings", err)
		return err
	}
	fmt.Printf("Settings reset to defaults (%s)\n", store.Path())
	return nil
}

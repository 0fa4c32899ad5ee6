package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check API key, services and local storage",
	Long: `Runs diagnostic checks: credential, chat service reachability, audio
output directory, settings file, playback backend and turn journal.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		printError("doctor", err)
		return err
	}
	defer a.Close()

	report := a.Diagnostics().CheckWithTimeout(cfg.OpenAI.StatusCheck.Duration)

	fmt.Printf("%s v%s\n", report.App, report.Version)
	fmt.Println("==========================================")
	for _, c := range report.Checks {
		fmt.Printf("  %s %-14s %s (%s)\n", c.Status.Icon(), c.Name, c.Message, c.Duration.Round(time.Millisecond))
	}
	fmt.Println()
	fmt.Printf("Overall: %s\n", report.Status)

	if !report.Healthy() {
		return fmt.Errorf("diagnostics failed")
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/ninjachat/internal/app"
	"github.com/msto63/ninjachat/internal/assistant"
	"github.com/msto63/ninjachat/internal/tui/ninjachat"
)

var tuiBasic bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Starts the interactive terminal UI",
	Long: `Starts the terminal UI of the Cyber Ninja assistant.

Navigation:
  Enter     - Send message
  Tab       - Switch between input and settings panel
  ←/→       - Adjust the selected setting
  Ctrl+S    - Save settings
  Ctrl+E    - Save chat
  Ctrl+O    - Load chat
  Ctrl+K    - Set API key
  Ctrl+P    - Pause/resume playback
  Ctrl+X    - Stop playback
  Ctrl+C    - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().BoolVar(&tuiBasic, "basic", false, "Reduced UI with three personality sliders")
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		printError("tui", err)
		return err
	}
	defer a.Close()

	features := assistant.EnhancedFeatures()
	if tuiBasic {
		features = assistant.BasicFeatures()
	}

	ctrl, err := a.Controller(context.Background(), features)
	if err != nil {
		printError("tui", err)
		return err
	}
	defer ctrl.Close()

	var conn *ninjachat.Connection
	if services, _, err := a.Resolve(); err == nil && services != nil {
		conn = connection(services)
	}

	wd, _ := os.Getwd()
	err = ninjachat.Run(ninjachat.Config{
		Controller: ctrl,
		Welcome:    cfg.Assistant.Welcome,
		Connection: conn,
		Connect: func(key string) (*ninjachat.Connection, error) {
			services, err := a.Connect(key)
			if err != nil {
				return nil, err
			}
			return connection(services), nil
		},
		SaveKey:       a.Resolver().Update,
		StatusTimeout: cfg.OpenAI.StatusCheck.Duration,
		TranscriptDir: wd,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		return err
	}
	return nil
}

func connection(s *app.Services) *ninjachat.Connection {
	return &ninjachat.Connection{
		Chat:   s.Chat,
		Speech: s.Speech,
		Check:  s.Chat.HealthCheck,
	}
}

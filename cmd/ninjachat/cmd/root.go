package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/ninjachat/internal/app"
	"github.com/msto63/ninjachat/pkg/core/config"
	"github.com/msto63/ninjachat/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ninjachat",
	Short: "Cyber Ninja AI - chat assistant with spoken replies",
	Long: `ninjachat talks to a hosted chat model in the persona of a
"Cyber Ninja" assistant and speaks every reply aloud.

Variants:
  console  - line based chat on stdin/stdout
  tui      - terminal UI with voice, speed, volume and personality controls
  tui --basic
           - reduced terminal UI with three personality sliders

The API key is read from OPENAI_API_KEY or from the dot-file written by
"ninjachat apikey set".`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
	RunE: runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./ninjachat.toml or ~/.config/ninjachat/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.Flags().BoolVar(&tuiBasic, "basic", false, "Start the reduced terminal UI")
}

// loadConfig reads the configuration and sends logs to the log file
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.General.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.Configure(logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       level,
		Format:      cfg.General.LogFormat,
		File:        cfg.Resolve(cfg.General.LogFile),
	})
}

// newApp wires the components; callers must Close it
func newApp() (*app.App, error) {
	a, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("startup failed: %w", err)
	}
	return a, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}

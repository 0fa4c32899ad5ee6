package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyStats bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent turns from the journal",
	Long: `Lists the most recent turns recorded in the local SQLite journal.

Examples:
  ninjachat history
  ninjachat history --limit 50
  ninjachat history --stats`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of turns")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show journal statistics")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.OpenJournal()
	if err != nil {
		printError("open journal", err)
		return err
	}
	if store == nil {
		fmt.Println("The turn journal is disabled (storage.journal = \"off\").")
		return nil
	}

	if historyStats {
		stats, err := store.Statistics(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Journal statistics")
		fmt.Println("==================")
		for _, key := range []string{"total_conversations", "total_turns", "failed_turns", "avg_turns_per_conversation"} {
			if v, ok := stats[key]; ok {
				fmt.Printf("  %-28s %v\n", key+":", v)
			}
		}
		return nil
	}

	turns, err := store.RecentTurns(ctx, historyLimit)
	if err != nil {
		printError("read journal", err)
		return err
	}
	if len(turns) == 0 {
		fmt.Println("No turns recorded yet.")
		return nil
	}

	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		fmt.Printf("[%s] %s (%s)\n", t.StartedAt.Format("2006-01-02 15:04:05"), t.Voice, t.Duration().Round(time.Millisecond))
		fmt.Printf("  %s: %s\n", cfg.Assistant.UserLabel, truncate(t.UserText, 200))
		if t.Failed() {
			fmt.Printf("  %s: %s\n", cfg.Assistant.ErrorLabel, t.Error)
		} else {
			fmt.Printf("  %s: %s\n", cfg.Assistant.Name, truncate(t.Reply, 200))
		}
		if t.ArtifactPath != "" {
			fmt.Printf("  Audio: %s\n", t.ArtifactPath)
		}
		fmt.Println()
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

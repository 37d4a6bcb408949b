package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions and overall stats",
	Long: `Display your overall statistics and the most recent sessions.

Examples:
  typestrike history
  typestrike history --limit 50
  typestrike history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded sessions")
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	prof, err := openProfile(cfg)
	if err != nil {
		return fmt.Errorf("error opening sessions database: %w", err)
	}
	defer prof.Close()

	ctx := context.Background()

	if flagHistoryClear {
		if err := prof.store.ClearSessions(ctx); err != nil {
			return err
		}
		fmt.Println("Session history cleared.")
		return nil
	}

	overall, err := prof.store.Overall(ctx)
	if err != nil {
		return err
	}
	sessions, err := prof.store.RecentSessions(ctx, flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Println("TypeStrike - History")
	fmt.Println()

	if overall.Sessions == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'typestrike play' to record your first session!")
		return nil
	}

	fmt.Printf("  %-14s %d (%d completed)\n", "Sessions", overall.Sessions, overall.Completed)
	fmt.Printf("  %-14s %d\n", "Best score", overall.BestScore)
	fmt.Printf("  %-14s %.0f\n", "Average WPM", overall.AvgWPM)
	fmt.Printf("  %-14s %.0f%%\n", "Avg accuracy", overall.AvgAccuracy)
	fmt.Printf("  %-14s %s\n", "Time played", overall.TotalTime)
	fmt.Printf("  %-14s %s\n", "Last played", overall.LastPlayed.Local().Format("2006-01-02 15:04"))
	fmt.Println()

	fmt.Printf("  %-16s  %-5s  %-9s  %-7s  %-4s  %-4s  %s\n", "Date", "Level", "Outcome", "Score", "WPM", "Acc", "Combo")
	fmt.Printf("  %-16s  %-5s  %-9s  %-7s  %-4s  %-4s  %s\n", "----", "-----", "-------", "-----", "---", "---", "-----")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-5s  %-9s  %-7d  %-4d  %-4s  %d\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.LevelID,
			s.Outcome,
			s.Score,
			s.WPM,
			fmt.Sprintf("%d%%", s.Accuracy),
			s.BestCombo,
		)
	}
	return nil
}

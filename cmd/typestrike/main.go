// Package main provides the CLI entry point for TypeStrike.
//
// Usage:
//
//	typestrike play                    # Play in this terminal
//	typestrike play --difficulty hard  # Fewer lives, faster letters
//	typestrike autoplay --level 3      # Let the bot play a level headless
//	typestrike levels                  # List the curriculum
//	typestrike history                 # Show recent sessions and totals
//	typestrike achievements            # Show achievement progress
//	typestrike serve                   # Host games over SSH (+ stats API)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagEnvFile    string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "typestrike",
	Short: "TypeStrike - a falling-letters typing game",
	Long: `TypeStrike is a typing trainer played in the terminal.

Letters and words fall down the field; type them before they reach the
bottom. Twenty levels walk from the home row to symbols and full words.

Examples:
  typestrike play
  typestrike play --difficulty easy
  typestrike history
  typestrike serve --ssh :2222 --http :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Ticks per second (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the sessions database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Path to a .env file with coach credentials")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(serveCmd)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typestrike/internal/core"
	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/report"
	"github.com/vovakirdan/typestrike/internal/stats"
)

var (
	flagBotLevel     int
	flagBotReaction  float64
	flagBotErrorRate float64
	flagBotRecord    bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let a bot play one level headless",
	Long: `Run one level without a terminal UI. A bot types the lowest target
at a fixed reaction time, missing keys at the given error rate. The
session summary and coaching feedback are printed when the level ends.

Examples:
  typestrike autoplay
  typestrike autoplay --level 12 --reaction 0.15
  typestrike autoplay --error-rate 0.2 --seed 42 --record=false`,
	Args: cobra.NoArgs,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagBotLevel, "level", 1, "Level to play (1-based)")
	autoplayCmd.Flags().Float64Var(&flagBotReaction, "reaction", 0.2, "Seconds between bot keystrokes")
	autoplayCmd.Flags().Float64Var(&flagBotErrorRate, "error-rate", 0.05, "Probability of a wrong key, 0..1")
	autoplayCmd.Flags().BoolVar(&flagBotRecord, "record", true, "Save the session and evaluate achievements")
}

func runAutoplay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagBotLevel < 1 || flagBotLevel > typestrike.LevelCount() {
		return fmt.Errorf("level must be between 1 and %d", typestrike.LevelCount())
	}
	cfg.Gameplay.StartLevel = flagBotLevel

	logger, err := newLogger(os.Stderr, "typestrike")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var prof *profile
	if flagBotRecord {
		prof, err = openProfile(cfg)
		if err != nil {
			return err
		}
		defer prof.Close()
	}
	reporter := newReporter(ctx, prof, newCoach(cfg, logger), logger, report.DefaultTimeout)

	rc := runtimeConfig(cfg, 0, 0)
	game := typestrike.New(gameOptions(cfg, nil))
	game.Reset(rc)
	bot := typestrike.NewBot(flagBotReaction, flagBotErrorRate, rc.Seed)

	results := make(chan stats.Summary, 1)
	loop := typestrike.NewLoop(game, rc, func(g *typestrike.Game, _ typestrike.StepResult) {
		if s, ok := g.Result(); ok {
			select {
			case results <- s:
			default:
			}
			return
		}
		bot.Play(g)
	})

	loop.Start(ctx)
	defer loop.Stop()

	// Menu -> level card -> playing.
	loop.Trigger(core.ActionConfirm)
	loop.Trigger(core.ActionConfirm)

	lvl := typestrike.GetLevel(flagBotLevel - 1)
	logger.Info("bot playing", "level", lvl.ID, "name", lvl.Name, "seconds", lvl.Duration)

	var summary stats.Summary
	select {
	case summary = <-results:
	case <-ctx.Done():
		return ctx.Err()
	}
	loop.Stop()

	pending := reporter.Report(ctx, summary)
	pending.Wait()

	printSummary(summary)
	fmt.Println()
	fmt.Printf("Coach: %s\n", <-pending.Feedback)
	if unlocked := <-pending.Unlocked; len(unlocked) > 0 {
		fmt.Printf("Unlocked: %s\n", strings.Join(unlocked, ", "))
	}
	return nil
}

func printSummary(s stats.Summary) {
	title := "Level complete"
	if !s.Completed() {
		title = "Game over"
	}
	fmt.Printf("%s - %s %s\n", title, s.LevelID, s.LevelName)
	fmt.Println()
	fmt.Printf("  %-10s %d\n", "Score", s.Score)
	fmt.Printf("  %-10s %d\n", "WPM", s.WPM())
	fmt.Printf("  %-10s %d%%\n", "Accuracy", s.Accuracy())
	fmt.Printf("  %-10s %d\n", "Best combo", s.BestCombo)
	fmt.Printf("  %-10s %d\n", "Words", s.Words)
	fmt.Printf("  %-10s %s\n", "Time", s.Elapsed.Round(100*time.Millisecond))
	if weak := s.WeakLetters(3); len(weak) > 0 {
		fmt.Printf("  %-10s %s\n", "Weak keys", strings.Join(weak, " "))
	}
}

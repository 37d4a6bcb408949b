package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/typestrike/internal/audio"
	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/platform/tui"
	"github.com/vovakirdan/typestrike/internal/report"
)

var (
	flagLevel   int
	flagNoSound bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play TypeStrike in this terminal",
	Long: `Start the game. Pick a level in the menu and type the falling
letters and words before they reach the bottom.

Controls:
  Up/Down     - Choose the start level (menu)
  Enter/Space - Start / continue
  H / A       - History and achievements (menu)
  Esc         - Back to the menu
  R           - Retry (after game over)
  Ctrl+S      - Save a screenshot
  Ctrl+C      - Quit

Difficulty options:
  easy   - 7 lives, slower letters
  normal - 5 lives
  hard   - 3 lives, faster letters

Examples:
  typestrike play
  typestrike play --level 6
  typestrike play --difficulty hard --no-sound
  typestrike play --config ./my-typestrike.toml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level preselected in the menu (1-based, default from config)")
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable audio")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.typestrike/typestrike.log", "Where the game writes its log")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagLevel > 0 {
		cfg.Gameplay.StartLevel = flagLevel
	}
	if flagNoSound {
		cfg.Audio.Enabled = false
	}

	// The TUI owns the terminal, so the log goes to a file.
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "typestrike")
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	sound := audio.NewSoundManager(cfg.Audio)
	if initErr := sound.Initialize(); initErr != nil {
		logger.Warn("audio unavailable, playing muted", "err", initErr)
	}
	defer sound.Cleanup()

	ctx := context.Background()

	// Continue without storage - the game still works.
	prof, err := openProfile(cfg)
	if err != nil {
		logger.Warn("could not open sessions database", "path", cfg.Storage.Path, "err", err)
		prof = nil
	} else {
		defer prof.Close()
	}

	coach := newCoach(cfg, logger)
	reporter := newReporter(ctx, prof, coach, logger, report.DefaultTimeout)

	rc := runtimeConfig(cfg, width, height)
	game := typestrike.New(gameOptions(cfg, sound))
	game.Reset(rc)

	svc := prof.services(coach)
	logger.Info("starting", "difficulty", cfg.Gameplay.Difficulty, "level", cfg.Gameplay.StartLevel, "audio", sound.Active())

	if runErr := tui.Run(tui.Options{
		Game:         game,
		Reporter:     reporter,
		History:      svc.History,
		Achievements: svc.Achievements,
		Config:       rc,
		Context:      ctx,
		Logger:       logger,
	}); runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", mkErr)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

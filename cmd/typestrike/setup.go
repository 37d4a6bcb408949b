package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typestrike/internal/achievements"
	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/core"
	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/platform/tui"
	"github.com/vovakirdan/typestrike/internal/registry"
	"github.com/vovakirdan/typestrike/internal/report"
	"github.com/vovakirdan/typestrike/internal/storage"

	// Registers the coach providers.
	_ "github.com/vovakirdan/typestrike/internal/coach"
)

// loadConfig resolves the configuration from the --config, --env,
// --difficulty, --db and --fps flags.
func loadConfig() (config.Config, error) {
	if err := config.LoadEnv(flagEnvFile); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	// A preset named in the file only overrides the file's own lives and
	// speed when it is not the default; the flag always wins.
	name := flagDifficulty
	if name == "" && cfg.Gameplay.Difficulty != string(config.DifficultyNormal) {
		name = cfg.Gameplay.Difficulty
	}
	if name != "" {
		preset, parseErr := config.ParseDifficulty(name)
		if parseErr != nil {
			return cfg, parseErr
		}
		config.ApplyPreset(&cfg, preset)
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Gameplay.TickRate = flagFPS
	}
	return cfg, nil
}

// newLogger builds the CLI logger at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// runtimeConfig derives the host settings for a screen of w x h cells.
func runtimeConfig(cfg config.Config, w, h int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.ScreenW = w
	rc.ScreenH = h
	rc.TickRate = cfg.Gameplay.TickRate
	rc.MaxDelta = cfg.Gameplay.MaxTickDelta
	rc.Seed = flagSeed
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	return rc
}

// gameOptions maps gameplay settings onto a game setup.
func gameOptions(cfg config.Config, audio typestrike.Audio) typestrike.Options {
	opts := typestrike.DefaultOptions()
	opts.MaxLives = cfg.Gameplay.MaxLives
	opts.SpeedScale = cfg.Gameplay.SpeedScale
	opts.StartLevel = cfg.Gameplay.StartLevel - 1
	opts.Audio = audio
	return opts
}

// newCoach builds the configured coach. A disabled or broken provider
// yields nil so the reporter uses its fallback text.
func newCoach(cfg config.Config, logger *log.Logger) report.FeedbackProvider {
	c, err := registry.Create(cfg.Coach)
	if err != nil {
		logger.Warn("coach unavailable", "provider", cfg.Coach.Provider, "err", err)
		return nil
	}
	if c.Name() == "disabled" {
		return nil
	}
	logger.Debug("coach ready", "provider", c.Name())
	return c
}

// profile is the local player data: sessions and achievements.
type profile struct {
	store        *storage.Store
	achievements *achievements.Manager
}

func openProfile(cfg config.Config) (*profile, error) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	return &profile{
		store:        store,
		achievements: achievements.NewManager(store),
	}, nil
}

func (p *profile) Close() error {
	return p.store.Close()
}

// services exposes the profile to the SSH server. A nil profile disables
// persistence and achievements.
func (p *profile) services(coach report.FeedbackProvider) tui.Services {
	s := tui.Services{Coach: coach}
	if p == nil {
		return s
	}
	s.Recorder = p.store
	s.Evaluator = p.achievements
	s.History = p.store
	s.Achievements = p.achievements
	return s
}

// newReporter wires the collaborators and seeds the previous WPM from the
// latest stored session.
func newReporter(ctx context.Context, p *profile, coach report.FeedbackProvider, logger *log.Logger, timeout time.Duration) *report.Reporter {
	svc := p.services(coach)
	r := report.NewReporter(svc.Coach, svc.Recorder, svc.Evaluator, logger, timeout)
	if p == nil {
		return r
	}
	latest, err := p.store.LatestSession(ctx)
	if err != nil {
		logger.Warn("cannot load latest session", "err", err)
		return r
	}
	if latest != nil {
		r.SetPreviousWPM(latest.WPM)
	}
	return r
}

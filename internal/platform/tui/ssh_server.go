package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/typestrike/internal/core"
	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/report"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.typestrike/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the setup for every session's game. Audio is ignored:
	// sound would play on the server, not the player's machine.
	Game typestrike.Options

	// Runtime carries tick rate and delta bound for session hosts.
	Runtime core.RuntimeConfig

	// ReportTimeout bounds each collaborator call after a session.
	ReportTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:       ":23234",
		IdleTimeout:   30 * time.Minute,
		Game:          typestrike.DefaultOptions(),
		Runtime:       core.DefaultConfig(),
		ReportTimeout: report.DefaultTimeout,
	}
}

// Services are the collaborators shared by every session. Nil fields
// disable the matching feature.
type Services struct {
	Coach        report.FeedbackProvider
	Recorder     report.SessionRecorder
	Evaluator    report.AchievementEvaluator
	History      HistorySource
	Achievements AchievementLister
}

// SSHServer wraps a Wish SSH server serving TypeStrike sessions.
type SSHServer struct {
	config   SSHServerConfig
	services Services
	server   *ssh.Server
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, services Services, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "typestrike-ssh",
		})
	}

	srv := &SSHServer{
		config:   cfg,
		services: services,
		logger:   logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".typestrike", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	return s.newSessionModel(sshSession.Context(), sshSession.User(), pty.Window.Width, pty.Window.Height),
		[]tea.ProgramOption{tea.WithAltScreen()}
}

// newSessionModel builds the game, reporter and host for one connection.
func (s *SSHServer) newSessionModel(ctx context.Context, user string, width, height int) Model {
	cfg := s.config.Runtime
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.Seed = time.Now().UnixNano()

	gameOpts := s.config.Game
	gameOpts.Audio = nil
	game := typestrike.New(gameOpts)
	game.Reset(cfg)

	logger := s.logger.With("user", user)
	reporter := report.NewReporter(
		s.services.Coach,
		s.services.Recorder,
		s.services.Evaluator,
		logger,
		s.config.ReportTimeout,
	)
	reporter.SetPreviousWPM(LatestWPM(ctx, s.services.History))

	return NewModel(Options{
		Game:         game,
		Reporter:     reporter,
		History:      s.services.History,
		Achievements: s.services.Achievements,
		Config:       cfg,
		Context:      ctx,
		Logger:       logger,
	})
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done or
// the listener fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("ssh: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

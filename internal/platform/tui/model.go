package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typestrike/internal/core"
	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/report"
)

// FeedbackMsg carries coaching text for a finished session.
type FeedbackMsg struct {
	SessionID string
	Text      string
}

// UnlockedMsg carries the achievements a finished session unlocked.
type UnlockedMsg struct {
	SessionID string
	Names     []string
}

// Options configures a Model. Everything except Game is optional.
type Options struct {
	Game         *typestrike.Game
	Reporter     *report.Reporter
	History      HistorySource
	Achievements AchievementLister
	Config       core.RuntimeConfig
	Context      context.Context
	Logger       *log.Logger
}

// Model is the Bubble Tea model hosting a TypeStrike game.
// Update serializes keys and ticks, so the game is never touched concurrently.
type Model struct {
	game     *typestrike.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	reporter *report.Reporter
	history  HistorySource
	lister   AchievementLister
	ctx      context.Context
	logger   *log.Logger
	keys     *KeyMapper
	input    core.InputFrame

	gen     uint64    // Loop generation; ticks carrying another value are stale
	running bool      // Whether ticks are being scheduled
	last    time.Time // Time of the previous accepted tick

	board    *BoardModel
	quitting bool
}

// NewModel creates a new Bubble Tea model for the game.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:     opts.Game,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:   cfg,
		reporter: opts.Reporter,
		history:  opts.History,
		lister:   opts.Achievements,
		ctx:      ctx,
		logger:   logger,
		keys:     NewKeyMapper(),
		input:    core.NewInputFrame(),
		gen:      1,
		running:  true,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameInterval(), m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.board != nil {
		if _, isTick := msg.(TickMsg); !isTick {
			return m.updateBoard(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)

	case FeedbackMsg:
		if !m.game.SetFeedback(msg.SessionID, msg.Text) {
			m.logger.Debug("Dropped stale feedback", "session", msg.SessionID)
		}
		return m, nil

	case UnlockedMsg:
		m.game.SetUnlocked(msg.SessionID, msg.Names)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input. Keys are applied to the game as they
// arrive; ticks only advance time.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	m.input.Clear()
	ev := m.keys.MapKeyToFrame(msg, m.game.Phase(), &m.input)

	switch {
	case ev.Quit():
		m.stop()
		m.quitting = true
		return m, tea.Quit

	case ev.Open != BoardNone:
		m.stop()
		board := NewBoardModel(m.ctx, m.history, m.lister, ev.Open, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		return m, board.Init()
	}

	res := m.game.Step(m.input)
	m.input.Clear()
	return m, m.onStep(res)
}

// handleResize processes window resize events. The canvas is projected
// onto whatever size the terminal has, so the session continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation by the bounded wall-clock delta.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.running || msg.Gen != m.gen {
		return m, nil
	}

	var dt time.Duration
	if !m.last.IsZero() {
		dt = m.config.BoundDelta(msg.Time.Sub(m.last))
	}
	m.last = msg.Time

	m.input.Clear()
	m.input.Dt = dt
	res := m.game.Step(m.input)
	m.input.Clear()

	return m, tea.Batch(tickCmd(m.config.FrameInterval(), m.gen), m.onStep(res))
}

// onStep dispatches the session report when a step ended a session.
func (m Model) onStep(res typestrike.StepResult) tea.Cmd {
	if !res.Ended {
		return nil
	}
	summary, ok := m.game.Result()
	if !ok {
		return nil
	}

	m.logger.Info("Session finished",
		"session", summary.SessionID,
		"level", summary.LevelID,
		"outcome", summary.Outcome,
		"score", summary.Score,
	)

	if m.reporter == nil {
		m.game.SetFeedback(summary.SessionID, report.FallbackFeedback(summary.Score))
		return nil
	}

	p := m.reporter.Report(m.ctx, summary)
	return tea.Batch(waitFeedback(p), waitUnlocked(p))
}

func waitFeedback(p *report.Pending) tea.Cmd {
	return func() tea.Msg {
		return FeedbackMsg{SessionID: p.SessionID, Text: <-p.Feedback}
	}
}

func waitUnlocked(p *report.Pending) tea.Cmd {
	return func() tea.Msg {
		return UnlockedMsg{SessionID: p.SessionID, Names: <-p.Unlocked}
	}
}

// updateBoard routes messages to the open history/achievements board.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		m.screen.Resize(wsm.Width, wsm.Height)
	}

	next, cmd := m.board.Update(msg)
	if board, ok := next.(BoardModel); ok {
		m.board = &board
	}

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		m.board = nil
		return m, m.start()
	}

	// Feedback can land while a board is open.
	switch msg := msg.(type) {
	case FeedbackMsg:
		m.game.SetFeedback(msg.SessionID, msg.Text)
	case UnlockedMsg:
		m.game.SetUnlocked(msg.SessionID, msg.Names)
	}
	return m, cmd
}

// stop halts ticking. Ticks already in flight carry the old generation
// and are dropped. Calling stop twice is harmless.
func (m *Model) stop() {
	if !m.running {
		return
	}
	m.running = false
	m.gen++
}

// start resumes ticking under a new generation.
func (m *Model) start() tea.Cmd {
	m.stop()
	m.running = true
	m.last = time.Time{}
	return tickCmd(m.config.FrameInterval(), m.gen)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir, err := screenshotDir()
	if err != nil {
		m.logger.Warn("Cannot save screenshot", "err", err)
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func screenshotDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".typestrike", "screenshots"), nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Running reports whether the tick loop is active.
func (m Model) Running() bool {
	return m.running
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

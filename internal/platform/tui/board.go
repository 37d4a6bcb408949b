package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/typestrike/internal/achievements"
	"github.com/vovakirdan/typestrike/internal/stats"
	"github.com/vovakirdan/typestrike/internal/storage"
)

// Board layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the board list sidebar
	sidebarWidth       = 20 // Width of board list sidebar
	maxSessions        = 100
	loadTimeout        = 5 * time.Second
)

// HistorySource provides past sessions.
type HistorySource interface {
	RecentSessions(ctx context.Context, limit int) ([]stats.SessionRecord, error)
	Overall(ctx context.Context) (storage.OverallStats, error)
}

// AchievementLister provides achievement progress.
type AchievementLister interface {
	All(ctx context.Context) ([]achievements.Achievement, error)
}

// BoardKeyMap defines the key bindings for the history and achievements boards.
type BoardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Next  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next},
		{k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var boardTitles = map[Board]string{
	BoardHistory:      "History",
	BoardAchievements: "Achievements",
}

var boardOrder = []Board{BoardHistory, BoardAchievements}

// BoardModel shows session history or achievement progress in a table.
type BoardModel struct {
	ctx          context.Context
	history      HistorySource
	lister       AchievementLister
	board        Board
	sessions     []stats.SessionRecord
	overall      storage.OverallStats
	achievements []achievements.Achievement
	loadErr      error
	table        table.Model
	help         help.Model
	keys         BoardKeyMap
	width        int
	height       int
	quitting     bool
	goingBack    bool
	showSidebar  bool
}

// NewBoardModel creates a board opened on the given tab and loads its data.
func NewBoardModel(ctx context.Context, history HistorySource, lister AchievementLister, board Board, width, height int) BoardModel {
	if board == BoardNone {
		board = BoardHistory
	}
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := BoardModel{
		ctx:         ctx,
		history:     history,
		lister:      lister,
		board:       board,
		keys:        DefaultBoardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

// createTable creates a table with columns for the current board.
func (m *BoardModel) createTable() table.Model {
	tableWidth := m.width - 8 // Margins and border
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	var columns []table.Column
	if m.board == BoardAchievements {
		columns = []table.Column{
			{Title: "", Width: 2},
			{Title: "Achievement", Width: 18},
			{Title: "Progress", Width: 10},
			{Title: "Description", Width: atLeastOne(tableWidth - 36)},
		}
	} else {
		columns = []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Level", Width: 18},
			{Title: "Result", Width: 8},
			{Title: "Score", Width: 7},
			{Title: "WPM", Width: 4},
			{Title: "Acc", Width: 4},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(atLeastOne(m.height-10)), // Leave room for header, summary and help
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// load fetches the data for the current board and rebuilds the table.
func (m *BoardModel) load() {
	ctx, cancel := context.WithTimeout(m.ctx, loadTimeout)
	defer cancel()

	m.loadErr = nil
	switch m.board {
	case BoardAchievements:
		m.achievements = nil
		if m.lister != nil {
			m.achievements, m.loadErr = m.lister.All(ctx)
		}
	default:
		m.sessions = nil
		m.overall = storage.OverallStats{}
		if m.history != nil {
			if m.sessions, m.loadErr = m.history.RecentSessions(ctx, maxSessions); m.loadErr == nil {
				m.overall, m.loadErr = m.history.Overall(ctx)
			}
		}
	}
	m.table = m.createTable()
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded data.
func (m *BoardModel) updateTableRows() {
	var rows []table.Row
	if m.board == BoardAchievements {
		rows = make([]table.Row, len(m.achievements))
		for i, a := range m.achievements {
			mark := " "
			if a.Unlocked {
				mark = "*"
			}
			rows[i] = table.Row{mark, a.Name, progressText(a), a.Description}
		}
	} else {
		rows = make([]table.Row, len(m.sessions))
		for i, s := range m.sessions {
			result := "cleared"
			if s.Outcome != stats.OutcomeComplete {
				result = "failed"
			}
			rows[i] = table.Row{
				s.CreatedAt.Local().Format("Jan 02 15:04"),
				s.LevelName,
				result,
				fmt.Sprintf("%d", s.Score),
				fmt.Sprintf("%d", s.WPM),
				fmt.Sprintf("%d%%", s.Accuracy),
			}
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

func progressText(a achievements.Achievement) string {
	if a.Unlocked {
		return "done"
	}
	if a.Target <= 1 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", a.Progress, a.Target)
}

func (m *BoardModel) switchBoard(step int) {
	idx := 0
	for i, b := range boardOrder {
		if b == m.board {
			idx = i
		}
	}
	idx = (idx + step + len(boardOrder)) % len(boardOrder)
	m.board = boardOrder[idx]
	m.load()
}

// Init initializes the board model.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Right):
			m.switchBoard(1)
			return m, nil

		case key.Matches(msg, m.keys.Left):
			m.switchBoard(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := strings.ToUpper(boardTitles[m.board])
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar listing both boards.
func (m BoardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Boards\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for _, board := range boardOrder {
		cursor := "  "
		style := lipgloss.NewStyle()
		if board == m.board {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + boardTitles[board]))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	right := lipgloss.JoinVertical(lipgloss.Left, m.summaryLine(), tableStyle.Render(m.renderTableContent()))
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(sidebar.String()), "  ", right)
}

// renderNarrowLayout renders the board with tabs above the table.
func (m BoardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(boardOrder))
	for i, board := range boardOrder {
		if board == m.board {
			tabs[i] = activeTabStyle.Render(boardTitles[board])
		} else {
			tabs[i] = tabStyle.Render(" " + boardTitles[board] + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.summaryLine(), m.width))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// summaryLine shows overall stats or the unlock count.
func (m BoardModel) summaryLine() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	if m.board == BoardAchievements {
		unlocked := 0
		for _, a := range m.achievements {
			if a.Unlocked {
				unlocked++
			}
		}
		return style.Render(fmt.Sprintf("%d of %d unlocked", unlocked, len(m.achievements)))
	}

	o := m.overall
	if o.Sessions == 0 {
		return style.Render("No sessions yet")
	}
	return style.Render(fmt.Sprintf("%d sessions  best %d  avg %.0f wpm  avg %.0f%%  %s played",
		o.Sessions, o.BestScore, o.AvgWPM, o.AvgAccuracy, o.TotalTime.Round(time.Second)))
}

// renderTableContent renders the table or an empty/error message.
func (m BoardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load data:\n" + m.loadErr.Error())
	}
	if m.board == BoardHistory && len(m.sessions) == 0 {
		return emptyStyle.Render("No sessions recorded yet.\nFinish a level to start your history!")
	}
	if m.board == BoardAchievements && len(m.achievements) == 0 {
		return emptyStyle.Render("Achievements are unavailable.")
	}
	return m.table.View()
}

// Board returns the board currently shown.
func (m BoardModel) Board() Board {
	return m.board
}

// IsGoingBack returns true if user wants to go back to the game menu.
func (m BoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m BoardModel) IsQuitting() bool {
	return m.quitting
}

// LatestWPM returns the WPM of the most recent stored session, or 0.
func LatestWPM(ctx context.Context, history HistorySource) int {
	if history == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	recent, err := history.RecentSessions(ctx, 1)
	if err != nil || len(recent) == 0 {
		return 0
	}
	return recent[0].WPM
}

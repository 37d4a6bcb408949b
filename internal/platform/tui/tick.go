// Package tui provides the Bubble Tea host for TypeStrike.
// It handles the terminal UI loop, input mapping, and session reporting.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the loop run that scheduled it; ticks from a stopped
// run are dropped.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends a tick after one frame interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

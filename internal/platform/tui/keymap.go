package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typestrike/internal/core"
	"github.com/vovakirdan/typestrike/internal/games/typestrike"
)

// Board names a secondary screen reachable from the menu.
type Board int

const (
	BoardNone Board = iota
	BoardHistory
	BoardAchievements
)

// KeyEvent is what a single key press means in the current phase.
type KeyEvent struct {
	Action core.Action // ActionNone when the key carries no event
	Runes  []rune      // Characters typed while playing
	Open   Board       // Board requested from the menu
}

// Quit reports whether the key asks to leave the program.
func (e KeyEvent) Quit() bool {
	return e.Action == core.ActionQuit
}

// KeyMapper translates Bubble Tea key messages to game events.
// Letters are gameplay input while playing, so bindings depend on the phase.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message for the given phase.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, phase typestrike.Phase) KeyEvent {
	key := msg.String()

	// Global quit key
	if key == "ctrl+c" {
		return KeyEvent{Action: core.ActionQuit}
	}

	switch phase {
	case typestrike.PhasePlaying:
		if key == "esc" {
			return KeyEvent{Action: core.ActionMenu}
		}
		if msg.Type == tea.KeyRunes && !msg.Alt {
			return KeyEvent{Runes: append([]rune(nil), msg.Runes...)}
		}

	case typestrike.PhaseMenu:
		switch key {
		case "up", "k", "w":
			return KeyEvent{Action: core.ActionUp}
		case "down", "j", "s":
			return KeyEvent{Action: core.ActionDown}
		case "enter", " ":
			return KeyEvent{Action: core.ActionConfirm}
		case "h":
			return KeyEvent{Open: BoardHistory}
		case "a":
			return KeyEvent{Open: BoardAchievements}
		case "q", "esc":
			return KeyEvent{Action: core.ActionQuit}
		}

	case typestrike.PhaseLevelStart, typestrike.PhaseLevelComplete:
		switch key {
		case "enter", " ":
			return KeyEvent{Action: core.ActionConfirm}
		case "esc", "m":
			return KeyEvent{Action: core.ActionMenu}
		}

	case typestrike.PhaseGameOver:
		switch key {
		case "r":
			return KeyEvent{Action: core.ActionRetry}
		case "enter", " ":
			return KeyEvent{Action: core.ActionConfirm}
		case "esc", "m":
			return KeyEvent{Action: core.ActionMenu}
		}
	}

	return KeyEvent{}
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns the event so the caller can handle quit and board requests.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, phase typestrike.Phase, frame *core.InputFrame) KeyEvent {
	ev := km.MapKey(msg, phase)
	if ev.Action != core.ActionNone && !ev.Quit() {
		frame.Set(ev.Action)
	}
	for _, r := range ev.Runes {
		frame.Type(r)
	}
	return ev
}

package core

import (
	"time"
	"unicode"
)

// Action represents an abstract state-machine event, decoupled from the
// physical key that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow - previous start level in the menu
	ActionDown           // Down arrow - next start level in the menu
	ActionConfirm        // Enter/Space - acknowledge or advance
	ActionMenu           // Esc or M outside of play - return to the menu
	ActionRetry          // R after game over - restart from level 1
	ActionQuit           // Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionMenu:
		return "Menu"
	case ActionRetry:
		return "Retry"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects everything that happened between two frames:
// abstract actions, typed characters in arrival order, and the elapsed time.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Keys holds typed characters in the order they arrived.
	Keys []rune

	// Dt is the wall-clock time elapsed since the previous frame.
	Dt time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Type queues a typed character for this frame.
func (f *InputFrame) Type(r rune) {
	f.Keys = append(f.Keys, r)
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Keys = f.Keys[:0]
	f.Dt = 0
}

// punctuation accepted as typed input besides letters and digits.
const punctuation = ";,./'-"

// NormalizeKey uppercases r and reports whether it is an accepted
// typing character: A-Z, 0-9 and a small punctuation set.
func NormalizeKey(r rune) (rune, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return unicode.ToUpper(r), true
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r, true
	}
	for _, p := range punctuation {
		if r == p {
			return r, true
		}
	}
	return 0, false
}

// Package stats turns a finished level into the numbers the rest of the
// system consumes: accuracy, WPM, weak letters, and the payloads sent to
// the coaching, persistence and achievement collaborators.
package stats

import (
	"math"
	"sort"
	"time"
)

// Outcome is how a session ended.
type Outcome string

const (
	OutcomeComplete Outcome = "complete"
	OutcomeGameOver Outcome = "game_over"
)

// Summary is the frozen state of a session when it reaches LevelComplete
// or GameOver.
type Summary struct {
	SessionID    string
	Outcome      Outcome
	LevelID      string
	LevelOrdinal int
	LevelName    string
	Score        int
	Correct      int // correct keystrokes
	Total        int // all accepted keystrokes
	Elapsed      time.Duration
	BestCombo    int
	Words        int // word targets completed
	EasterEggs   int // easter eggs activated
	Misses       map[rune]int
	FinishedAt   time.Time
}

// Completed reports whether the level was cleared.
func (s Summary) Completed() bool {
	return s.Outcome == OutcomeComplete
}

// Accuracy returns the rounded accuracy percentage of the session.
func (s Summary) Accuracy() int {
	return Accuracy(s.Correct, s.Total)
}

// WPM returns the rounded words per minute of the session.
func (s Summary) WPM() int {
	return WPM(s.Correct, s.Elapsed)
}

// WeakLetters returns up to top characters the player missed at least twice,
// most missed first.
func (s Summary) WeakLetters(top int) []string {
	return WeakLetters(s.Misses, top)
}

// Accuracy is round(100 * correct / total), or 100 when nothing was typed.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// WPM is round((correct / 5) / minutes), or 0 for a zero duration.
func WPM(correct int, elapsed time.Duration) int {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return int(math.Round((float64(correct) / 5) / minutes))
}

// minWeakMisses is the miss count at which a character counts as weak.
const minWeakMisses = 2

// WeakLetters picks the most-missed characters from a miss histogram.
// Ties are broken alphabetically so the result is stable.
func WeakLetters(misses map[rune]int, top int) []string {
	type entry struct {
		char  rune
		count int
	}
	candidates := make([]entry, 0, len(misses))
	for r, n := range misses {
		if n >= minWeakMisses {
			candidates = append(candidates, entry{char: r, count: n})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count == candidates[j].count {
			return candidates[i].char < candidates[j].char
		}
		return candidates[i].count > candidates[j].count
	})
	if top > 0 && len(candidates) > top {
		candidates = candidates[:top]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = string(c.char)
	}
	return out
}

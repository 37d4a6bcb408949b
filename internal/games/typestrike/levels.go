// Package typestrike implements the falling-letters typing game: a level
// catalog, a pool of falling targets, word-priority input matching, combo
// scoring, easter eggs and the menu/level/game-over state machine.
// The game is a pure simulation driven by Step; hosts own timing and I/O.
package typestrike

import (
	"errors"
	"fmt"
)

// Level defines one stage of the curriculum.
type Level struct {
	ID          string   // "world-stage", e.g. "1-3"
	Number      int      // Ordinal, 1-based and contiguous
	Name        string
	Letters     []string // Single characters eligible to spawn
	Words       []string // Optional whole words eligible to spawn
	FallSpeed   float64  // Canvas units per second
	SpawnRate   float64  // Seconds between spawns
	Duration    float64  // Seconds to survive
	Description string
	Hint        string
	EasterEgg   string // Optional clue shown on the level card
}

// HasWords reports whether the level can spawn word targets.
func (l *Level) HasWords() bool {
	return len(l.Words) > 0
}

var (
	homeRow   = []string{"A", "S", "D", "F", "G", "H", "J", "K", "L", ";"}
	upperRow  = []string{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"}
	lowerRow  = []string{"Z", "X", "C", "V", "B", "N", "M", ",", ".", "/"}
	numberRow = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}
)

func join(sets ...[]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// Levels is the 20-level curriculum: home and upper rows (1-5), lower row
// (6-10), number row (11-15), words and the final boss (16-20).
var Levels = []Level{
	{
		ID: "1-1", Number: 1, Name: "F & J",
		Letters:   []string{"F", "J"},
		FallSpeed: 100, SpawnRate: 2.0, Duration: 30,
		Description: "Find the bumps on F and J. Your index fingers live here.",
		Hint:        "Keep your index fingers resting on F and J.",
	},
	{
		ID: "1-2", Number: 2, Name: "D & K",
		Letters:   []string{"D", "K", "F", "J"},
		FallSpeed: 110, SpawnRate: 1.8, Duration: 30,
		Description: "Middle fingers join in.",
		Hint:        "Middle fingers rest on D and K.",
	},
	{
		ID: "1-3", Number: 3, Name: "S & L",
		Letters:   []string{"S", "L", "D", "K", "F", "J"},
		FallSpeed: 120, SpawnRate: 1.6, Duration: 30,
		Description: "Ring fingers reach S and L.",
		Hint:        "Do not look at the keyboard. Trust the bumps.",
		EasterEgg:   "Lost too many lives? Some say three letters can call for help...",
	},
	{
		ID: "1-4", Number: 4, Name: "Home Row",
		Letters:   homeRow,
		FallSpeed: 130, SpawnRate: 1.5, Duration: 45,
		Description: "The whole home row, pinkies included.",
		Hint:        "Pinkies cover A and ;. Return to home after every key.",
	},
	{
		ID: "1-5", Number: 5, Name: "Upper Row",
		Letters:   join(upperRow, []string{"F", "J"}),
		FallSpeed: 140, SpawnRate: 1.3, Duration: 60,
		Description: "Reach up from the home row.",
		Hint:        "Reach up, strike, and come straight back home.",
	},
	{
		ID: "2-1", Number: 6, Name: "V & M",
		Letters:   []string{"V", "M", "F", "J"},
		FallSpeed: 145, SpawnRate: 1.3, Duration: 45,
		Description: "Index fingers dip down to the lower row.",
		Hint:        "Curl the index finger down, keep the others home.",
	},
	{
		ID: "2-2", Number: 7, Name: "C & ,",
		Letters:   []string{"C", ",", "V", "M", "D", "K"},
		FallSpeed: 150, SpawnRate: 1.2, Duration: 45,
		Description: "Middle fingers go low.",
		Hint:        "Move the finger, not the hand.",
		EasterEgg:   "Impressed? Say it out loud. Three letters, same front and back.",
	},
	{
		ID: "2-3", Number: 8, Name: "X & .",
		Letters:   []string{"X", ".", "C", ",", "S", "L"},
		FallSpeed: 155, SpawnRate: 1.2, Duration: 45,
		Description: "Ring fingers stretch down.",
		Hint:        "Ring fingers are weaker. Slow is smooth, smooth is fast.",
	},
	{
		ID: "2-4", Number: 9, Name: "Z & /",
		Letters:   []string{"Z", "/", "X", ".", "A", ";"},
		FallSpeed: 160, SpawnRate: 1.1, Duration: 45,
		Description: "The pinky's longest reach.",
		Hint:        "Keep your wrists still while the pinky stretches.",
	},
	{
		ID: "2-5", Number: 10, Name: "Lower Row",
		Letters:   join(lowerRow, homeRow),
		FallSpeed: 170, SpawnRate: 1.0, Duration: 60,
		Description: "Home and lower rows together.",
		Hint:        "Breathe. Tension slows you down.",
		EasterEgg:   "Feeling overwhelmed? Find your inner calm in three letters.",
	},
	{
		ID: "3-1", Number: 11, Name: "Numbers 1-5",
		Letters:   []string{"1", "2", "3", "4", "5"},
		FallSpeed: 150, SpawnRate: 1.3, Duration: 45,
		Description: "Left hand climbs to the number row.",
		Hint:        "The number row is two rows up. Reach without looking.",
	},
	{
		ID: "3-2", Number: 12, Name: "Numbers 6-0",
		Letters:   []string{"6", "7", "8", "9", "0"},
		FallSpeed: 155, SpawnRate: 1.3, Duration: 45,
		Description: "Right hand climbs to the number row.",
		Hint:        "6 belongs to the right index finger.",
	},
	{
		ID: "3-3", Number: 13, Name: "Number Row",
		Letters:   numberRow,
		FallSpeed: 165, SpawnRate: 1.1, Duration: 60,
		Description: "All ten digits.",
		Hint:        "Anchor on F and J between reaches.",
		EasterEgg:   "Licensed to type? A secret agent's number doubles your score.",
	},
	{
		ID: "3-4", Number: 14, Name: "Mixed Signals",
		Letters:   join(numberRow, homeRow),
		FallSpeed: 175, SpawnRate: 1.0, Duration: 60,
		Description: "Digits mixed with the home row.",
		Hint:        "Read ahead: the lowest target is the most urgent.",
	},
	{
		ID: "3-5", Number: 15, Name: "Number Ninja",
		Letters:   join(numberRow, upperRow, lowerRow),
		FallSpeed: 185, SpawnRate: 0.9, Duration: 60,
		Description: "Everything except the home row. No safe place.",
		Hint:        "Return home between keys, even when it feels slower.",
	},
	{
		ID: "4-1", Number: 16, Name: "First Words",
		Letters:   homeRow,
		Words:     []string{"THE", "AND", "FOR", "YOU", "ARE", "ALL", "ASK", "SAD", "DAD", "JAR"},
		FallSpeed: 140, SpawnRate: 1.4, Duration: 60,
		Description: "Whole words fall now. Type them in full for triple points.",
		Hint:        "Finish a word before chasing stray letters.",
	},
	{
		ID: "4-2", Number: 17, Name: "Word Flow",
		Letters:   join(homeRow, upperRow),
		Words:     []string{"TYPE", "FAST", "WORD", "KEYS", "HOME", "FLOW", "QUIT", "JUMP", "TIME", "GOAL"},
		FallSpeed: 150, SpawnRate: 1.2, Duration: 60,
		Description: "Four-letter words and the top two rows.",
		Hint:        "Say the word in your head as you type it.",
		EasterEgg:   "Too slow? Some people like it in a hurry. Four letters.",
	},
	{
		ID: "4-3", Number: 18, Name: "Speed Words",
		Letters:   join(homeRow, upperRow, lowerRow),
		Words:     []string{"QUICK", "BROWN", "JUMPS", "LAZY", "STRIKE", "COMBO", "SPEED", "TYPING", "FOCUS", "ZONE"},
		FallSpeed: 170, SpawnRate: 1.0, Duration: 75,
		Description: "Longer words, faster falls.",
		Hint:        "Keep a steady rhythm instead of bursts.",
	},
	{
		ID: "4-4", Number: 19, Name: "Keyboard Storm",
		Letters:   join(homeRow, upperRow, lowerRow, numberRow),
		Words:     []string{"STORM", "THUNDER", "RAIN", "WIND", "CLOUD", "FLASH", "BOLT", "GALE", "HAIL", "SKY"},
		FallSpeed: 190, SpawnRate: 0.8, Duration: 75,
		Description: "Every key on the board is fair game.",
		Hint:        "Ignore the score. Chase accuracy and speed follows.",
	},
	{
		ID: "4-5", Number: 20, Name: "Final Boss",
		Letters:   join(homeRow, upperRow, lowerRow, numberRow),
		Words:     []string{"CHAMPION", "MASTER", "LEGEND", "VICTORY", "KEYBOARD", "TYPESTRIKE", "BOSS", "FINAL", "GLORY", "WINNER"},
		FallSpeed: 210, SpawnRate: 0.7, Duration: 90,
		Description: "Everything you have learned, at full speed.",
		Hint:        "You trained for this. Stay home, stay calm.",
		EasterEgg:   "Legends whisper of a code that makes you a god...",
	},
}

func init() {
	if err := ValidateLevels(Levels); err != nil {
		panic(err)
	}
}

// LevelCount returns the number of levels in the curriculum.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given 0-based index.
// Indexes past the end return the last level; negative indexes the first.
func GetLevel(index int) *Level {
	if index < 0 {
		index = 0
	}
	if index >= len(Levels) {
		index = len(Levels) - 1
	}
	return &Levels[index]
}

// LevelNames returns the display names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}

// ErrInvalidLevel is returned by ValidateLevels.
var ErrInvalidLevel = errors.New("typestrike: invalid level")

// ValidateLevels checks catalog invariants: contiguous ordinals starting
// at 1 and strictly positive duration and spawn interval.
func ValidateLevels(levels []Level) error {
	if len(levels) == 0 {
		return fmt.Errorf("%w: empty catalog", ErrInvalidLevel)
	}
	for i, lvl := range levels {
		if lvl.Number != i+1 {
			return fmt.Errorf("%w: %s has number %d, expected %d", ErrInvalidLevel, lvl.ID, lvl.Number, i+1)
		}
		if lvl.Duration <= 0 {
			return fmt.Errorf("%w: %s duration must be positive", ErrInvalidLevel, lvl.ID)
		}
		if lvl.SpawnRate <= 0 {
			return fmt.Errorf("%w: %s spawn rate must be positive", ErrInvalidLevel, lvl.ID)
		}
	}
	return nil
}

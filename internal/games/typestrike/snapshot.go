package typestrike

import (
	"github.com/vovakirdan/typestrike/internal/stats"
)

// Snapshot is the read-only render state of the game.
type Snapshot struct {
	Tick       uint64
	Phase      Phase
	Level      Level
	LevelIndex int
	MenuCursor int
	Canvas     Canvas

	Lives      int
	MaxLives   int
	GodMode    bool
	Score      int
	Combo      int
	BestCombo  int
	Multiplier int
	Accuracy   int
	WPM        int
	Elapsed    float64
	Remaining  float64

	Targets    []Target
	Particles  []Particle
	WordBuffer string
	Flash      Flash
	Banner     Banner

	// Terminal phases only.
	Result   *stats.Summary
	Feedback string
	Unlocked []string
}

// Snapshot captures the current state for rendering and tests.
func (g *Game) Snapshot() Snapshot {
	lvl := g.Level()
	remaining := lvl.Duration - g.elapsed
	if remaining < 0 {
		remaining = 0
	}

	snap := Snapshot{
		Tick:       g.tick,
		Phase:      g.phase,
		Level:      *lvl,
		LevelIndex: g.levelIndex,
		MenuCursor: g.menuCursor,
		Canvas:     g.opts.Canvas,
		Lives:      g.scorer.Lives,
		MaxLives:   g.scorer.MaxLives,
		GodMode:    g.scorer.GodMode(),
		Score:      g.scorer.Score,
		Combo:      g.scorer.Combo,
		BestCombo:  g.scorer.BestCombo,
		Multiplier: Multiplier(g.scorer.Combo),
		Accuracy:   stats.Accuracy(g.scorer.Correct, g.scorer.Total),
		WPM:        stats.WPM(g.scorer.Correct, secondsToDuration(g.elapsed)),
		Elapsed:    g.elapsed,
		Remaining:  remaining,
		Targets:    g.pool.Targets(),
		Particles:  append([]Particle(nil), g.particles...),
		WordBuffer: g.matcher.Buffer(),
		Flash:      g.flash,
		Banner:     g.banner,
	}

	if summary, ok := g.Result(); ok {
		snap.Result = &summary
		snap.Feedback = g.feedback
		snap.Unlocked = append([]string(nil), g.unlocked...)
	}
	return snap
}

package typestrike

import (
	"math/rand"
)

// Bot types for the player. It aims at the lowest visible target and
// presses one key per reaction interval, with an optional error rate.
type Bot struct {
	Reaction  float64 // Seconds between keystrokes
	ErrorRate float64 // Probability of a deliberate wrong key, 0..1

	rng  *rand.Rand
	wait float64
	last float64
	word string
	pos  int
}

// NewBot creates a bot with its own deterministic RNG.
func NewBot(reaction, errorRate float64, seed int64) *Bot {
	if reaction <= 0 {
		reaction = 0.2
	}
	return &Bot{
		Reaction:  reaction,
		ErrorRate: errorRate,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Play advances the bot to the game's current elapsed time and types at
// most one key. Does nothing outside Playing.
func (b *Bot) Play(g *Game) {
	if g.phase != PhasePlaying {
		b.last, b.word, b.pos = 0, "", 0
		return
	}
	dt := g.elapsed - b.last
	if dt < 0 {
		dt = g.elapsed
	}
	b.last = g.elapsed
	b.wait -= dt
	if b.wait > 0 {
		return
	}
	b.wait = b.Reaction

	if letters := g.Level().Letters; len(letters) > 0 && b.ErrorRate > 0 && b.rng.Float64() < b.ErrorRate {
		g.KeyPress([]rune(letters[b.rng.Intn(len(letters))])[0])
		return
	}

	if b.word != "" && b.pos < len(b.word) && b.wordAlive(g) {
		g.KeyPress(rune(b.word[b.pos]))
		b.pos++
		if b.pos == len(b.word) {
			b.word, b.pos = "", 0
		}
		return
	}
	b.word, b.pos = "", 0

	i := g.pool.mostUrgent(func(t *Target) bool { return t.Y >= 0 })
	if i < 0 {
		return
	}
	t := g.pool.targets[i]
	if t.IsWord {
		b.word, b.pos = t.Text, 1
	}
	g.KeyPress(rune(t.Text[0]))
}

func (b *Bot) wordAlive(g *Game) bool {
	for _, t := range g.pool.targets {
		if t.IsWord && t.Text == b.word {
			return true
		}
	}
	return false
}

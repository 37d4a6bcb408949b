package typestrike

import (
	"math/rand"
)

// Spawn and sizing constants.
const (
	spawnY          = -50.0 // Targets appear just above the visible canvas
	wordChance      = 0.30  // Probability of a word spawn on levels with words
	wordSpeedFactor = 0.80  // Words fall slower than letters
	letterSize      = 40.0
	wordSize        = 30.0 // Per-character size; words still render wider
)

// Canvas describes the virtual play field in canvas units.
type Canvas struct {
	Width     float64
	Height    float64
	Margin    float64 // Horizontal inset for spawn positions
	Overshoot float64 // Distance past the bottom edge before a target expires
}

// DefaultCanvas returns the standard 800x600 play field.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:     800,
		Height:    600,
		Margin:    60,
		Overshoot: 50,
	}
}

// Bottom returns the y coordinate past which targets expire.
func (c Canvas) Bottom() float64 {
	return c.Height + c.Overshoot
}

// Target is a falling letter or word.
type Target struct {
	Text     string // Uppercase
	X, Y     float64
	Speed    float64
	Size     float64
	IsWord   bool
	Targeted bool // A word the player has started typing
}

// Pool owns the live targets and the spawn timer.
type Pool struct {
	canvas     Canvas
	targets    []Target
	spawnTimer float64
	speedScale float64
}

// NewPool creates an empty pool. speedScale multiplies every level's fall
// speed (difficulty presets); values <= 0 mean 1.
func NewPool(canvas Canvas, speedScale float64) *Pool {
	if speedScale <= 0 {
		speedScale = 1
	}
	return &Pool{
		canvas:     canvas,
		speedScale: speedScale,
	}
}

// Reset removes all targets and zeroes the spawn timer.
func (p *Pool) Reset() {
	p.targets = p.targets[:0]
	p.spawnTimer = 0
}

// Len returns the number of live targets.
func (p *Pool) Len() int {
	return len(p.targets)
}

// Targets returns a copy of the live targets.
func (p *Pool) Targets() []Target {
	out := make([]Target, len(p.targets))
	copy(out, p.targets)
	return out
}

// Tick advances the spawn timer and spawns at most one target when the
// level's spawn interval has elapsed. Reports whether a target spawned.
func (p *Pool) Tick(dt float64, lvl *Level, rng *rand.Rand) bool {
	p.spawnTimer += dt
	if p.spawnTimer < lvl.SpawnRate {
		return false
	}
	p.spawnTimer = 0
	return p.Spawn(lvl, rng)
}

// Spawn adds one target for the level. Levels with words produce a word
// target 30% of the time. A level with an empty character set spawns
// nothing, words or not.
func (p *Pool) Spawn(lvl *Level, rng *rand.Rand) bool {
	if len(lvl.Letters) == 0 {
		return false
	}

	var t Target
	if lvl.HasWords() && rng.Float64() < wordChance {
		t = Target{
			Text:   lvl.Words[rng.Intn(len(lvl.Words))],
			Speed:  lvl.FallSpeed * wordSpeedFactor * p.speedScale,
			Size:   wordSize,
			IsWord: true,
		}
	} else {
		t = Target{
			Text:  lvl.Letters[rng.Intn(len(lvl.Letters))],
			Speed: lvl.FallSpeed * p.speedScale,
			Size:  letterSize,
		}
	}

	t.X = p.spawnX(rng)
	t.Y = spawnY
	p.targets = append(p.targets, t)
	return true
}

// spawnX picks a uniform x inside the margin-inset band.
func (p *Pool) spawnX(rng *rand.Rand) float64 {
	band := p.canvas.Width - 2*p.canvas.Margin
	if band <= 0 {
		return p.canvas.Width / 2
	}
	return p.canvas.Margin + rng.Float64()*band
}

// Advance moves every target down by speed*dt.
func (p *Pool) Advance(dt float64) {
	for i := range p.targets {
		p.targets[i].Y += p.targets[i].Speed * dt
	}
}

// Expire removes and returns the targets that crossed the bottom boundary.
func (p *Pool) Expire() []Target {
	bottom := p.canvas.Bottom()
	var expired []Target
	kept := p.targets[:0]
	for _, t := range p.targets {
		if t.Y > bottom {
			expired = append(expired, t)
			continue
		}
		kept = append(kept, t)
	}
	p.targets = kept
	return expired
}

// ScaleSpeeds multiplies the speed of every live target.
func (p *Pool) ScaleSpeeds(f float64) {
	for i := range p.targets {
		p.targets[i].Speed *= f
	}
}

// Add inserts a target directly. Used by tests and scripted scenarios.
func (p *Pool) Add(t Target) {
	p.targets = append(p.targets, t)
}

// mostUrgent returns the index of the matching target with the largest Y,
// or -1 when none match.
func (p *Pool) mostUrgent(match func(*Target) bool) int {
	best := -1
	for i := range p.targets {
		if !match(&p.targets[i]) {
			continue
		}
		if best < 0 || p.targets[i].Y > p.targets[best].Y {
			best = i
		}
	}
	return best
}

// remove deletes the target at index i and returns it.
func (p *Pool) remove(i int) Target {
	t := p.targets[i]
	p.targets = append(p.targets[:i], p.targets[i+1:]...)
	return t
}

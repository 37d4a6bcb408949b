package typestrike

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/typestrike/internal/core"
	"github.com/vovakirdan/typestrike/internal/stats"
)

// Phase is the state-machine state of the game.
type Phase string

const (
	PhaseMenu          Phase = "menu"
	PhaseLevelStart    Phase = "level_start"
	PhasePlaying       Phase = "playing"
	PhaseLevelComplete Phase = "level_complete"
	PhaseGameOver      Phase = "game_over"
)

// Terminal reports whether the phase ends a session.
func (p Phase) Terminal() bool {
	return p == PhaseLevelComplete || p == PhaseGameOver
}

// Audio receives named cues. Implementations must not block.
type Audio interface {
	PlayEffect(e core.Effect)
	PlayNote(c rune)
}

type silentAudio struct{}

func (silentAudio) PlayEffect(core.Effect) {}
func (silentAudio) PlayNote(rune)          {}

// DefaultMaxLives is the life count of a fresh session.
const DefaultMaxLives = 5

// Options configures a Game.
type Options struct {
	Canvas     Canvas
	MaxLives   int
	SpeedScale float64 // Difficulty multiplier for fall speeds
	StartLevel int     // 0-based level preselected in the menu
	Audio      Audio
	Now        func() time.Time
}

// DefaultOptions returns the standard game setup.
func DefaultOptions() Options {
	return Options{
		Canvas:     DefaultCanvas(),
		MaxLives:   DefaultMaxLives,
		SpeedScale: 1,
	}
}

// Flash timings in seconds.
const (
	hitFlashTime  = 0.15
	missFlashTime = 0.25
	bannerTime    = 2.0
)

// FlashKind is the kind of full-field flash currently shown.
type FlashKind int

const (
	FlashNone FlashKind = iota
	FlashHit
	FlashMiss
)

// Flash is a short visual cue after hits, misses and life losses.
type Flash struct {
	Kind      FlashKind
	Remaining float64
}

// Banner is a transient message, used for easter eggs.
type Banner struct {
	Text      string
	Remaining float64
}

// StepResult is returned by Step.
type StepResult struct {
	Phase Phase
	Ended bool // A session reached LevelComplete or GameOver during this step
}

// Game is the typing game state machine. It is not safe for concurrent use;
// hosts must serialize Step, Trigger, KeyPress and Tick.
type Game struct {
	opts  Options
	audio Audio
	now   func() time.Time
	rng   *rand.Rand
	tick  uint64

	phase      Phase
	levelIndex int
	menuCursor int

	// Session state, rebuilt on every transition into Playing.
	sessionID string
	pool      *Pool
	scorer    Scorer
	matcher   *Matcher
	eggs      eggDetector
	particles []Particle
	elapsed   float64
	words     int
	misses    map[rune]int

	flash  Flash
	banner Banner

	// Terminal state presentation.
	result   *stats.Summary
	feedback string
	unlocked []string
	ended    bool
}

// New creates a game in the Menu phase.
func New(opts Options) *Game {
	if opts.Canvas.Width <= 0 || opts.Canvas.Height <= 0 {
		opts.Canvas = DefaultCanvas()
	}
	if opts.MaxLives <= 0 {
		opts.MaxLives = DefaultMaxLives
	}
	if opts.SpeedScale <= 0 {
		opts.SpeedScale = 1
	}
	g := &Game{
		opts:  opts,
		audio: opts.Audio,
		now:   opts.Now,
	}
	if g.audio == nil {
		g.audio = silentAudio{}
	}
	if g.now == nil {
		g.now = time.Now
	}
	g.pool = NewPool(opts.Canvas, opts.SpeedScale)
	g.matcher = newMatcher(g.pool, &g.scorer)
	g.Reset(core.RuntimeConfig{Seed: time.Now().UnixNano()})
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "typestrike"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "TypeStrike"
}

// Reset reseeds the RNG and returns to the menu.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.levelIndex = core.Clamp(g.opts.StartLevel, 0, LevelCount()-1)
	g.toMenu()
}

// Phase returns the current state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Level returns the current level.
func (g *Game) Level() *Level {
	return GetLevel(g.levelIndex)
}

// Scorer returns a copy of the session counters.
func (g *Game) Scorer() Scorer {
	return g.scorer
}

// Step applies a frame: actions first, then typed keys in order, then the
// elapsed time.
func (g *Game) Step(in core.InputFrame) StepResult {
	g.ended = false

	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionMenu, core.ActionRetry, core.ActionConfirm} {
		if in.Has(a) {
			g.Trigger(a)
		}
	}
	for _, r := range in.Keys {
		g.KeyPress(r)
	}
	g.Tick(in.Dt.Seconds())

	return StepResult{Phase: g.phase, Ended: g.ended}
}

// Trigger applies an abstract state-machine event.
func (g *Game) Trigger(a core.Action) {
	switch g.phase {
	case PhaseMenu:
		switch a {
		case core.ActionUp:
			g.menuCursor = core.Clamp(g.menuCursor-1, 0, LevelCount()-1)
		case core.ActionDown:
			g.menuCursor = core.Clamp(g.menuCursor+1, 0, LevelCount()-1)
		case core.ActionConfirm:
			g.levelIndex = g.menuCursor
			g.phase = PhaseLevelStart
		}

	case PhaseLevelStart:
		switch a {
		case core.ActionConfirm:
			g.startPlaying()
		case core.ActionMenu:
			g.toMenu()
		}

	case PhasePlaying:
		if a == core.ActionMenu {
			g.toMenu()
		}

	case PhaseLevelComplete:
		switch a {
		case core.ActionConfirm:
			g.levelIndex = core.Min(g.levelIndex+1, LevelCount()-1)
			g.phase = PhaseLevelStart
		case core.ActionMenu:
			g.toMenu()
		}

	case PhaseGameOver:
		switch a {
		case core.ActionRetry, core.ActionConfirm:
			g.levelIndex = 0
			g.phase = PhaseLevelStart
		case core.ActionMenu:
			g.toMenu()
		}
	}
}

// KeyPress handles one typed character. Ignored outside Playing and for
// characters that are not accepted as typing input.
func (g *Game) KeyPress(r rune) {
	if g.phase != PhasePlaying {
		return
	}
	c, ok := core.NormalizeKey(r)
	if !ok {
		return
	}

	g.audio.PlayNote(c)
	res := g.matcher.Type(c)

	switch res.Kind {
	case MatchLetter, MatchWord:
		count, effect := letterParticles, core.EffectLetterHit
		if res.Kind == MatchWord {
			count, effect = wordParticles, core.EffectWordHit
			g.words++
		}
		g.particles = burst(g.particles, res.Target.X, res.Target.Y, count, g.rng)
		g.flash = Flash{Kind: FlashHit, Remaining: hitFlashTime}
		g.audio.PlayEffect(effect)
		if res.Milestone {
			g.audio.PlayEffect(core.EffectComboMilestone)
		}
	case MatchMiss:
		g.misses[c]++
		g.flash = Flash{Kind: FlashMiss, Remaining: missFlashTime}
		g.audio.PlayEffect(core.EffectWrongLetter)
	}

	for _, egg := range g.eggs.Push(c) {
		g.applyEgg(egg)
	}
}

// applyEgg runs the one-shot effect of an easter egg.
func (g *Game) applyEgg(egg EasterEgg) {
	switch egg.Code {
	case "SOS":
		g.scorer.GainLife()
	case "WOW":
		g.scorer.AddCombo(wowComboBonus)
	case "ZEN":
		g.pool.ScaleSpeeds(zenSpeed)
	case "007":
		g.scorer.Score *= 2
	case "RUSH":
		g.pool.ScaleSpeeds(rushSpeed)
	case "GODMODE":
		g.scorer.EnableGodMode()
	}
	g.banner = Banner{Text: egg.Code + "! " + egg.Description, Remaining: bannerTime}
	g.audio.PlayEffect(core.EffectPowerUp)
}

// Tick advances the simulation by dt seconds.
func (g *Game) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	g.tick++
	g.particles = updateParticles(g.particles, dt)
	g.flash.Remaining -= dt
	if g.flash.Remaining <= 0 {
		g.flash = Flash{}
	}
	g.banner.Remaining -= dt
	if g.banner.Remaining <= 0 {
		g.banner = Banner{}
	}

	if g.phase != PhasePlaying {
		return
	}

	lvl := g.Level()
	g.elapsed += dt
	g.pool.Tick(dt, lvl, g.rng)
	g.pool.Advance(dt)

	for _, t := range g.pool.Expire() {
		dead := g.scorer.LoseLife()
		if !t.IsWord && t.Text != "" {
			g.misses[[]rune(t.Text)[0]]++
		}
		g.flash = Flash{Kind: FlashMiss, Remaining: missFlashTime}
		g.audio.PlayEffect(core.EffectLifeLost)
		if dead && g.phase == PhasePlaying {
			g.finish(stats.OutcomeGameOver)
		}
	}

	if g.phase == PhasePlaying && g.elapsed >= lvl.Duration && g.scorer.Lives > 0 {
		g.finish(stats.OutcomeComplete)
	}
}

// startPlaying builds a fresh session for the current level.
func (g *Game) startPlaying() {
	g.resetSession()
	g.sessionID = uuid.NewString()
	g.phase = PhasePlaying
}

// toMenu discards the session and shows the menu.
func (g *Game) toMenu() {
	g.resetSession()
	g.menuCursor = g.levelIndex
	g.phase = PhaseMenu
}

func (g *Game) resetSession() {
	g.pool.Reset()
	g.scorer = newScorer(g.opts.MaxLives)
	g.matcher.Reset()
	g.eggs.Reset()
	g.particles = g.particles[:0]
	g.elapsed = 0
	g.words = 0
	g.misses = make(map[rune]int)
	g.flash = Flash{}
	g.banner = Banner{}
	g.sessionID = ""
	g.result = nil
	g.feedback = ""
	g.unlocked = nil
}

// finish freezes the session summary and enters a terminal phase.
func (g *Game) finish(outcome stats.Outcome) {
	lvl := g.Level()
	misses := make(map[rune]int, len(g.misses))
	for r, n := range g.misses {
		misses[r] = n
	}
	g.result = &stats.Summary{
		SessionID:    g.sessionID,
		Outcome:      outcome,
		LevelID:      lvl.ID,
		LevelOrdinal: lvl.Number,
		LevelName:    lvl.Name,
		Score:        g.scorer.Score,
		Correct:      g.scorer.Correct,
		Total:        g.scorer.Total,
		Elapsed:      secondsToDuration(g.elapsed),
		BestCombo:    g.scorer.BestCombo,
		Words:        g.words,
		EasterEggs:   g.eggs.Found(),
		Misses:       misses,
		FinishedAt:   g.now(),
	}
	g.ended = true

	if outcome == stats.OutcomeComplete {
		g.phase = PhaseLevelComplete
		g.audio.PlayEffect(core.EffectLevelComplete)
	} else {
		g.phase = PhaseGameOver
		g.audio.PlayEffect(core.EffectGameOver)
	}
}

// Result returns the frozen summary while in a terminal phase.
func (g *Game) Result() (stats.Summary, bool) {
	if g.result == nil || !g.phase.Terminal() {
		return stats.Summary{}, false
	}
	return *g.result, true
}

// SetFeedback attaches coaching text to the session it was requested for.
// Text for any other session, or arriving after the result screen was
// left, is dropped.
func (g *Game) SetFeedback(sessionID, text string) bool {
	if !g.showingResult(sessionID) {
		return false
	}
	g.feedback = text
	return true
}

// SetUnlocked attaches newly unlocked achievement names to the session.
func (g *Game) SetUnlocked(sessionID string, names []string) bool {
	if !g.showingResult(sessionID) {
		return false
	}
	g.unlocked = append([]string(nil), names...)
	if len(names) > 0 {
		g.audio.PlayEffect(core.EffectAchievementUnlock)
	}
	return true
}

func (g *Game) showingResult(sessionID string) bool {
	return g.phase.Terminal() && g.result != nil && g.result.SessionID == sessionID
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

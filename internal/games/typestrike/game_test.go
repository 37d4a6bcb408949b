package typestrike

import (
	"testing"
	"time"

	"github.com/vovakirdan/typestrike/internal/core"
	"github.com/vovakirdan/typestrike/internal/stats"
)

type recordingAudio struct {
	effects []core.Effect
	notes   []rune
}

func (a *recordingAudio) PlayEffect(e core.Effect) { a.effects = append(a.effects, e) }
func (a *recordingAudio) PlayNote(c rune)          { a.notes = append(a.notes, c) }

func (a *recordingAudio) count(e core.Effect) int {
	n := 0
	for _, got := range a.effects {
		if got == e {
			n++
		}
	}
	return n
}

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, level int) (*Game, *recordingAudio) {
	t.Helper()
	audio := &recordingAudio{}
	opts := DefaultOptions()
	opts.Audio = audio
	opts.StartLevel = level
	opts.Now = func() time.Time { return fixedNow }
	g := New(opts)
	g.Reset(core.RuntimeConfig{Seed: 1})
	return g, audio
}

func startLevel(t *testing.T, g *Game) {
	t.Helper()
	g.Trigger(core.ActionConfirm)
	if g.Phase() != PhaseLevelStart {
		t.Fatalf("phase = %s, expected %s", g.Phase(), PhaseLevelStart)
	}
	g.Trigger(core.ActionConfirm)
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %s, expected %s", g.Phase(), PhasePlaying)
	}
}

func frame(dt time.Duration, keys string) core.InputFrame {
	in := core.NewInputFrame()
	in.Dt = dt
	for _, c := range keys {
		in.Type(c)
	}
	return in
}

func TestGameCompletesLevelByTypingEveryTarget(t *testing.T) {
	g, audio := newTestGame(t, 0)
	startLevel(t, g)

	ended := 0
	for i := 0; i < 2000 && g.Phase() == PhasePlaying; i++ {
		var keys string
		for _, tgt := range g.Snapshot().Targets {
			keys += tgt.Text
		}
		if g.Step(frame(time.Second/60, keys)).Ended {
			ended++
		}
	}

	if g.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %s, expected %s", g.Phase(), PhaseLevelComplete)
	}
	if ended != 1 {
		t.Errorf("Ended reported %d times, expected 1", ended)
	}

	res, ok := g.Result()
	if !ok {
		t.Fatal("Result() unavailable in terminal phase")
	}
	if res.Outcome != stats.OutcomeComplete {
		t.Errorf("Outcome = %s, expected %s", res.Outcome, stats.OutcomeComplete)
	}
	if res.Accuracy() != 100 {
		t.Errorf("Accuracy() = %d, expected 100", res.Accuracy())
	}
	if res.Correct == 0 || res.Correct != res.Total {
		t.Errorf("Correct/Total = %d/%d", res.Correct, res.Total)
	}
	if g.Scorer().Lives != DefaultMaxLives {
		t.Errorf("Lives = %d, expected %d", g.Scorer().Lives, DefaultMaxLives)
	}
	if res.Elapsed < 30*time.Second {
		t.Errorf("Elapsed = %v, expected at least 30s", res.Elapsed)
	}
	if res.SessionID == "" || !res.FinishedAt.Equal(fixedNow) {
		t.Errorf("SessionID = %q, FinishedAt = %v", res.SessionID, res.FinishedAt)
	}
	if audio.count(core.EffectLevelComplete) != 1 {
		t.Errorf("levelComplete effect played %d times", audio.count(core.EffectLevelComplete))
	}
	if len(audio.notes) != res.Total {
		t.Errorf("notes played = %d, expected %d", len(audio.notes), res.Total)
	}
}

func TestGameOverAfterExpiries(t *testing.T) {
	g, audio := newTestGame(t, 0)
	startLevel(t, g)
	g.scorer.Score = 40
	g.scorer.Combo = 7

	bottom := g.opts.Canvas.Bottom()
	for i := 0; i < DefaultMaxLives; i++ {
		g.pool.Add(Target{Text: "F", Y: bottom - 1, Speed: 100})
	}
	res := g.Step(frame(100*time.Millisecond, ""))

	if !res.Ended || res.Phase != PhaseGameOver {
		t.Fatalf("Step() = %+v, expected ended in game over", res)
	}
	sum, _ := g.Result()
	if sum.Score != 40 {
		t.Errorf("Score = %d, expected 40", sum.Score)
	}
	if g.Scorer().Combo != 0 || g.Scorer().Lives != 0 {
		t.Errorf("Combo/Lives = %d/%d, expected 0/0", g.Scorer().Combo, g.Scorer().Lives)
	}
	if sum.Misses['F'] != DefaultMaxLives {
		t.Errorf("Misses[F] = %d, expected %d", sum.Misses['F'], DefaultMaxLives)
	}
	if audio.count(core.EffectLifeLost) != DefaultMaxLives {
		t.Errorf("lifeLost played %d times", audio.count(core.EffectLifeLost))
	}
	if audio.count(core.EffectGameOver) != 1 {
		t.Errorf("gameOver played %d times", audio.count(core.EffectGameOver))
	}

	// Terminal phases ignore typing and time.
	g.Step(frame(time.Second, "FFF"))
	if after, _ := g.Result(); after.Total != sum.Total {
		t.Error("keys changed the frozen result")
	}
}

func TestGameComboMilestone(t *testing.T) {
	g, audio := newTestGame(t, 0)
	startLevel(t, g)
	g.scorer.Combo = 49
	g.pool.Add(Target{Text: "F", Y: 200, Speed: 100})

	g.KeyPress('f')

	s := g.Snapshot()
	if s.Combo != 50 || s.Multiplier != 6 {
		t.Errorf("Combo/Multiplier = %d/%d, expected 50/6", s.Combo, s.Multiplier)
	}
	if s.Score != 60 {
		t.Errorf("Score = %d, expected 60", s.Score)
	}
	if audio.count(core.EffectComboMilestone) != 1 {
		t.Errorf("comboMilestone played %d times, expected 1", audio.count(core.EffectComboMilestone))
	}
	if len(s.Particles) != letterParticles {
		t.Errorf("particles = %d, expected %d", len(s.Particles), letterParticles)
	}
	if s.Flash.Kind != FlashHit {
		t.Errorf("Flash = %v, expected hit", s.Flash.Kind)
	}
}

func TestGameWordHitParticles(t *testing.T) {
	g, _ := newTestGame(t, 0)
	startLevel(t, g)
	g.pool.Add(Target{Text: "THE", Y: 200, Speed: 80, IsWord: true})

	for _, c := range "th" {
		g.KeyPress(c)
	}
	if n := len(g.Snapshot().Particles); n != 0 {
		t.Fatalf("particles after word progress = %d, expected 0", n)
	}
	g.KeyPress('e')

	s := g.Snapshot()
	if len(s.Particles) != wordParticles {
		t.Errorf("particles = %d, expected %d", len(s.Particles), wordParticles)
	}
	if s.Score != wordPoints {
		t.Errorf("Score = %d, expected %d", s.Score, wordPoints)
	}
}

func TestGameIgnoresUnacceptedKeys(t *testing.T) {
	g, _ := newTestGame(t, 0)
	startLevel(t, g)
	g.KeyPress(' ')
	g.KeyPress('!')
	g.KeyPress('é')
	if g.Scorer().Total != 0 {
		t.Errorf("Total = %d, expected 0", g.Scorer().Total)
	}
}

func TestGameEasterEggs(t *testing.T) {
	t.Run("SOS restores a life once", func(t *testing.T) {
		g, audio := newTestGame(t, 0)
		startLevel(t, g)
		g.scorer.Lives = 3
		for _, c := range "SOSSOS" {
			g.KeyPress(c)
		}
		if g.Scorer().Lives != 4 {
			t.Errorf("Lives = %d, expected 4", g.Scorer().Lives)
		}
		if audio.count(core.EffectPowerUp) != 1 {
			t.Errorf("powerUp played %d times", audio.count(core.EffectPowerUp))
		}
		if g.Snapshot().Banner.Text == "" {
			t.Error("no banner after easter egg")
		}
	})

	t.Run("007 doubles score", func(t *testing.T) {
		g, _ := newTestGame(t, 0)
		startLevel(t, g)
		g.scorer.Score = 100
		for _, c := range "007" {
			g.KeyPress(c)
		}
		// All three keys miss before the egg doubles the score.
		if g.Scorer().Score != 2*(100-3*missPenalty) {
			t.Errorf("Score = %d, expected %d", g.Scorer().Score, 2*(100-3*missPenalty))
		}
	})

	t.Run("GODMODE expiries still cost one life each", func(t *testing.T) {
		g, _ := newTestGame(t, 0)
		startLevel(t, g)
		for _, c := range "GODMODE" {
			g.KeyPress(c)
		}
		before := g.Scorer().Lives
		if before != GodModeLives {
			t.Fatalf("Lives = %d, expected %d", before, GodModeLives)
		}
		bottom := g.opts.Canvas.Bottom()
		for i := 0; i < 3; i++ {
			g.pool.Add(Target{Text: "J", Y: bottom + 1})
		}
		g.Tick(0.01)
		if lost := before - g.Scorer().Lives; lost != 3 {
			t.Errorf("lives lost = %d, expected 3", lost)
		}
		if g.Phase() != PhasePlaying {
			t.Errorf("phase = %s, expected playing", g.Phase())
		}
		if !g.Snapshot().GodMode {
			t.Error("GodMode lost after expiries")
		}
	})

	t.Run("WOW adds combo", func(t *testing.T) {
		g, _ := newTestGame(t, 0)
		startLevel(t, g)
		for _, c := range "WOW" {
			g.KeyPress(c)
		}
		// The keys themselves miss, so the bonus lands on a zero combo.
		if g.Scorer().Combo != wowComboBonus {
			t.Errorf("Combo = %d, expected %d", g.Scorer().Combo, wowComboBonus)
		}
		if g.Scorer().BestCombo != wowComboBonus {
			t.Errorf("BestCombo = %d, expected %d", g.Scorer().BestCombo, wowComboBonus)
		}
	})

	t.Run("RUSH speeds live targets", func(t *testing.T) {
		g, _ := newTestGame(t, 0)
		startLevel(t, g)
		g.pool.Add(Target{Text: "J", Y: 0, Speed: 100})
		g.pool.Add(Target{Text: "K", Y: 10, Speed: 40})
		for _, c := range "RUSH" {
			g.KeyPress(c)
		}
		want := []float64{150, 60}
		for i, tg := range g.pool.Targets() {
			if tg.Speed != want[i] {
				t.Errorf("target %d Speed = %v, expected %v", i, tg.Speed, want[i])
			}
		}
	})

	t.Run("ZEN slows live targets", func(t *testing.T) {
		g, _ := newTestGame(t, 0)
		startLevel(t, g)
		g.pool.Add(Target{Text: "J", Y: 0, Speed: 100})
		for _, c := range "ZEN" {
			g.KeyPress(c)
		}
		if got := g.pool.Targets()[0].Speed; got != 70 {
			t.Errorf("Speed = %v, expected 70", got)
		}
	})
}

func TestGameStateMachine(t *testing.T) {
	g, _ := newTestGame(t, 0)
	if g.Phase() != PhaseMenu {
		t.Fatalf("initial phase = %s, expected menu", g.Phase())
	}

	g.Trigger(core.ActionUp)
	if g.Snapshot().MenuCursor != 0 {
		t.Errorf("cursor moved above first level")
	}
	g.Trigger(core.ActionDown)
	g.Trigger(core.ActionDown)
	g.Trigger(core.ActionConfirm)
	if g.Level().Number != 3 || g.Phase() != PhaseLevelStart {
		t.Fatalf("level/phase = %d/%s, expected 3/level_start", g.Level().Number, g.Phase())
	}

	g.Trigger(core.ActionMenu)
	if g.Phase() != PhaseMenu {
		t.Errorf("Menu from level start: phase = %s", g.Phase())
	}

	// LevelComplete advances and caps at the last level.
	g.levelIndex = LevelCount() - 1
	g.phase = PhasePlaying
	g.finish(stats.OutcomeComplete)
	g.Trigger(core.ActionConfirm)
	if g.Level().Number != LevelCount() || g.Phase() != PhaseLevelStart {
		t.Errorf("after final level: level %d phase %s", g.Level().Number, g.Phase())
	}

	// GameOver retry restarts from level 1.
	g.levelIndex = 7
	g.phase = PhasePlaying
	g.finish(stats.OutcomeGameOver)
	g.Trigger(core.ActionRetry)
	if g.Level().Number != 1 || g.Phase() != PhaseLevelStart {
		t.Errorf("after retry: level %d phase %s", g.Level().Number, g.Phase())
	}

	// Playing -> Menu discards the session.
	g.Trigger(core.ActionConfirm)
	g.pool.Add(Target{Text: "F"})
	g.Trigger(core.ActionMenu)
	if g.Phase() != PhaseMenu || g.pool.Len() != 0 {
		t.Errorf("menu from playing: phase %s, %d targets", g.Phase(), g.pool.Len())
	}
	if _, ok := g.Result(); ok {
		t.Error("Result() available in menu")
	}
}

func TestGameNewSessionPerPlay(t *testing.T) {
	g, _ := newTestGame(t, 0)
	startLevel(t, g)
	first := g.sessionID
	g.Trigger(core.ActionMenu)
	startLevel(t, g)
	if g.sessionID == "" || g.sessionID == first {
		t.Errorf("session id %q not renewed (previous %q)", g.sessionID, first)
	}
}

func TestGameFeedbackForStaleSession(t *testing.T) {
	g, audio := newTestGame(t, 0)
	startLevel(t, g)
	g.finish(stats.OutcomeComplete)
	sum, _ := g.Result()

	if g.SetFeedback("someone-else", "stale") {
		t.Error("SetFeedback accepted a stale session id")
	}
	if !g.SetFeedback(sum.SessionID, "Nice rhythm.") {
		t.Error("SetFeedback rejected the current session id")
	}
	if !g.SetUnlocked(sum.SessionID, []string{"First Steps"}) {
		t.Error("SetUnlocked rejected the current session id")
	}

	s := g.Snapshot()
	if s.Feedback != "Nice rhythm." || len(s.Unlocked) != 1 {
		t.Errorf("Feedback = %q, Unlocked = %v", s.Feedback, s.Unlocked)
	}
	if audio.count(core.EffectAchievementUnlock) != 1 {
		t.Errorf("achievementUnlock played %d times", audio.count(core.EffectAchievementUnlock))
	}

	g.Trigger(core.ActionConfirm)
	if g.SetFeedback(sum.SessionID, "late") {
		t.Error("SetFeedback accepted text after leaving the terminal phase")
	}
}

func TestGameDeterministicSpawns(t *testing.T) {
	run := func() []Target {
		g, _ := newTestGame(t, 15)
		startLevel(t, g)
		for i := 0; i < 600; i++ {
			g.Step(frame(time.Second/60, ""))
		}
		return g.pool.Targets()
	}
	a, b := run(), run()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("target counts %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("target %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

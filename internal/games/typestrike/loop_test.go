package typestrike

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/typestrike/internal/core"
)

func TestLoopStopIsIdempotent(t *testing.T) {
	g, _ := newTestGame(t, 0)
	l := NewLoop(g, core.DefaultConfig(), nil)
	l.Start(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Stop()
		}()
	}
	wg.Wait()
	l.Stop()

	select {
	case <-l.Done():
	default:
		t.Fatal("Done() not closed after Stop")
	}
	if l.Type('F') {
		t.Error("Type() accepted after Stop")
	}
}

func TestLoopStopBeforeStart(t *testing.T) {
	g, _ := newTestGame(t, 0)
	l := NewLoop(g, core.DefaultConfig(), nil)
	l.Stop()
	l.Start(context.Background())
	l.Stop()
	if l.Do(func(*Game) {}) {
		t.Error("Do() accepted on a stopped loop")
	}
}

func TestLoopSerializesEvents(t *testing.T) {
	g, _ := newTestGame(t, 0)

	frames := make(chan StepResult, 1)
	l := NewLoop(g, core.RuntimeConfig{TickRate: 200}, func(_ *Game, res StepResult) {
		select {
		case frames <- res:
		default:
		}
	})
	l.Start(context.Background())
	defer l.Stop()

	l.Trigger(core.ActionConfirm)
	l.Trigger(core.ActionConfirm)

	phase := make(chan Phase, 1)
	l.Do(func(g *Game) { phase <- g.Phase() })

	select {
	case p := <-phase:
		if p != PhasePlaying {
			t.Errorf("phase = %s, expected playing", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("queued events were not applied")
	}

	select {
	case <-frames:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame callback")
	}
}

func TestLoopStopsWithContext(t *testing.T) {
	g, _ := newTestGame(t, 0)
	l := NewLoop(g, core.DefaultConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	l.Start(ctx)
	cancel()

	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit on context cancel")
	}
	l.Stop()
}

func TestBotClearsFirstLevel(t *testing.T) {
	g, _ := newTestGame(t, 0)
	startLevel(t, g)
	bot := NewBot(0.05, 0, 7)

	for i := 0; i < 3000 && g.Phase() == PhasePlaying; i++ {
		g.Step(frame(time.Second/60, ""))
		bot.Play(g)
	}
	if g.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %s, expected level complete", g.Phase())
	}
	if res, _ := g.Result(); res.Correct == 0 {
		t.Error("bot typed nothing")
	}
}

func TestBotSkipsWrongKeysWithoutLetters(t *testing.T) {
	saved := Levels[0]
	t.Cleanup(func() { Levels[0] = saved })
	Levels[0].Letters = nil

	g, _ := newTestGame(t, 0)
	startLevel(t, g)
	bot := NewBot(0.01, 1, 7)

	for i := 0; i < 60; i++ {
		g.Step(frame(time.Second/60, ""))
		bot.Play(g)
	}
	if g.Scorer().Total != 0 {
		t.Errorf("Total = %d, expected 0", g.Scorer().Total)
	}
	if g.pool.Len() != 0 {
		t.Errorf("pool Len() = %d, expected 0", g.pool.Len())
	}
}

package typestrike

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/typestrike/internal/core"
)

// FrameFunc observes the game after every tick. It runs on the loop
// goroutine and may drive the game directly (KeyPress, Trigger).
type FrameFunc func(g *Game, res StepResult)

// Loop runs a Game on its own goroutine. Ticks, typed keys and actions are
// all applied from that goroutine, so the game never sees concurrent access.
type Loop struct {
	game    *Game
	cfg     core.RuntimeConfig
	onFrame FrameFunc

	events chan func(*Game)
	cancel context.CancelFunc
	done   chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewLoop wraps g. onFrame may be nil.
func NewLoop(g *Game, cfg core.RuntimeConfig, onFrame FrameFunc) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = core.DefaultConfig().MaxDelta
	}
	return &Loop{
		game:    g,
		cfg:     cfg,
		onFrame: onFrame,
		events:  make(chan func(*Game), 64),
		done:    make(chan struct{}),
	}
}

// Start launches the loop. Calling it more than once has no effect.
func (l *Loop) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		ctx, l.cancel = context.WithCancel(ctx)
		go l.run(ctx)
	})
}

// Stop halts the loop and waits for it to exit. Safe to call repeatedly
// and before Start.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		started := true
		l.startOnce.Do(func() {
			started = false
			close(l.done)
		})
		if started {
			l.cancel()
		}
	})
	<-l.done
}

// Done is closed once the loop has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Do queues fn to run on the loop goroutine. It reports false if the loop
// has already stopped.
func (l *Loop) Do(fn func(*Game)) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Type queues a typed character.
func (l *Loop) Type(r rune) bool {
	return l.Do(func(g *Game) { g.KeyPress(r) })
}

// Trigger queues a state-machine action.
func (l *Loop) Trigger(a core.Action) bool {
	return l.Do(func(g *Game) { g.Trigger(a) })
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)

	ticker := time.NewTicker(l.cfg.FrameInterval())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.events:
			fn(l.game)
		case now := <-ticker.C:
			dt := l.cfg.BoundDelta(now.Sub(last))
			last = now
			in := core.NewInputFrame()
			in.Dt = dt
			res := l.game.Step(in)
			if l.onFrame != nil {
				l.onFrame(l.game, res)
			}
		}
	}
}

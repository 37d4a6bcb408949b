package achievements

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/typestrike/internal/stats"
)

// Store persists achievement state.
type Store interface {
	LoadAchievements(ctx context.Context) (map[string]State, error)
	SaveAchievement(ctx context.Context, st State) error
}

// Manager evaluates session signals against the catalog. It is safe for
// concurrent use.
type Manager struct {
	store Store
	now   func() time.Time

	mu     sync.Mutex
	states map[string]State
	loaded bool
}

// NewManager creates a manager. A nil store keeps state in memory only.
func NewManager(store Store) *Manager {
	return &Manager{
		store:  store,
		now:    time.Now,
		states: make(map[string]State),
	}
}

// load reads persisted state once. Callers hold mu.
func (m *Manager) load(ctx context.Context) error {
	if m.loaded {
		return nil
	}
	if m.store != nil {
		states, err := m.store.LoadAchievements(ctx)
		if err != nil {
			return fmt.Errorf("achievements: cannot load: %w", err)
		}
		for id, st := range states {
			m.states[id] = st
		}
	}
	m.loaded = true
	return nil
}

// All returns every achievement with its current state, in catalog order.
func (m *Manager) All(ctx context.Context) ([]Achievement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(ctx); err != nil {
		return nil, err
	}
	out := make([]Achievement, 0, len(Catalog))
	for _, def := range Catalog {
		st := m.states[def.ID]
		st.ID = def.ID
		out = append(out, Achievement{Definition: def, State: st})
	}
	return out, nil
}

// Evaluate applies one finished session and returns the names of the
// achievements it unlocked, in catalog order.
func (m *Manager) Evaluate(ctx context.Context, sig stats.AchievementSignals) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(ctx); err != nil {
		return nil, err
	}

	now := sig.PlayedAt
	if now.IsZero() {
		now = m.now()
	}
	ev := evaluation{m: m, now: now, changed: make(map[string]bool)}

	ev.unlockIf("first-session", true)
	ev.unlockIf("speed-demon-50", sig.WPM >= 50)
	ev.unlockIf("speed-demon-75", sig.WPM >= 75)
	ev.unlockIf("speed-demon-100", sig.WPM >= 100)
	ev.unlockIf("perfectionist", sig.Completed && sig.Accuracy == 100)
	ev.unlockIf("combo-king-50", sig.BestCombo >= 50)
	ev.unlockIf("combo-master-100", sig.BestCombo >= 100)
	for _, n := range []int{5, 10, 15, 20} {
		ev.unlockIf(fmt.Sprintf("level-%d", n), sig.Completed && sig.LevelOrdinal >= n)
	}

	if sig.Accuracy >= 95 {
		ev.add("accuracy-master", 1)
	}
	ev.add("marathon-runner", sig.LettersTyped)
	ev.add("word-wizard", sig.WordsTyped)
	ev.add("easter-egg-hunter", sig.EasterEggs)
	ev.streak("week-warrior")

	var errs []error
	var unlocked []string
	for _, def := range Catalog {
		if !ev.changed[def.ID] {
			continue
		}
		st := m.states[def.ID]
		if m.store != nil {
			if err := m.store.SaveAchievement(ctx, st); err != nil {
				errs = append(errs, fmt.Errorf("achievements: cannot save %s: %w", def.ID, err))
			}
		}
		if st.Unlocked && st.UnlockedAt.Equal(now) {
			unlocked = append(unlocked, def.Name)
		}
	}
	return unlocked, errors.Join(errs...)
}

// evaluation collects the state changes of one Evaluate call.
type evaluation struct {
	m       *Manager
	now     time.Time
	changed map[string]bool
}

func (e *evaluation) state(id string) State {
	st := e.m.states[id]
	st.ID = id
	return st
}

func (e *evaluation) put(st State) {
	st.UpdatedAt = e.now
	e.m.states[st.ID] = st
	e.changed[st.ID] = true
}

func (e *evaluation) unlockIf(id string, cond bool) {
	st := e.state(id)
	if !cond || st.Unlocked {
		return
	}
	st.Unlocked = true
	st.UnlockedAt = e.now
	e.put(st)
}

func (e *evaluation) add(id string, n int) {
	if n <= 0 {
		return
	}
	e.setProgress(id, e.state(id).Progress+n)
}

func (e *evaluation) setProgress(id string, progress int) {
	st := e.state(id)
	if st.Unlocked {
		return
	}
	st.Progress = progress
	if def, ok := Lookup(id); ok && def.Target > 0 && progress >= def.Target {
		st.Unlocked = true
		st.UnlockedAt = e.now
	}
	e.put(st)
}

// streak counts consecutive calendar days with at least one session.
func (e *evaluation) streak(id string) {
	st := e.state(id)
	if st.Unlocked {
		return
	}

	switch days := daysBetween(st.UpdatedAt, e.now); {
	case st.UpdatedAt.IsZero() || st.Progress == 0:
		e.setProgress(id, 1)
	case days == 0:
		// Same day: progress unchanged.
	case days == 1:
		e.setProgress(id, st.Progress+1)
	default:
		e.setProgress(id, 1)
	}
}

// daysBetween returns the number of local calendar days from a to b.
func daysBetween(a, b time.Time) int {
	a, b = a.In(time.Local), b.In(time.Local)
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

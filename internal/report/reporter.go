// Package report fans a finished session out to the coaching, persistence
// and achievement collaborators without blocking the game.
package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typestrike/internal/stats"
)

// DefaultTimeout bounds each collaborator call.
const DefaultTimeout = 20 * time.Second

// ErrPanic wraps a panic recovered from a collaborator.
var ErrPanic = errors.New("report: collaborator panicked")

// FeedbackProvider produces coaching text for a session.
type FeedbackProvider interface {
	RequestFeedback(ctx context.Context, req stats.FeedbackRequest) (string, error)
}

// SessionRecorder persists a finished session.
type SessionRecorder interface {
	RecordSession(ctx context.Context, rec stats.SessionRecord) error
}

// AchievementEvaluator updates achievement progress and returns the names
// unlocked by this session.
type AchievementEvaluator interface {
	Evaluate(ctx context.Context, sig stats.AchievementSignals) ([]string, error)
}

// Reporter dispatches session summaries. Any collaborator may be nil.
type Reporter struct {
	feedback     FeedbackProvider
	recorder     SessionRecorder
	achievements AchievementEvaluator
	logger       *log.Logger
	timeout      time.Duration

	mu          sync.Mutex
	previousWPM int
}

// NewReporter creates a reporter. A nil logger uses log.Default() and a
// non-positive timeout uses DefaultTimeout.
func NewReporter(feedback FeedbackProvider, recorder SessionRecorder, achievements AchievementEvaluator, logger *log.Logger, timeout time.Duration) *Reporter {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Reporter{
		feedback:     feedback,
		recorder:     recorder,
		achievements: achievements,
		logger:       logger,
		timeout:      timeout,
	}
}

// SetPreviousWPM seeds the WPM the next feedback request compares against.
func (r *Reporter) SetPreviousWPM(wpm int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.previousWPM = wpm
}

// PreviousWPM returns the WPM of the last session sent for feedback.
func (r *Reporter) PreviousWPM() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.previousWPM
}

// Pending tracks the collaborator calls for one session. Feedback and
// Unlocked each deliver exactly one value.
type Pending struct {
	SessionID string
	Feedback  <-chan string
	Unlocked  <-chan []string

	wg sync.WaitGroup
}

// Wait blocks until every collaborator call has finished.
func (p *Pending) Wait() {
	p.wg.Wait()
}

// FallbackFeedback is shown when no coaching text is available.
func FallbackFeedback(score int) string {
	return fmt.Sprintf("Great job! You scored %d points!", score)
}

// Report starts the three collaborator calls and returns immediately.
func (r *Reporter) Report(ctx context.Context, s stats.Summary) *Pending {
	feedback := make(chan string, 1)
	unlocked := make(chan []string, 1)
	p := &Pending{
		SessionID: s.SessionID,
		Feedback:  feedback,
		Unlocked:  unlocked,
	}

	p.wg.Add(3)
	go func() {
		defer p.wg.Done()
		feedback <- r.requestFeedback(ctx, s)
	}()
	go func() {
		defer p.wg.Done()
		r.record(ctx, s)
	}()
	go func() {
		defer p.wg.Done()
		unlocked <- r.evaluate(ctx, s)
	}()
	return p
}

func (r *Reporter) requestFeedback(ctx context.Context, s stats.Summary) string {
	fallback := FallbackFeedback(s.Score)
	if r.feedback == nil {
		return fallback
	}

	r.mu.Lock()
	req := s.FeedbackRequest(r.previousWPM)
	r.mu.Unlock()

	text, err := call(ctx, r.timeout, func(ctx context.Context) (string, error) {
		return r.feedback.RequestFeedback(ctx, req)
	})

	r.mu.Lock()
	r.previousWPM = req.WPM
	r.mu.Unlock()

	if err != nil {
		r.logger.Warn("Coach feedback failed", "session", s.SessionID, "err", err)
		return fallback
	}
	if text == "" {
		return fallback
	}
	return text
}

func (r *Reporter) record(ctx context.Context, s stats.Summary) {
	if r.recorder == nil {
		return
	}
	rec := s.Record()
	_, err := call(ctx, r.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.recorder.RecordSession(ctx, rec)
	})
	if err != nil {
		r.logger.Error("Failed to record session", "session", s.SessionID, "err", err)
		return
	}
	r.logger.Debug("Session recorded", "session", s.SessionID, "score", rec.Score, "wpm", rec.WPM)
}

func (r *Reporter) evaluate(ctx context.Context, s stats.Summary) []string {
	if r.achievements == nil {
		return nil
	}
	sig := s.Signals()
	names, err := call(ctx, r.timeout, func(ctx context.Context) ([]string, error) {
		return r.achievements.Evaluate(ctx, sig)
	})
	if err != nil {
		r.logger.Error("Achievement evaluation failed", "session", s.SessionID, "err", err)
	}
	if len(names) > 0 {
		r.logger.Info("Achievements unlocked", "session", s.SessionID, "names", names)
	}
	return names
}

// call runs fn with a deadline. A collaborator that panics or ignores
// its context cannot hold up the caller past the timeout.
func call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- result{err: fmt.Errorf("%w: %v", ErrPanic, rec)}
			}
		}()
		v, err := fn(ctx)
		ch <- result{v: v, err: err}
	}()

	select {
	case res := <-ch:
		return res.v, res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

package stats

import "time"

// FeedbackRequest is what the coaching collaborator sees.
type FeedbackRequest struct {
	LevelName   string
	Outcome     Outcome
	Duration    time.Duration
	Score       int
	Total       int
	Accuracy    int
	WPM         int
	PreviousWPM int
	WeakLetters []string
}

// Improvement returns the WPM delta against the previous session,
// or 0 when there is no previous session.
func (r FeedbackRequest) Improvement() int {
	if r.PreviousWPM <= 0 {
		return 0
	}
	return r.WPM - r.PreviousWPM
}

// SessionRecord is the row handed to the persistence collaborator.
type SessionRecord struct {
	ID        string
	LevelID   string
	LevelName string
	Outcome   Outcome
	Score     int
	WPM       int
	Accuracy  int
	BestCombo int
	Duration  time.Duration
	CreatedAt time.Time
}

// AchievementSignals feeds the achievement evaluator.
type AchievementSignals struct {
	WPM          int
	Accuracy     int
	LevelOrdinal int
	BestCombo    int
	LettersTyped int
	WordsTyped   int
	EasterEggs   int
	Completed    bool
	PlayedAt     time.Time
}

// weakLetterCount is how many weak letters the coach is told about.
const weakLetterCount = 3

// FeedbackRequest packages the summary for the coaching collaborator.
func (s Summary) FeedbackRequest(previousWPM int) FeedbackRequest {
	return FeedbackRequest{
		LevelName:   s.LevelName,
		Outcome:     s.Outcome,
		Duration:    s.Elapsed,
		Score:       s.Score,
		Total:       s.Total,
		Accuracy:    s.Accuracy(),
		WPM:         s.WPM(),
		PreviousWPM: previousWPM,
		WeakLetters: s.WeakLetters(weakLetterCount),
	}
}

// Record packages the summary for the persistence collaborator.
func (s Summary) Record() SessionRecord {
	return SessionRecord{
		ID:        s.SessionID,
		LevelID:   s.LevelID,
		LevelName: s.LevelName,
		Outcome:   s.Outcome,
		Score:     s.Score,
		WPM:       s.WPM(),
		Accuracy:  s.Accuracy(),
		BestCombo: s.BestCombo,
		Duration:  s.Elapsed,
		CreatedAt: s.FinishedAt,
	}
}

// Signals packages the summary for the achievement evaluator.
func (s Summary) Signals() AchievementSignals {
	return AchievementSignals{
		WPM:          s.WPM(),
		Accuracy:     s.Accuracy(),
		LevelOrdinal: s.LevelOrdinal,
		BestCombo:    s.BestCombo,
		LettersTyped: s.Correct,
		WordsTyped:   s.Words,
		EasterEggs:   s.EasterEggs,
		Completed:    s.Completed(),
		PlayedAt:     s.FinishedAt,
	}
}

package stats

import (
	"reflect"
	"testing"
	"time"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name           string
		correct, total int
		want           int
	}{
		{"nothing typed", 0, 0, 100},
		{"perfect", 20, 20, 100},
		{"two thirds", 2, 3, 67},
		{"one third", 1, 3, 33},
		{"all wrong", 0, 7, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Accuracy(tc.correct, tc.total); got != tc.want {
				t.Errorf("Accuracy(%d, %d) = %d, expected %d", tc.correct, tc.total, got, tc.want)
			}
		})
	}
}

func TestWPM(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		elapsed time.Duration
		want    int
	}{
		{"zero duration", 50, 0, 0},
		{"one minute", 250, time.Minute, 50},
		{"thirty seconds", 60, 30 * time.Second, 24},
		{"rounding", 37, time.Minute, 7},
		{"nothing typed", 0, time.Minute, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WPM(tc.correct, tc.elapsed); got != tc.want {
				t.Errorf("WPM(%d, %v) = %d, expected %d", tc.correct, tc.elapsed, got, tc.want)
			}
		})
	}
}

func TestWeakLetters(t *testing.T) {
	misses := map[rune]int{'F': 4, 'J': 2, 'K': 4, 'D': 1}

	got := WeakLetters(misses, 2)
	want := []string{"F", "K"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WeakLetters(top=2) = %v, expected %v", got, want)
	}

	got = WeakLetters(misses, 0)
	want = []string{"F", "K", "J"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WeakLetters(top=0) = %v, expected %v", got, want)
	}

	if got := WeakLetters(nil, 3); len(got) != 0 {
		t.Errorf("WeakLetters(nil) = %v, expected empty", got)
	}
}

func TestSummaryPayloads(t *testing.T) {
	finished := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := Summary{
		SessionID:    "abc",
		Outcome:      OutcomeComplete,
		LevelID:      "1-1",
		LevelOrdinal: 1,
		LevelName:    "F & J",
		Score:        420,
		Correct:      45,
		Total:        50,
		Elapsed:      30 * time.Second,
		BestCombo:    21,
		Words:        3,
		EasterEggs:   1,
		Misses:       map[rune]int{'J': 3},
		FinishedAt:   finished,
	}

	fb := s.FeedbackRequest(12)
	if fb.Accuracy != 90 || fb.WPM != 18 || fb.PreviousWPM != 12 || fb.Total != 50 {
		t.Errorf("FeedbackRequest = %+v", fb)
	}
	if fb.Improvement() != 6 {
		t.Errorf("Improvement() = %d, expected 6", fb.Improvement())
	}
	if !reflect.DeepEqual(fb.WeakLetters, []string{"J"}) {
		t.Errorf("WeakLetters = %v, expected [J]", fb.WeakLetters)
	}

	rec := s.Record()
	if rec.Score != 420 || rec.LevelName != "F & J" || rec.Duration != 30*time.Second || rec.ID != "abc" {
		t.Errorf("Record = %+v", rec)
	}

	sig := s.Signals()
	if sig.LevelOrdinal != 1 || sig.BestCombo != 21 || sig.LettersTyped != 45 || sig.WordsTyped != 3 || !sig.Completed {
		t.Errorf("Signals = %+v", sig)
	}
	if !sig.PlayedAt.Equal(finished) {
		t.Errorf("PlayedAt = %v, expected %v", sig.PlayedAt, finished)
	}

	if (FeedbackRequest{WPM: 30}).Improvement() != 0 {
		t.Error("Improvement without previous session should be 0")
	}
}

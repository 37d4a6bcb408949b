package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typestrike/internal/achievements"
	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/stats"
	"github.com/vovakirdan/typestrike/internal/storage"
)

var played = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

type fakeStats struct {
	sessions []stats.SessionRecord
	limit    int
	err      error
}

func (f *fakeStats) RecentSessions(ctx context.Context, limit int) ([]stats.SessionRecord, error) {
	f.limit = limit
	return f.sessions, f.err
}

func (f *fakeStats) Overall(ctx context.Context) (storage.OverallStats, error) {
	return storage.OverallStats{
		Sessions:    len(f.sessions),
		Completed:   1,
		BestScore:   700,
		AvgWPM:      35.5,
		AvgAccuracy: 92,
		TotalTime:   90 * time.Second,
		LastPlayed:  played,
	}, f.err
}

func (f *fakeStats) BestByLevel(ctx context.Context) (map[string]int, error) {
	return map[string]int{"1-1": 700}, f.err
}

func newTestServer(t *testing.T, src *fakeStats, lister AchievementLister) *httptest.Server {
	t.Helper()
	h := NewHandler(HandlerDeps{Stats: src, Achievements: lister, Logger: log.New(io.Discard)})
	srv := httptest.NewServer(NewRouter(h, []string{"https://example.com"}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeStats{}, achievements.NewManager(nil))

	var body map[string]string
	resp := getJSON(t, srv.URL+"/healthz", &body)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz = %d %v", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestStats(t *testing.T) {
	src := &fakeStats{sessions: []stats.SessionRecord{{ID: "a"}, {ID: "b"}}}
	srv := newTestServer(t, src, nil)

	var body StatsResponse
	getJSON(t, srv.URL+"/api/stats", &body)
	if body.Sessions != 2 || body.BestScore != 700 || body.AvgWPM != 35.5 || body.TotalTimeMs != 90000 {
		t.Errorf("stats = %+v", body)
	}
	if !body.LastPlayed.Equal(played) {
		t.Errorf("LastPlayed = %v, expected %v", body.LastPlayed, played)
	}
}

func TestSessionsLimit(t *testing.T) {
	src := &fakeStats{sessions: []stats.SessionRecord{{
		ID: "s1", LevelID: "1-1", LevelName: "F & J", Outcome: stats.OutcomeGameOver,
		Score: 120, WPM: 20, Accuracy: 80, Duration: 12 * time.Second, CreatedAt: played,
	}}}
	srv := newTestServer(t, src, nil)

	tests := []struct {
		query    string
		status   int
		expected int
	}{
		{"", http.StatusOK, defaultSessionLimit},
		{"?limit=5", http.StatusOK, 5},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=abc", http.StatusBadRequest, 0},
		{"?limit=501", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		src.limit = 0
		var body []SessionResponse
		resp := getJSON(t, srv.URL+"/api/sessions"+tt.query, &body)
		if resp.StatusCode != tt.status {
			t.Errorf("GET sessions%s status = %d, expected %d", tt.query, resp.StatusCode, tt.status)
		}
		if src.limit != tt.expected {
			t.Errorf("GET sessions%s limit = %d, expected %d", tt.query, src.limit, tt.expected)
		}
		if tt.status == http.StatusOK {
			if len(body) != 1 || body[0].Outcome != "game_over" || body[0].DurationMs != 12000 {
				t.Errorf("sessions = %+v", body)
			}
		}
	}
}

func TestStoreErrorIs500(t *testing.T) {
	srv := newTestServer(t, &fakeStats{err: errors.New("db locked")}, nil)

	for _, path := range []string{"/api/stats", "/api/sessions", "/api/levels"} {
		resp := getJSON(t, srv.URL+path, nil)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("GET %s status = %d, expected 500", path, resp.StatusCode)
		}
	}
}

func TestAchievements(t *testing.T) {
	mgr := achievements.NewManager(nil)
	if _, err := mgr.Evaluate(context.Background(), stats.AchievementSignals{LettersTyped: 250, PlayedAt: played}); err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	srv := newTestServer(t, &fakeStats{}, mgr)

	var body []AchievementResponse
	getJSON(t, srv.URL+"/api/achievements", &body)
	if len(body) != len(achievements.Catalog) {
		t.Fatalf("achievements = %d, expected %d", len(body), len(achievements.Catalog))
	}
	byID := map[string]AchievementResponse{}
	for _, a := range body {
		byID[a.ID] = a
	}
	if first := byID["first-session"]; !first.Unlocked || first.UnlockedAt == nil {
		t.Errorf("first-session = %+v, expected unlocked with time", first)
	}
	if m := byID["marathon-runner"]; m.Progress != 250 || m.Percent != 25 {
		t.Errorf("marathon-runner = %+v, expected 250 progress, 25%%", m)
	}
}

func TestAchievementsRouteAbsentWithoutLister(t *testing.T) {
	srv := newTestServer(t, &fakeStats{}, nil)
	resp := getJSON(t, srv.URL+"/api/achievements", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", resp.StatusCode)
	}
}

func TestLevels(t *testing.T) {
	srv := newTestServer(t, &fakeStats{}, nil)

	var body []LevelResponse
	getJSON(t, srv.URL+"/api/levels", &body)
	if len(body) != typestrike.LevelCount() {
		t.Fatalf("levels = %d, expected %d", len(body), typestrike.LevelCount())
	}
	if body[0].ID != "1-1" || body[0].BestScore != 700 {
		t.Errorf("first level = %+v", body[0])
	}
	if body[1].BestScore != 0 {
		t.Errorf("second level best = %d, expected 0", body[1].BestScore)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &fakeStats{}, nil)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/levels", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Allow-Origin = %q, expected https://example.com", got)
	}
}

func TestServerStopsOnCancel(t *testing.T) {
	h := NewHandler(HandlerDeps{Logger: log.New(io.Discard)})
	s := NewServer("127.0.0.1:0", NewRouter(h, nil), log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, expected nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

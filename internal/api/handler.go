// Package api serves read-only player statistics over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typestrike/internal/achievements"
	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/stats"
	"github.com/vovakirdan/typestrike/internal/storage"
)

const (
	defaultSessionLimit = 20
	maxSessionLimit     = 500
)

// StatsSource is the read side of the session store.
type StatsSource interface {
	RecentSessions(ctx context.Context, limit int) ([]stats.SessionRecord, error)
	Overall(ctx context.Context) (storage.OverallStats, error)
	BestByLevel(ctx context.Context) (map[string]int, error)
}

// AchievementLister provides achievement progress.
type AchievementLister interface {
	All(ctx context.Context) ([]achievements.Achievement, error)
}

type HandlerDeps struct {
	Stats        StatsSource
	Achievements AchievementLister
	Logger       *log.Logger
}

type Handler struct {
	stats        StatsSource
	achievements AchievementLister
	logger       *log.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		stats:        deps.Stats,
		achievements: deps.Achievements,
		logger:       logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	o, err := h.stats.Overall(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		Sessions:    o.Sessions,
		Completed:   o.Completed,
		BestScore:   o.BestScore,
		AvgWPM:      o.AvgWPM,
		AvgAccuracy: o.AvgAccuracy,
		TotalTimeMs: o.TotalTime.Milliseconds(),
		LastPlayed:  o.LastPlayed,
	})
}

func (h *Handler) Sessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultSessionLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxSessionLimit {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be between 1 and 500"})
			return
		}
		limit = n
	}

	records, err := h.stats.RecentSessions(r.Context(), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := make([]SessionResponse, len(records))
	for i, rec := range records {
		out[i] = SessionResponse{
			ID:         rec.ID,
			LevelID:    rec.LevelID,
			LevelName:  rec.LevelName,
			Outcome:    string(rec.Outcome),
			Score:      rec.Score,
			WPM:        rec.WPM,
			Accuracy:   rec.Accuracy,
			BestCombo:  rec.BestCombo,
			DurationMs: rec.Duration.Milliseconds(),
			CreatedAt:  rec.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Achievements(w http.ResponseWriter, r *http.Request) {
	all, err := h.achievements.All(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := make([]AchievementResponse, len(all))
	for i, a := range all {
		out[i] = AchievementResponse{
			ID:          a.Definition.ID,
			Name:        a.Name,
			Description: a.Description,
			Unlocked:    a.Unlocked,
			Progress:    a.Progress,
			Target:      a.Target,
			Percent:     a.Percent(),
		}
		if a.Unlocked && !a.UnlockedAt.IsZero() {
			at := a.UnlockedAt
			out[i].UnlockedAt = &at
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Levels(w http.ResponseWriter, r *http.Request) {
	best := map[string]int{}
	if h.stats != nil {
		b, err := h.stats.BestByLevel(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		best = b
	}

	out := make([]LevelResponse, typestrike.LevelCount())
	for i := range out {
		lvl := typestrike.GetLevel(i)
		out[i] = LevelResponse{
			ID:          lvl.ID,
			Number:      lvl.Number,
			Name:        lvl.Name,
			Description: lvl.Description,
			Letters:     lvl.Letters,
			Words:       lvl.Words,
			FallSpeed:   lvl.FallSpeed,
			SpawnRate:   lvl.SpawnRate,
			Duration:    lvl.Duration,
			BestScore:   best[lvl.ID],
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("Request failed", "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client may have gone away
	json.NewEncoder(w).Encode(v)
}

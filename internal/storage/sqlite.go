// Package storage provides SQLite-based persistence for typing sessions
// and achievement progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/typestrike/internal/achievements"
	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/stats"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02 15:04:05.000000"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// OverallStats aggregates every recorded session.
type OverallStats struct {
	Sessions    int
	Completed   int
	BestScore   int
	AvgWPM      float64
	AvgAccuracy float64
	TotalTime   time.Duration
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Reporter goroutines write concurrently; SQLite wants one writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			level_name TEXT NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			best_combo INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_level ON sessions(level_id, score DESC);

		CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			unlocked INTEGER NOT NULL DEFAULT 0,
			unlocked_at TEXT,
			progress INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordSession stores a finished session. Missing id and timestamp are
// filled in.
func (s *Store) RecordSession(ctx context.Context, rec stats.SessionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions
		 (id, level_id, level_name, outcome, score, wpm, accuracy, best_combo, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.LevelID,
		rec.LevelName,
		string(rec.Outcome),
		rec.Score,
		rec.WPM,
		rec.Accuracy,
		rec.BestCombo,
		rec.Duration.Milliseconds(),
		formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

const sessionColumns = `id, level_id, level_name, outcome, score, wpm, accuracy, best_combo, duration_ms, created_at`

// RecentSessions returns the newest sessions first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]stats.SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []stats.SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// LatestSession returns the most recent session, or nil if none exist.
func (s *Store) LatestSession(ctx context.Context) (*stats.SessionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT 1`,
	)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// BestScore returns the highest score, optionally for one level.
// Returns 0 if no sessions exist.
func (s *Store) BestScore(ctx context.Context, levelID string) (int, error) {
	var score sql.NullInt64
	query := "SELECT MAX(score) FROM sessions"
	var args []any
	if levelID != "" {
		query += " WHERE level_id = ?"
		args = append(args, levelID)
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// BestByLevel returns the best score per level id.
func (s *Store) BestByLevel(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level_id, MAX(score) FROM sessions GROUP BY level_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level bests: %w", err)
	}
	defer rows.Close()

	best := make(map[string]int)
	for rows.Next() {
		var id string
		var score int
		if err := rows.Scan(&id, &score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best[id] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// Overall aggregates all sessions.
func (s *Store) Overall(ctx context.Context) (OverallStats, error) {
	var o OverallStats
	var totalMs int64
	var last sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(wpm), 0),
		        COALESCE(AVG(accuracy), 0),
		        COALESCE(SUM(duration_ms), 0),
		        MAX(created_at)
		 FROM sessions`,
		string(stats.OutcomeComplete),
	).Scan(&o.Sessions, &o.Completed, &o.BestScore, &o.AvgWPM, &o.AvgAccuracy, &totalMs, &last)
	if err != nil {
		return o, fmt.Errorf("storage: cannot get overall stats: %w", err)
	}

	o.TotalTime = time.Duration(totalMs) * time.Millisecond
	if last.Valid {
		o.LastPlayed = parseTime(last.String)
	}
	return o, nil
}

// ClearSessions deletes the whole session history.
func (s *Store) ClearSessions(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// LoadAchievements returns every stored achievement state keyed by id.
func (s *Store) LoadAchievements(ctx context.Context) (map[string]achievements.State, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, unlocked, unlocked_at, progress, updated_at FROM achievements`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	states := make(map[string]achievements.State)
	for rows.Next() {
		var st achievements.State
		var unlockedAt, updatedAt sql.NullString
		if err := rows.Scan(&st.ID, &st.Unlocked, &unlockedAt, &st.Progress, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if unlockedAt.Valid {
			st.UnlockedAt = parseTime(unlockedAt.String)
		}
		if updatedAt.Valid {
			st.UpdatedAt = parseTime(updatedAt.String)
		}
		states[st.ID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return states, nil
}

// SaveAchievement inserts or replaces one achievement state.
func (s *Store) SaveAchievement(ctx context.Context, st achievements.State) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO achievements (id, unlocked, unlocked_at, progress, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   unlocked = excluded.unlocked,
		   unlocked_at = excluded.unlocked_at,
		   progress = excluded.progress,
		   updated_at = excluded.updated_at`,
		st.ID, st.Unlocked, nullTime(st.UnlockedAt), st.Progress, nullTime(st.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save achievement %s: %w", st.ID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(sc scanner) (stats.SessionRecord, error) {
	var rec stats.SessionRecord
	var outcome, createdAt string
	var durationMs int64

	err := sc.Scan(
		&rec.ID,
		&rec.LevelID,
		&rec.LevelName,
		&outcome,
		&rec.Score,
		&rec.WPM,
		&rec.Accuracy,
		&rec.BestCombo,
		&durationMs,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	rec.Outcome = stats.Outcome(outcome)
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

// parseTime reads stored timestamps, including rows written by SQLite's
// CURRENT_TIMESTAMP.
func parseTime(v string) time.Time {
	for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

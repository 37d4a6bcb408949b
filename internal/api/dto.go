package api

import "time"

type StatsResponse struct {
	Sessions    int       `json:"sessions"`
	Completed   int       `json:"completed"`
	BestScore   int       `json:"best_score"`
	AvgWPM      float64   `json:"avg_wpm"`
	AvgAccuracy float64   `json:"avg_accuracy"`
	TotalTimeMs int64     `json:"total_time_ms"`
	LastPlayed  time.Time `json:"last_played"`
}

type SessionResponse struct {
	ID         string    `json:"id"`
	LevelID    string    `json:"level_id"`
	LevelName  string    `json:"level_name"`
	Outcome    string    `json:"outcome"`
	Score      int       `json:"score"`
	WPM        int       `json:"wpm"`
	Accuracy   int       `json:"accuracy"`
	BestCombo  int       `json:"best_combo"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type AchievementResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	Progress    int        `json:"progress"`
	Target      int        `json:"target"`
	Percent     int        `json:"percent"`
}

type LevelResponse struct {
	ID          string   `json:"id"`
	Number      int      `json:"number"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Letters     []string `json:"letters"`
	Words       []string `json:"words,omitempty"`
	FallSpeed   float64  `json:"fall_speed"`
	SpawnRate   float64  `json:"spawn_rate"`
	Duration    float64  `json:"duration"`
	BestScore   int      `json:"best_score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts lives and fall speed for a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Gameplay.Difficulty = string(preset)
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.MaxLives = 7
		cfg.Gameplay.SpeedScale = 0.8
	case DifficultyNormal:
		cfg.Gameplay.MaxLives = 5
		cfg.Gameplay.SpeedScale = 1.0
	case DifficultyHard:
		cfg.Gameplay.MaxLives = 3
		cfg.Gameplay.SpeedScale = 1.25
	}
}

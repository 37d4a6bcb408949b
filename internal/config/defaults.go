package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/typestrike.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Gameplay: GameplayConfig{
			Difficulty:   string(DifficultyNormal),
			MaxLives:     5,
			SpeedScale:   1.0,
			StartLevel:   1,
			TickRate:     60,
			MaxTickDelta: 250 * time.Millisecond,
		},
		Coach: CoachConfig{
			Provider:    "local",
			Endpoint:    "http://localhost:11434/api/generate",
			Model:       "gemma3:270m",
			APIKeyEnv:   "TYPESTRIKE_COACH_API_KEY",
			Timeout:     15 * time.Second,
			MaxTokens:   100,
			Temperature: 0.7,
		},
		Audio: AudioConfig{
			Enabled: true,
			Notes:   true,
		},
		Storage: StorageConfig{
			Path: "~/.typestrike/typestrike.db",
		},
		Server: ServerConfig{
			SSHAddress:  ":23234",
			IdleTimeout: 30 * time.Minute,
			HTTPAddress: ":8080",
			CORSOrigins: []string{"*"},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

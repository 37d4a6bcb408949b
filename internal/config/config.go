// Package config provides YAML and TOML configuration loading, difficulty
// presets and .env support for TypeStrike.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Gameplay GameplayConfig `yaml:"gameplay" toml:"gameplay"`
	Coach    CoachConfig    `yaml:"coach" toml:"coach"`
	Audio    AudioConfig    `yaml:"audio" toml:"audio"`
	Storage  StorageConfig  `yaml:"storage" toml:"storage"`
	Server   ServerConfig   `yaml:"server" toml:"server"`
}

// GameplayConfig tunes the simulation and its host loop.
type GameplayConfig struct {
	Difficulty   string        `yaml:"difficulty" toml:"difficulty"`
	MaxLives     int           `yaml:"max_lives" toml:"max_lives"`
	SpeedScale   float64       `yaml:"speed_scale" toml:"speed_scale"`
	StartLevel   int           `yaml:"start_level" toml:"start_level"` // 1-based
	TickRate     int           `yaml:"tick_rate" toml:"tick_rate"`
	MaxTickDelta time.Duration `yaml:"max_tick_delta" toml:"max_tick_delta"`
}

// CoachConfig selects and configures the coaching provider.
type CoachConfig struct {
	Provider    string        `yaml:"provider" toml:"provider"` // local, remote or disabled
	Endpoint    string        `yaml:"endpoint" toml:"endpoint"`
	Model       string        `yaml:"model" toml:"model"`
	APIKey      string        `yaml:"api_key" toml:"api_key"`
	APIKeyEnv   string        `yaml:"api_key_env" toml:"api_key_env"`
	Timeout     time.Duration `yaml:"timeout" toml:"timeout"`
	MaxTokens   int           `yaml:"max_tokens" toml:"max_tokens"`
	Temperature float64       `yaml:"temperature" toml:"temperature"`
}

// AudioConfig controls sound output.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Notes   bool    `yaml:"notes" toml:"notes"`   // Per-key musical notes
	Volume  float64 `yaml:"volume" toml:"volume"` // Attenuation in beep volume steps, 0 = unchanged
}

// StorageConfig locates the local database.
type StorageConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// ServerConfig configures the SSH and HTTP servers of `typestrike serve`.
type ServerConfig struct {
	SSHAddress  string        `yaml:"ssh_address" toml:"ssh_address"`
	HostKeyPath string        `yaml:"host_key_path" toml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout" toml:"idle_timeout"`
	HTTPAddress string        `yaml:"http_address" toml:"http_address"`
	CORSOrigins []string      `yaml:"cors_origins" toml:"cors_origins"`
}

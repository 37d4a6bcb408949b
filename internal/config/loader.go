package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Load reads the configuration.
// Search order: customPath -> ~/.typestrike/configs/typestrike.{yaml,toml}
// -> ./configs/typestrike.{yaml,toml} -> embedded default -> DefaultConfig.
// Only a broken customPath is an error; other candidates are skipped.
// Values missing from a file keep their defaults.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		cfg := DefaultConfig()
		if err := decodeFile(customPath, &cfg); err != nil {
			return cfg, err
		}
		return finalize(cfg), nil
	}

	var candidates []string
	if dir := userConfigDir(); dir != "" {
		candidates = append(candidates,
			filepath.Join(dir, "typestrike.yaml"),
			filepath.Join(dir, "typestrike.toml"),
		)
	}
	candidates = append(candidates,
		filepath.Join("configs", "typestrike.yaml"),
		filepath.Join("configs", "typestrike.toml"),
	)

	for _, path := range candidates {
		cfg := DefaultConfig()
		if err := decodeFile(path, &cfg); err == nil {
			return finalize(cfg), nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return finalize(cfg), nil
}

// decodeFile parses path into cfg, choosing the format by extension.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// finalize fills zero values a partial file may have cleared.
func finalize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Gameplay.MaxLives <= 0 {
		cfg.Gameplay.MaxLives = def.Gameplay.MaxLives
	}
	if cfg.Gameplay.SpeedScale <= 0 {
		cfg.Gameplay.SpeedScale = def.Gameplay.SpeedScale
	}
	if cfg.Gameplay.StartLevel <= 0 {
		cfg.Gameplay.StartLevel = 1
	}
	if cfg.Gameplay.TickRate <= 0 {
		cfg.Gameplay.TickRate = def.Gameplay.TickRate
	}
	if cfg.Gameplay.MaxTickDelta <= 0 {
		cfg.Gameplay.MaxTickDelta = def.Gameplay.MaxTickDelta
	}
	if cfg.Coach.Provider == "" {
		cfg.Coach.Provider = "disabled"
	}
	if cfg.Coach.Timeout <= 0 {
		cfg.Coach.Timeout = def.Coach.Timeout
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = def.Storage.Path
	}
	return cfg
}

// userConfigDir returns ~/.typestrike/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".typestrike", "configs")
}

// LoadEnv loads KEY=value pairs from a .env file into the process
// environment. A missing file is not an error. Existing variables win.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return nil
}

// ResolveAPIKey returns the coach API key, preferring the environment
// variable named by APIKeyEnv over the inline value.
func (c CoachConfig) ResolveAPIKey() string {
	if c.APIKeyEnv != "" {
		if v := os.Getenv(c.APIKeyEnv); v != "" {
			return v
		}
	}
	return c.APIKey
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: cannot get home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

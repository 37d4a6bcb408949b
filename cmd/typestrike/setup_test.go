package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func setFlags(t *testing.T, configPath, difficulty string) {
	t.Helper()
	oldConfig, oldEnv, oldDiff, oldDB, oldFPS := flagConfig, flagEnvFile, flagDifficulty, flagDBPath, flagFPS
	t.Cleanup(func() {
		flagConfig, flagEnvFile, flagDifficulty, flagDBPath, flagFPS = oldConfig, oldEnv, oldDiff, oldDB, oldFPS
	})
	flagConfig = configPath
	flagEnvFile = filepath.Join(t.TempDir(), "missing.env")
	flagDifficulty = difficulty
	flagDBPath = ""
	flagFPS = 0
}

func TestLoadConfigDifficulty(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		flag      string
		wantLives int
		wantScale float64
		wantErr   bool
	}{
		{
			name:      "file values kept for normal",
			file:      "gameplay:\n  difficulty: normal\n  max_lives: 6\n  speed_scale: 1.1\n",
			wantLives: 6,
			wantScale: 1.1,
		},
		{
			name:      "file preset applied",
			file:      "gameplay:\n  difficulty: hard\n",
			wantLives: 3,
			wantScale: 1.25,
		},
		{
			name:      "flag overrides file",
			file:      "gameplay:\n  difficulty: hard\n",
			flag:      "easy",
			wantLives: 7,
			wantScale: 0.8,
		},
		{
			name:    "unknown preset",
			file:    "gameplay:\n  difficulty: brutal\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setFlags(t, writeConfig(t, "typestrike.yaml", tt.file), tt.flag)

			cfg, err := loadConfig()
			if tt.wantErr {
				if err == nil {
					t.Fatal("loadConfig() succeeded, expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			if cfg.Gameplay.MaxLives != tt.wantLives {
				t.Errorf("MaxLives = %d, expected %d", cfg.Gameplay.MaxLives, tt.wantLives)
			}
			if cfg.Gameplay.SpeedScale != tt.wantScale {
				t.Errorf("SpeedScale = %v, expected %v", cfg.Gameplay.SpeedScale, tt.wantScale)
			}
		})
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	setFlags(t, writeConfig(t, "typestrike.toml", "[gameplay]\ntick_rate = 30\n"), "")
	flagDBPath = "/tmp/other.db"
	flagFPS = 90

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Storage.Path != "/tmp/other.db" {
		t.Errorf("Storage.Path = %q, expected /tmp/other.db", cfg.Storage.Path)
	}
	if cfg.Gameplay.TickRate != 90 {
		t.Errorf("TickRate = %d, expected 90", cfg.Gameplay.TickRate)
	}
}

func TestRuntimeConfig(t *testing.T) {
	setFlags(t, writeConfig(t, "typestrike.yaml", "gameplay:\n  tick_rate: 30\n  max_tick_delta: 100ms\n"), "")
	oldSeed := flagSeed
	t.Cleanup(func() { flagSeed = oldSeed })
	flagSeed = 42

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	rc := runtimeConfig(cfg, 100, 40)
	if rc.ScreenW != 100 || rc.ScreenH != 40 {
		t.Errorf("screen = %dx%d, expected 100x40", rc.ScreenW, rc.ScreenH)
	}
	if rc.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", rc.TickRate)
	}
	if rc.MaxDelta != 100*time.Millisecond {
		t.Errorf("MaxDelta = %v, expected 100ms", rc.MaxDelta)
	}
	if rc.Seed != 42 {
		t.Errorf("Seed = %d, expected 42", rc.Seed)
	}

	opts := gameOptions(cfg, nil)
	if opts.StartLevel != 0 {
		t.Errorf("StartLevel = %d, expected 0", opts.StartLevel)
	}
}

func TestNilProfileServices(t *testing.T) {
	var p *profile
	svc := p.services(nil)
	if svc.Recorder != nil || svc.History != nil || svc.Evaluator != nil || svc.Achievements != nil {
		t.Errorf("services of nil profile = %+v, expected all nil", svc)
	}
}

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23234", "23234"},
		{"0.0.0.0:2222", "2222"},
		{"bogus", "bogus"},
	}
	for _, tt := range tests {
		if got := portOf(tt.addr); got != tt.want {
			t.Errorf("portOf(%q) = %q, expected %q", tt.addr, got, tt.want)
		}
	}
}

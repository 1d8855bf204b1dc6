package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Quiz.Tier != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfig(t, `
[quiz]
tier = "hard"
reveal-delay = "300ms"
max-attempts = 50
seed = 7

[log]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Quiz.Tier == nil || *cfg.Quiz.Tier != "hard" {
		t.Fatalf("unexpected tier %v", cfg.Quiz.Tier)
	}
	if cfg.Quiz.RevealDelay == nil || *cfg.Quiz.RevealDelay != "300ms" {
		t.Fatalf("unexpected reveal delay %v", cfg.Quiz.RevealDelay)
	}
	if cfg.Quiz.MaxAttempts == nil || *cfg.Quiz.MaxAttempts != 50 {
		t.Fatalf("unexpected max attempts %v", cfg.Quiz.MaxAttempts)
	}
	if cfg.Quiz.Seed == nil || *cfg.Quiz.Seed != 7 {
		t.Fatalf("unexpected seed %v", cfg.Quiz.Seed)
	}
	if cfg.Quiz.Custom != nil {
		t.Fatalf("expected custom to be unset")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" || cfg.Log.Format != nil {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "[quiz]\nwords = 25\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "quiz.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigInvalidToml(t *testing.T) {
	path := writeConfig(t, "[quiz\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "mental-maths", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/tmp/data", "mental-maths", "mentalmaths.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}

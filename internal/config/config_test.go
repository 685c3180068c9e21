package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Insights.RecentLimit != 10 {
		t.Errorf("recent_limit = %d, want 10", cfg.Insights.RecentLimit)
	}
	if cfg.Insights.NudgeThreshold != 6 {
		t.Errorf("nudge_threshold = %v, want 6", cfg.Insights.NudgeThreshold)
	}
	if cfg.Notifications.MinInterval != 30*time.Minute {
		t.Errorf("min_interval = %v, want 30m", cfg.Notifications.MinInterval)
	}
	if cfg.Database.DSN != "" || cfg.Log.Debug {
		t.Errorf("unexpected non-defaults: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: postgres://unwind@localhost/unwind
log:
  debug: true
  dir: /tmp/unwind-logs
insights:
  recent_limit: 25
  nudge_threshold: 7.5
notifications:
  min_interval: 2h
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.DSN != "postgres://unwind@localhost/unwind" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if !IsPostgresDSN(cfg.Database.DSN) {
		t.Error("expected postgres dsn")
	}
	if !cfg.Log.Debug || cfg.Log.Dir != "/tmp/unwind-logs" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Insights.RecentLimit != 25 || cfg.Insights.NudgeThreshold != 7.5 {
		t.Errorf("insights = %+v", cfg.Insights)
	}
	if cfg.Notifications.MinInterval != 2*time.Hour {
		t.Errorf("min_interval = %v", cfg.Notifications.MinInterval)
	}
	if dir, _ := cfg.LogDir(); dir != "/tmp/unwind-logs" {
		t.Errorf("LogDir = %q", dir)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "insights:\n  recent_limit: 25\n")
	t.Setenv("UNWIND_INSIGHTS_RECENT_LIMIT", "40")
	t.Setenv("UNWIND_DATABASE_DSN", "/tmp/other.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Insights.RecentLimit != 40 {
		t.Errorf("recent_limit = %d, want 40", cfg.Insights.RecentLimit)
	}
	if cfg.Database.DSN != "/tmp/other.db" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"limit", "insights:\n  recent_limit: 1000\n", "recent_limit"},
		{"threshold", "insights:\n  nudge_threshold: 11\n", "nudge_threshold"},
	}
	for _, tt := range tests {
		_, err := Load(writeConfig(t, tt.yaml))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: got %v, want error mentioning %s", tt.name, err, tt.want)
		}
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"UNWIND_DATABASE_DSN":               "database.dsn",
		"UNWIND_INSIGHTS_NUDGE_THRESHOLD":   "insights.nudge_threshold",
		"UNWIND_NOTIFICATIONS_MIN_INTERVAL": "notifications.min_interval",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefault(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}

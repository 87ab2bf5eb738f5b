package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.SchedulerBuffer != 16 || cfg.DefaultExamHour != 12 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogLevel != "INFO" || cfg.DesktopNotifications {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !strings.HasSuffix(cfg.DatabasePath, "buzzer.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SchedulerBuffer != Default().SchedulerBuffer {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "database_path: /tmp/study.db\nlog_level: DEBUG\ndefault_exam_hour: 9\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BUZZER_LOG_LEVEL", "ERROR")
	t.Setenv("BUZZER_DESKTOP_NOTIFICATIONS", "yes")
	t.Setenv("BUZZER_SCHEDULER_BUFFER", "64")
	t.Setenv("BUZZER_DEFAULT_EXAM_HOUR", "31")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabasePath != "/tmp/study.db" {
		t.Fatalf("file value lost: %+v", cfg)
	}
	if cfg.LogLevel != "ERROR" || !cfg.DesktopNotifications || cfg.SchedulerBuffer != 64 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.DefaultExamHour != 9 {
		t.Fatalf("out-of-range env hour should be ignored: %+v", cfg)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.DatabasePath = "/data/buzzer.db"
	cfg.DesktopNotifications = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, cfg)
	}
}

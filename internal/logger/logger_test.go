package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		" warn ":  WARN,
		"ERROR":   ERROR,
		"verbose": INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLoggerFiltersByLevelAndWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: WARN, Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Info("hidden")
	l.WithFields(F("task", 3)).Warn("goal reached", F("seconds", 60))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "goal reached | task=3 seconds=60") {
		t.Fatalf("unexpected entry: %q", out)
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Fatalf("expected caller in entry: %q", out)
	}
}

func TestLoggerRotatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "buzzer.log")
	l, err := New(Config{Level: DEBUG, FilePath: path, MaxSize: 64})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer l.Close()

	for i := 0; i < 4; i++ {
		l.Info("a fairly long log line to push the file over its size limit")
	}
	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected rotated file: %v", err)
	}
}

func TestGlobalLoggerIsNoopBeforeInit(t *testing.T) {
	_ = Close()
	Info("dropped")

	var buf bytes.Buffer
	if err := Init(Config{Level: INFO, Output: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer Close()
	Info("kept")
	if !strings.Contains(buf.String(), "kept") || strings.Contains(buf.String(), "dropped") {
		t.Fatalf("unexpected global output: %q", buf.String())
	}
}

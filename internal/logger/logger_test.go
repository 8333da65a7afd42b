package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_CreatesLogDir(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{ConfigDir: dir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	if err := Init(Config{ConfigDir: t.TempDir(), Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantInfo  bool
		wantDebug bool
	}{
		{"default warn", Config{}, false, false},
		{"info level", Config{Level: "info"}, true, false},
		{"debug flag wins", Config{Debug: true, Level: "error"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := InitWriter(&buf, tt.cfg); err != nil {
				t.Fatalf("InitWriter failed: %v", err)
			}
			Info("info line")
			Debug("debug line")
			Warn("warn line")

			out := buf.String()
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if !strings.Contains(out, "warn line") {
				t.Error("warn line missing")
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf, Config{JSON: true}); err != nil {
		t.Fatalf("InitWriter failed: %v", err)
	}
	Error("boom", "code", 7)
	out := buf.String()
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"msg":"boom"`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	Logger = nil
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
	if With("k", "v") != nil {
		t.Error("With should return nil before Init")
	}
}

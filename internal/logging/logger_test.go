package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hbnb.log")
	logger, closer, err := New(Options{Level: "info", Path: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown", "key", "User.1")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	s := string(content)
	if strings.Contains(s, "hidden") {
		t.Errorf("debug record written at info level: %q", s)
	}
	if !strings.Contains(s, "msg=shown") || !strings.Contains(s, "key=User.1") {
		t.Errorf("log = %q, want shown record", s)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbnb.log")
	logger, closer, err := New(Options{Level: "warn", Format: "json", Path: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Warn("careful")
	closer.Close()

	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), `"msg":"careful"`) {
		t.Errorf("log = %q, want JSON record", content)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("New() should reject unknown format")
	}
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("New() should reject unknown level")
	}
}

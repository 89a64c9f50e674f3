package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dictation-overlay/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v; want %v", name, got, want)
		}
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.log")

	logger, closer := New(config.LogConfig{Level: "warn", File: path, MaxSizeMB: 1})
	logger.Info("dropped below level")
	logger.Warn("shape update failed", "error", "rejected")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "shape update failed") {
		t.Errorf("log file missing warn record:\n%s", out)
	}
	if strings.Contains(out, "dropped below level") {
		t.Errorf("log file contains record below configured level:\n%s", out)
	}
}

func TestNew_NoFile(t *testing.T) {
	logger, closer := New(config.LogConfig{})
	if logger == nil {
		t.Fatal("New returned nil logger")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close() = %v; want nil", err)
	}
}

package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	Init()
	s := Load()

	if s.Port != 8000 {
		t.Errorf("Port = %d, want 8000", s.Port)
	}
	if s.AuditDB != "audits.db" {
		t.Errorf("AuditDB = %q, want audits.db", s.AuditDB)
	}
	// Must match the fetcher's own default so flag-less and server runs
	// behave identically.
	if s.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", s.FetchTimeout)
	}
	if s.NIMAPIKey != "" {
		t.Errorf("NIMAPIKey = %q, want empty by default", s.NIMAPIKey)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("A11Y_PORT", "9090")
	t.Setenv("A11Y_LOG_LEVEL", "debug")
	t.Setenv("A11Y_NIM_API_KEY", "nvapi-test")

	Init()
	s := Load()

	if s.Port != 9090 {
		t.Errorf("Port = %d, want 9090 from A11Y_PORT", s.Port)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
	if s.NIMAPIKey != "nvapi-test" {
		t.Errorf("NIMAPIKey = %q", s.NIMAPIKey)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		s := Settings{LogLevel: tt.level}
		if got := s.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

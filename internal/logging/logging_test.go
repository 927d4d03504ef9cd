package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{" INFO ", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", 0, false},
		{"1", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFromEnv(t *testing.T) {
	var buf bytes.Buffer
	l := FromEnv("warn", &buf)
	l.Info("hidden")
	l.Warn("shown", "run_id", "abc")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record leaked at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "run_id=abc") {
		t.Errorf("missing warn record: %s", out)
	}

	buf.Reset()
	FromEnv("", &buf).Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("unset level should discard, got %s", buf.String())
	}
}

func TestDefaultIsStable(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default returned different loggers")
	}
}

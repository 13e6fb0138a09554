package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	defer SetLevel(Notice)

	logger := New("test")

	SetLevel(Notice)
	logger.Debugf("hidden %d", 1)
	logger.Noticef("visible %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Errorf("debug message should be filtered at notice level, got %q", out)
	}
	if !strings.Contains(out, "visible 2") {
		t.Errorf("expected notice message in output, got %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("expected module name in output, got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("expected debug message at debug level, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected Level
	}{
		{"debug", Debug},
		{"info", Info},
		{"warn", Warning},
		{"warning", Warning},
		{"error", Error},
		{"", Notice},
		{"bogus", Notice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %d, want %d", tt.name, got, tt.expected)
			}
		})
	}
}

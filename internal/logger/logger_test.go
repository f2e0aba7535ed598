package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &StdLogger{
		logger: log.New(&buf, "", 0),
	}

	tests := []struct {
		name     string
		fn       func()
		expected string
	}{
		{
			name:     "Info",
			fn:       func() { l.Info("saved state %d", 3) },
			expected: "[INFO] saved state 3",
		},
		{
			name:     "Warn",
			fn:       func() { l.Warn("failed to delete %s", "state_001.zip") },
			expected: "[WARN] failed to delete state_001.zip",
		},
		{
			name:     "Error",
			fn:       func() { l.Error("restore failed") },
			expected: "[ERROR] restore failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn()
			got := strings.TrimSpace(buf.String())
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStdLoggerDebugGate(t *testing.T) {
	var buf bytes.Buffer
	l := &StdLogger{logger: log.New(&buf, "", 0)}

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug emitted while disabled")
	}

	l.SetDebug(true)
	l.Debug("shown")
	if !strings.Contains(buf.String(), "[DEBUG] shown") {
		t.Errorf("debug not emitted when enabled: %q", buf.String())
	}
}

func TestDefault(t *testing.T) {
	if Default == nil {
		t.Error("Default logger should not be nil")
	}
}

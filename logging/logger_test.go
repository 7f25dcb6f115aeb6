package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer, level string) *Logger {
	l := New(Config{Level: level, Output: buf})
	l.now = func() time.Time { return time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC) }
	return l
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{" warning ", WARN},
		{"error", ERROR},
		{"fatal", FATAL},
		{"nonsense", INFO},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, "warn")

	l.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Warnf("shown %d", 2)
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "2025-09-07 13:00:00.000")
}

func TestLogger_PrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, "debug").WithPrefix("Scoring").WithPrefix("Week")

	l.WithFields(Fields{"week": 3, "orphans": 2}).Info("warnings")

	out := buf.String()
	assert.Contains(t, out, "[Scoring:Week]")
	assert.Contains(t, out, "warnings orphans=2 week=3")
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(&buf, "info")

	_ = parent.WithField("user", "a@example.com")
	parent.Info("plain")

	assert.NotContains(t, buf.String(), "user=")
}

func TestLogger_FatalCallsExit(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, "info")
	code := 0
	l.exit = func(c int) { code = c }

	l.Fatalf("boom")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "FATAL")
}

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		logFunc func(Logger, string)
		logged  bool
	}{
		{"debug at debug", LevelDebug, func(l Logger, m string) { l.Debug(m) }, true},
		{"debug at info", LevelInfo, func(l Logger, m string) { l.Debug(m) }, false},
		{"info at info", LevelInfo, func(l Logger, m string) { l.Info(m) }, true},
		{"warn at error", LevelError, func(l Logger, m string) { l.Warn(m) }, false},
		{"error at error", LevelError, func(l Logger, m string) { l.Error(m) }, true},
		{"error at silent", LevelSilent, func(l Logger, m string) { l.Error(m) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.logFunc(NewLogger(tt.level, buf), "test message")

			if tt.logged {
				assert.Contains(t, buf.String(), "test message")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestLogger_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(LevelInfo, buf).(*standardLogger)
	l.now = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }

	l.Info("resolved", F("template", "acme.txt"), F("status", "added"))

	assert.Equal(t, "2026-10-17 09:30:00 [INFO] resolved | template=acme.txt status=added\n", buf.String())
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	base := NewLogger(LevelDebug, buf)

	scoped := base.WithFields(F("generator", "model"))
	scoped.Debug("binding", F("args", 1))
	base.Debug("plain")

	out := buf.String()
	assert.Contains(t, out, "binding | generator=model args=1")
	assert.Contains(t, out, "[DEBUG] plain\n")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"off", LevelSilent},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ParseLevel(%q)", tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plume.log")
	l := NewLogger(LevelInfo, FileWriter(path, Rotation{MaxSizeMB: 1}))

	l.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	buf := &bytes.Buffer{}
	SetDefault(NewLogger(LevelWarn, buf))

	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

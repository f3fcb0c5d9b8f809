// Package logger_test contains tests for the logger package
package logger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/examaid/internal/config"
	"github.com/phrazzld/examaid/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelWarn, false},
		{"", slog.LevelWarn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := logger.ParseLevel(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	log := logger.New(buf, "warn")

	log.Info("hidden message")
	log.Warn("visible message", "topic", "photosynthesis")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible message", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "photosynthesis", entries[0]["topic"])
}

func TestSetupWritesToFile(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	path := filepath.Join(t.TempDir(), "examaid.log")
	log, closer, err := logger.Setup(config.AppConfig{LogLevel: "debug", LogFile: path})
	require.NoError(t, err)

	log.Debug("debug message", "attempt", 1)
	slog.Info("default logger message")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"debug message"`)
	assert.Contains(t, string(data), `"msg":"default logger message"`)
}

func TestSetupFailsOnUnwritableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "examaid.log")

	_, _, err := logger.Setup(config.AppConfig{LogLevel: "warn", LogFile: path})

	assert.Error(t, err)
}

func TestGetTestLogger(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	log.Debug("captured", "key", "value")

	logger.AssertLogContains(t, buf, `"key":"value"`)
	logger.AssertLogNotContains(t, buf, "absent")
}

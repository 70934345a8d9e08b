package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/moviecatalog/movie-api/internal/config"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupWithWriter_JSONOutput(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, &buf)
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Debug("hidden")
	l.Info("catalog ready", slog.Int("movies", 3))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug must be filtered at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "catalog ready", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.EqualValues(t, 3, entry["movies"])

	assert.Same(t, l, slog.Default(), "Setup installs the default logger")
}

func TestSetupWithWriter_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
		warnSeen  bool
	}{
		{"debug", true, true, true},
		{"INFO", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, false},
		{"bogus", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			restoreDefault(t)
			var buf bytes.Buffer
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tt.level}, &buf)
			require.NoError(t, err)

			l.Debug("debug-msg")
			l.Info("info-msg")
			l.Warn("warn-msg")

			out := buf.String()
			assert.Equal(t, tt.debugSeen, strings.Contains(out, "debug-msg"))
			assert.Equal(t, tt.infoSeen, strings.Contains(out, "info-msg"))
			assert.Equal(t, tt.warnSeen, strings.Contains(out, "warn-msg"))
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, ok := logger.ParseLevel(" Warn ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	level, ok = logger.ParseLevel("trace")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger := slog.Default()
	customLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{"nil_context_returns_default", nil, defaultLogger},
		{"context_without_logger_returns_default", context.Background(), defaultLogger},
		{"context_with_logger_returns_context_logger", logger.WithLogger(context.Background(), customLogger), customLogger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.expected, logger.FromContextOrDefault(tt.ctx, defaultLogger))
		})
	}
}

func TestWithLogger(t *testing.T) {
	customLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := logger.WithLogger(context.Background(), customLogger)
	assert.Same(t, customLogger, logger.FromContext(ctx))

	assert.Panics(t, func() {
		logger.WithLogger(context.Background(), nil)
	})
}

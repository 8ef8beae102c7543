package logging_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/bigroot/internal/logging"
	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		level   slog.Level
		enabled bool
	}{
		{"", slog.LevelInfo, false},
		{"off", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
	}
	for _, tt := range tests {
		level, enabled, err := logging.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.level, level, tt.in)
		assert.Equal(t, tt.enabled, enabled, tt.in)
	}

	_, _, err := logging.ParseLevel("chatty")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestNewWithWriter_ErrKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Warn("cache down", "error", errors.New("boom"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "error=")
}

func TestFromLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.FromLevelName(&buf, "off", false)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Error("dropped")
	assert.Empty(t, buf.String())

	logger, err = logging.FromLevelName(&buf, "off", true)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger, err = logging.FromLevelName(&buf, "warn", false)
	require.NoError(t, err)
	logger.Info("quiet")
	logger.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")

	_, err = logging.FromLevelName(&buf, "nope", false)
	assert.Error(t, err)
}

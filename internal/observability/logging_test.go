package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("saved cleaned data", "path", "out.csv")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "saved cleaned data", entry["msg"])
	assert.Equal(t, "out.csv", entry["path"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "error", "text")

	logger.Warn("suppressed")
	logger.Error("extraction failed", "reason", "transport")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `msg="extraction failed"`)
	assert.Contains(t, out, "reason=transport")
}

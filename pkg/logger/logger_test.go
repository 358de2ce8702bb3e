package logger

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
		raw  string
		want slog.Level
	}{
		{raw: "debug", want: slog.LevelDebug},
		{raw: " WARN ", want: slog.LevelWarn},
		{raw: "warning", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "", want: slog.LevelInfo},
		{raw: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.raw))
		})
	}
}

func TestNewWithFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithFormat(&buf, "info", "json")

	log.Debug("hidden")
	log.Info("subscribed", slog.String("group", "news"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "subscribed", entry["msg"])
	assert.Equal(t, "news", entry["group"])
}

func TestNewWithFormatTextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithFormat(&buf, "error", "text")

	log.Warn("dropped")
	assert.Empty(t, buf.String())

	log.Error("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

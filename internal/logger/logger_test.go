package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json").WithArtistID("a1").WithFields(map[string]any{"kind": "page_view"})

	log.Warn("tracking write failed")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "a1", rec["artist_id"])
	assert.Equal(t, "page_view", rec["kind"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "json")
	log.Info("dropped")
	assert.Zero(t, buf.Len())
}

func TestErrorAddsStack(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "debug", "json").Error("boom")
	assert.Contains(t, buf.String(), `"stack"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
}

func TestWithRequestIDEmptyKeepsLogger(t *testing.T) {
	log := Discard()
	assert.Same(t, log, log.WithRequestID(""))
}

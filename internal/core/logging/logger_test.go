package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestComponent(t *testing.T) {
	buf := captureGlobal(t)

	logger := Component("test-component")
	logger.Info().Msg("test message")

	entry := decodeLine(t, buf)
	assert.Equal(t, "test-component", entry["cmp"])
	assert.Equal(t, "test message", entry["message"])
}

func TestWithSource(t *testing.T) {
	t.Run("adds source field", func(t *testing.T) {
		buf := captureGlobal(t)

		logger := WithSource(Component("list"), "Pods-acknowledgements.plist")
		logger.Warn().Msg("empty")

		entry := decodeLine(t, buf)
		assert.Equal(t, "list", entry["cmp"])
		assert.Equal(t, "Pods-acknowledgements.plist", entry["source"])
	})

	t.Run("empty source leaves logger unchanged", func(t *testing.T) {
		buf := captureGlobal(t)

		logger := WithSource(Component("list"), "")
		logger.Warn().Msg("empty")

		entry := decodeLine(t, buf)
		_, ok := entry["source"]
		assert.False(t, ok)
	})
}

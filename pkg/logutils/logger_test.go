package logutils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConsoleFallback(t *testing.T) {
	var buf bytes.Buffer

	l, closer, err := New("info", "", &buf)
	require.NoError(t, err)
	defer closer()

	l.Debug().Msg("hidden")
	l.Warn().Str("source", "Pods-acknowledgements").Msg("nothing to show")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "nothing to show")
	assert.Contains(t, out, "source=Pods-acknowledgements")
}

func TestNew_JSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "acknowlist.log")

	l, closer, err := New("debug", file, nil)
	require.NoError(t, err)

	l.Debug().Str("cmp", "parser").Msg("read failed")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "parser", line["cmp"])
	assert.Equal(t, "read failed", line["message"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "", &bytes.Buffer{})
	assert.Error(t, err)
}

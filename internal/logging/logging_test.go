package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(New(Options{Format: "json", Out: &buf}), "engine")

	logger.Debug().Msg("hidden")
	logger.Info().Str("output", "out.mp4").Msg("export finished")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "out.mp4", entry["output"])
	assert.Equal(t, "info", entry["level"])
}

func TestVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Format: "json", Verbose: true, Out: &buf})
	logger.Debug().Msg("ffmpeg command")
	assert.Contains(t, buf.String(), "ffmpeg command")
}

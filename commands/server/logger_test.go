package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)).With("module", "test")

	logger.Debug("hidden", "a", 1)
	logger.Info("shown", "height", 7, "dangling")
	logger.Error("failed", "err", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &info))
	assert.Equal(t, "info", info["level"])
	assert.Equal(t, "shown", info["message"])
	assert.Equal(t, "test", info["module"])
	assert.Equal(t, float64(7), info["height"])
	assert.Equal(t, "(MISSING)", info["dangling"])

	var failure map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failure))
	assert.Equal(t, "error", failure["level"])
	assert.Equal(t, "boom", failure["err"])
}

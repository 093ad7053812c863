package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONWithRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.NotEmpty(t, entry["run_id"])
}

func TestNewRespectsLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "json")

	logger.Info().Msg("should be dropped")
	logger.Warn().Msg("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should be dropped")
	assert.Contains(t, out, "should appear")
}

func TestNewDefaultsToInfoOnInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "not-a-level", "json")

	logger.Info().Msg("visible at info")
	assert.Contains(t, buf.String(), "visible at info")
}

func TestNewEachCallGetsADistinctRunID(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	logger1 := New(&buf1, "info", "json")
	logger1.Info().Msg("a")
	logger2 := New(&buf2, "info", "json")
	logger2.Info().Msg("b")

	id1 := extractRunID(t, buf1.String())
	id2 := extractRunID(t, buf2.String())
	assert.NotEqual(t, id1, id2)
}

func extractRunID(t *testing.T, line string) string {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(line)), &entry))
	id, _ := entry["run_id"].(string)
	require.NotEmpty(t, id)
	return id
}

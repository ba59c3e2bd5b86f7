package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/KaramelBytes/termtable/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("bogus"))
}

func TestSetup_JSONWithRun(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logging.Setup("info", "json", &buf)
	logging.WithRun("run-1", "table", "exposure").Info("rendered", "rows", 3)
	slog.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rendered", entry["msg"])
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "exposure", entry["table"])
	assert.EqualValues(t, 3, entry["rows"])
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/termtable/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "exposure", c.TargetTable)
	assert.Equal(t, "/instructions", c.InstructionsPath)
	assert.Equal(t, "/terminology/", c.TerminologyPath)
	assert.True(t, c.EscapeCellText)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Empty(t, c.Terminology)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "termtable.yaml")
	require.NoError(t, os.WriteFile(p, []byte("target_table: specimen\nescape_cell_text: false\nlog_level: debug\n"), 0o644))
	t.Setenv("TERMTABLE_LOG_LEVEL", "warn")

	c, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "specimen", c.TargetTable)
	assert.False(t, c.EscapeCellText)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveLoad_RoundTripDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := config.Load("")
	require.NoError(t, err)
	c.Terminology = "/data/terminology.tsv"
	c.TerminologyPath = "/ontology/"
	require.NoError(t, config.Save(c, ""))

	_, err = os.Stat(filepath.Join(home, ".termtable", "config.yaml"))
	require.NoError(t, err)

	again, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/terminology.tsv", again.Terminology)
	assert.Equal(t, "/ontology/", again.TerminologyPath)
}

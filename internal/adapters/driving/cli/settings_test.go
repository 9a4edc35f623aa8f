package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_ShowDefaults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Root:             (not set)")
	assert.Contains(t, out, "Extensions:       .md .markdown .mdx")
	assert.Contains(t, out, "Default limit: 10")
	assert.Contains(t, out, "Interval:     off")
	assert.Contains(t, out, "Warning:")
}

func TestSettingsCmd_SetRoot(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	dir := t.TempDir()

	out, err := executeCommand("settings", "set-root", dir)

	require.NoError(t, err)
	want, _ := filepath.Abs(dir)
	assert.Contains(t, out, "Corpus root set to "+want)
	assert.Equal(t, want, ts.config.GetString("corpus.root"))

	out, err = executeCommand("settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_SetRootRequiresArg(t *testing.T) {
	_, err := executeCommand("settings", "set-root")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestListOrNone(t *testing.T) {
	assert.Equal(t, "(none)", listOrNone(nil))
	assert.Equal(t, "a, b", listOrNone([]string{"a", "b"}))
}

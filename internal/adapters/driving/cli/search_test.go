package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := executeCommand("search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("search", "strategy")

	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "[1] Strategy Pattern (7.50)")
	assert.Contains(t, out, "patterns/strategy  patterns")
	assert.Contains(t, out, "Swap algorithms at runtime")
	assert.Equal(t, domain.SearchOptions{}, ts.search.lastOpts)
}

func TestSearchCmd_PassesOptions(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("search", "-n", "5", "--category", "patterns", "strategy")

	require.NoError(t, err)
	assert.Equal(t, domain.SearchOptions{Limit: 5, Category: "patterns"}, ts.search.lastOpts)
}

func TestSearchCmd_NoResults(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.search.results = nil

	out, err := executeCommand("search", "xylophone")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("search", "--json", "strategy")

	require.NoError(t, err)
	assert.Contains(t, out, `"id": "patterns/strategy"`)
	assert.Contains(t, out, `"score": 7.5`)

	var got []domain.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 1)
}

func TestSearchCmd_InvalidLimit(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.search.err = domain.ErrInvalidQuery

	_, err := executeCommand("search", "-n", "-1", "strategy")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

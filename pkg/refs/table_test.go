package refs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/refs"
)

func TestTable_StoreLookup(t *testing.T) {
	t.Parallel()

	table := refs.NewTable()
	table.Store("docs", "https://example.com/docs")

	dest, ok := table.Lookup("docs")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs", dest)

	_, ok = table.Lookup("Docs")
	assert.False(t, ok, "exact matching must not fold case")

	assert.Equal(t, refs.MatchExact, table.Matching())
}

func TestTable_LastWriteWins(t *testing.T) {
	t.Parallel()

	table := refs.NewTable()
	table.Store("here", "https://one.example")
	table.Store("here", "https://two.example")

	dest, ok := table.Lookup("here")
	require.True(t, ok)
	assert.Equal(t, "https://two.example", dest)
	assert.Equal(t, 1, table.Len())
}

func TestTable_IgnoresBlankLabels(t *testing.T) {
	t.Parallel()

	table := refs.NewTable()
	table.Store("", "https://example.com")
	table.Store("   ", "https://example.com")

	assert.Equal(t, 0, table.Len())
}

func TestTable_AliasResolve(t *testing.T) {
	t.Parallel()

	table := refs.NewTable()
	table.Alias("the docs", "docs")

	_, ok := table.Resolve("the docs")
	assert.False(t, ok, "alias without a definition is a miss")

	table.Store("docs", "https://example.com/docs")

	dest, ok := table.Resolve("the docs")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs", dest)

	_, ok = table.Lookup("the docs")
	assert.False(t, ok, "Lookup does not follow aliases")
}

func TestTable_DirectEntryBeatsAlias(t *testing.T) {
	t.Parallel()

	table := refs.NewTable()
	table.Alias("key", "label")
	table.Store("label", "https://label.example")
	table.Store("key", "https://key.example")

	dest, ok := table.Resolve("key")
	require.True(t, ok)
	assert.Equal(t, "https://key.example", dest)
}

func TestTable_AliasCycle(t *testing.T) {
	t.Parallel()

	table := refs.NewTable()
	table.Alias("a", "b")
	table.Alias("b", "a")

	_, ok := table.Resolve("a")
	assert.False(t, ok)
}

func TestTable_FoldMatching(t *testing.T) {
	t.Parallel()

	table := refs.NewTable(refs.WithMatching(refs.MatchFold))
	table.Store("Foo  Bar", "https://example.com")

	dest, ok := table.Lookup("foo bar")
	require.True(t, ok)
	assert.Equal(t, "https://example.com", dest)

	entries := table.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Foo  Bar", entries[0].Label)
}

func TestTable_EntriesOrder(t *testing.T) {
	t.Parallel()

	table := refs.NewTable()
	table.Store("b", "2")
	table.Store("a", "1")
	table.Store("b", "3")

	assert.Equal(t, []refs.Entry{
		{Label: "b", Destination: "3"},
		{Label: "a", Destination: "1"},
	}, table.Entries())
}

func TestTable_Isolation(t *testing.T) {
	t.Parallel()

	first := refs.NewTable()
	second := refs.NewTable()
	first.Store("x", "https://x.example")

	_, ok := second.Lookup("x")
	assert.False(t, ok)
}

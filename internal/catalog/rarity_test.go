package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRarityLookup(t *testing.T) {
	cat := &Catalog{Rows: testRows()}
	lookup := BuildRarityLookup(cat)

	info, ok := lookup["A320"]
	require.True(t, ok)
	assert.Equal(t, "Airbus A320", info.Name)
	assert.InDelta(t, 0.47, info.Rarity, 1e-9)
	assert.Equal(t, "Common", info.Tier)
	assert.Equal(t, 10, info.XP)

	info, ok = lookup["F16"]
	require.True(t, ok)
	assert.InDelta(t, 8.0, info.Rarity, 1e-9)
	assert.Equal(t, "Ultra", info.Tier)
}

func TestBuildRarityLookupBlacklist(t *testing.T) {
	cat := &Catalog{
		Rows:      testRows(),
		Blacklist: []string{"GLID", "F16"},
	}
	lookup := BuildRarityLookup(cat)

	_, ok := lookup["GLID"]
	assert.False(t, ok)
	_, ok = lookup["F16"]
	assert.False(t, ok)
	_, ok = lookup["B744"]
	assert.True(t, ok)
}

func TestBuildRarityLookupFallbacks(t *testing.T) {
	cat := &Catalog{Rows: []Row{
		{ID: "X99", Name: "", Rareness: 500, Category: "prototype"},
	}}
	lookup := BuildRarityLookup(cat)

	info, ok := lookup["X99"]
	require.True(t, ok)
	// Name falls back to the type code, unknown categories are title-cased.
	assert.Equal(t, "X99", info.Name)
	assert.Equal(t, "Prototype", info.Tier)
}

func TestBuildRarityLookupSkipsBlankIDs(t *testing.T) {
	cat := &Catalog{Rows: []Row{{ID: "", Name: "Nameless", Rareness: 100}}}
	assert.Empty(t, BuildRarityLookup(cat))
}

package airports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func TestResolveCodesPassThrough(t *testing.T) {
	d := NewDirectory()

	// 4 uppercase letters are taken as ICAO verbatim, even for airports
	// the directory has never heard of.
	got, ok := d.Resolve("EGLL")
	require.True(t, ok)
	assert.Equal(t, "EGLL", got)

	got, ok = d.Resolve("ZZZZ")
	require.True(t, ok)
	assert.Equal(t, "ZZZZ", got)
}

func TestResolveIATA(t *testing.T) {
	d := NewDirectory()

	got, ok := d.Resolve("LHR")
	require.True(t, ok)
	assert.Equal(t, "EGLL", got)

	// 3-letter codes are case-insensitive.
	got, ok = d.Resolve("jfk")
	require.True(t, ok)
	assert.Equal(t, "KJFK", got)

	// Unknown IATA codes do not resolve.
	_, ok = d.Resolve("QQQ")
	assert.False(t, ok)
}

func TestResolveExactName(t *testing.T) {
	d := NewDirectory()
	for _, tc := range []struct {
		name string
		icao string
	}{
		{"Heathrow", "EGLL"},
		{"london heathrow", "EGLL"},
		{"Ushuaia", "SAWH"},
		{"Longyearbyen", "ENSB"},
	} {
		got, ok := d.Resolve(tc.name)
		require.True(t, ok, tc.name)
		assert.Equal(t, tc.icao, got, tc.name)
	}
}

func TestResolveFuzzy(t *testing.T) {
	d := NewDirectory()
	for _, tc := range []struct {
		name string
		icao string
	}{
		{"Ushuai", "SAWH"},  // dropped trailing letter
		{"Ushuaya", "SAWH"}, // common misspelling
		{"Heathrw", "EGLL"}, // dropped vowel
		{"heatrow", "EGLL"}, // dropped letter typo
	} {
		got, ok := d.Resolve(tc.name)
		require.True(t, ok, tc.name)
		assert.Equal(t, tc.icao, got, tc.name)
	}
}

func TestResolveRejectsDistantText(t *testing.T) {
	d := NewDirectory()
	_, ok := d.Resolve("completely unrelated gibberish")
	assert.False(t, ok)
}

func TestResolveEmpty(t *testing.T) {
	d := NewDirectory()
	_, ok := d.Resolve("")
	assert.False(t, ok)
	_, ok = d.Resolve("   ")
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// ResolveCity
// ---------------------------------------------------------------------------

func TestResolveCityMultiAirport(t *testing.T) {
	d := NewDirectory()

	codes := d.ResolveCity("London")
	// Every London airport in both code systems.
	for _, want := range []string{"EGLL", "LHR", "EGKK", "LGW", "EGSS", "STN"} {
		assert.Contains(t, codes, want)
	}

	codes = d.ResolveCity("new york")
	for _, want := range []string{"KJFK", "JFK", "KEWR", "EWR", "KLGA", "LGA"} {
		assert.Contains(t, codes, want)
	}
}

func TestResolveCitySingleAirport(t *testing.T) {
	d := NewDirectory()

	codes := d.ResolveCity("Ushuaia")
	assert.Contains(t, codes, "SAWH")
	assert.Contains(t, codes, "USH")
}

func TestResolveCityUnknown(t *testing.T) {
	d := NewDirectory()
	assert.Empty(t, d.ResolveCity("xqzzt vwmpl"))
}

// ---------------------------------------------------------------------------
// ExpandCodes
// ---------------------------------------------------------------------------

func TestExpandCodes(t *testing.T) {
	d := NewDirectory()

	expanded := d.ExpandCodes(map[string]struct{}{"EGLL": {}, "JFK": {}})
	assert.Contains(t, expanded, "EGLL")
	assert.Contains(t, expanded, "LHR")
	assert.Contains(t, expanded, "JFK")
	assert.Contains(t, expanded, "KJFK")
}

func TestExpandCodesUnknownKept(t *testing.T) {
	d := NewDirectory()

	// Codes without a known counterpart survive unmodified.
	expanded := d.ExpandCodes(map[string]struct{}{"ZZZZ": {}})
	assert.Equal(t, map[string]struct{}{"ZZZZ": {}}, expanded)
}

func TestExpandCodesEmpty(t *testing.T) {
	d := NewDirectory()
	assert.Empty(t, d.ExpandCodes(nil))
}

package airports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionString(t *testing.T) {
	assert.Equal(t, "americas", RegionAmericas.String())
	assert.Equal(t, "europe", RegionEurope.String())
	assert.Equal(t, "asia", RegionAsia.String())
	assert.Equal(t, "oceania", RegionOceania.String())
	assert.Equal(t, "middle_east", RegionMiddleEast.String())
	assert.Equal(t, "africa", RegionAfrica.String())
	assert.Equal(t, "unknown", Region(255).String())
}

func TestParseRegion(t *testing.T) {
	r, ok := ParseRegion("middle_east")
	require.True(t, ok)
	assert.Equal(t, RegionMiddleEast, r)

	_, ok = ParseRegion("atlantis")
	assert.False(t, ok)
}

func TestRegionTableKnownHubs(t *testing.T) {
	table := BuildRegionTable(NewDirectory())
	for _, tc := range []struct {
		iata   string
		region Region
	}{
		{"JFK", RegionAmericas},
		{"GRU", RegionAmericas},
		{"LHR", RegionEurope},
		{"NRT", RegionAsia},
		{"SIN", RegionAsia},
		{"SYD", RegionOceania},
		{"DXB", RegionMiddleEast},
		{"DOH", RegionMiddleEast},
		{"JNB", RegionAfrica},
		{"CAI", RegionAfrica},
	} {
		got, ok := table.Region(tc.iata)
		require.True(t, ok, tc.iata)
		assert.Equal(t, tc.region, got, tc.iata)
	}
}

// Every code named by an override list must resolve to exactly that
// region, whatever the ICAO prefix layer said first.
func TestRegionTableOverridesWin(t *testing.T) {
	table := BuildRegionTable(NewDirectory())
	for region, codes := range regionOverrides {
		for _, code := range codes {
			got, ok := table.Region(code)
			require.True(t, ok, code)
			assert.Equal(t, region, got, code)
		}
	}
}

func TestRegionTableDerivedLayer(t *testing.T) {
	dir := NewDirectory()
	table := BuildRegionTable(dir)

	// Directory codes absent from every override list still classify
	// through their ICAO prefix.
	for _, iata := range dir.KnownIATACodes() {
		icao, ok := dir.IATAToICAO(iata)
		require.True(t, ok)
		if _, covered := icaoPrefixRegion[icao[0]]; !covered {
			continue
		}
		_, ok = table.Region(iata)
		assert.True(t, ok, iata)
	}
}

func TestRegionTableUnknown(t *testing.T) {
	table := BuildRegionTable(NewDirectory())

	_, ok := table.Region("")
	assert.False(t, ok)

	_, ok = table.Region("ZZZ")
	assert.False(t, ok)
}

package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riley-LeLay/skycards/internal/airports"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "manufacturer", KindManufacturer.String())
	assert.Equal(t, "airport", KindAirport.String())
	assert.Equal(t, "airport_pair", KindAirportPair.String())
	assert.Equal(t, "route", KindRoute.String())
	assert.Equal(t, "aircraft_type", KindAircraftType.String())
	assert.Equal(t, "rarity_tier", KindRarityTier.String())
	assert.Equal(t, "aircraft_class", KindAircraftClass.String())
	assert.Equal(t, "latitude_region", KindLatitude.String())
	assert.Equal(t, "unknown", Kind(255).String())
}

func TestRouteDefinitions(t *testing.T) {
	pacific, ok := Routes["transpacific"]
	require.True(t, ok)
	assert.Contains(t, pacific.SideA, airports.RegionAsia)
	assert.Contains(t, pacific.SideA, airports.RegionOceania)
	assert.Contains(t, pacific.SideB, airports.RegionAmericas)
	assert.NotContains(t, pacific.SideA, airports.RegionEurope)

	atlantic, ok := Routes["transatlantic"]
	require.True(t, ok)
	assert.Contains(t, atlantic.SideA, airports.RegionEurope)
	assert.Contains(t, atlantic.SideA, airports.RegionAfrica)
	assert.Contains(t, atlantic.SideA, airports.RegionMiddleEast)
	assert.Contains(t, atlantic.SideB, airports.RegionAmericas)
}

func TestFilterCarriesOriginalText(t *testing.T) {
	p := testParser(t)

	const text = "Catch a Boeing aircraft"
	f := p.Parse(text)
	assert.Equal(t, text, f.Text())
	assert.NotEmpty(t, f.Description())
}

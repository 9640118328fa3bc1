package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riley-LeLay/skycards/internal/airports"
	"github.com/Riley-LeLay/skycards/internal/catalog"
	"github.com/Riley-LeLay/skycards/internal/challenge"
	"github.com/Riley-LeLay/skycards/pkg/models"
)

func testWorld(t *testing.T) (*Matcher, *challenge.Parser) {
	t.Helper()
	dir := airports.NewDirectory()
	cat := &catalog.Catalog{Rows: []catalog.Row{
		{ID: "B744", Name: "Boeing 747-400", Manufacturer: "BOEING", Type: "L", Rareness: 310, Category: "rare"},
		{ID: "B738", Name: "Boeing 737-800", Manufacturer: "BOEING", Type: "L", Rareness: 40, Category: "common"},
		{ID: "A320", Name: "Airbus A320", Manufacturer: "AIRBUS", Type: "L", Rareness: 47, Category: "common"},
		{ID: "R44", Name: "Robinson R44", Manufacturer: "ROBINSON", Type: "H", Rareness: 150, Category: "uncommon"},
		{ID: "F16", Name: "Lockheed F-16 Fighting Falcon", Manufacturer: "LOCKHEED", Type: "L", Military: true, Rareness: 800, Category: "ultra"},
	}}
	return NewMatcher(dir, airports.BuildRegionTable(dir)), challenge.NewParser(dir, cat)
}

func testFlights() []models.Flight {
	return []models.Flight{
		{FlightID: "f1", Callsign: "BAW117", TypeCode: "B744", Origin: "LHR", Destination: "JFK", Latitude: 51.2, Longitude: -30.0, Rarity: 3.1, Tier: "Rare"},
		{FlightID: "f2", Callsign: "DLH400", TypeCode: "A320", Origin: "FRA", Destination: "MUC", Latitude: 49.5, Longitude: 9.1, Rarity: 0.47, Tier: "Common"},
		{FlightID: "f3", Callsign: "QFA12", TypeCode: "B744", Origin: "SYD", Destination: "LAX", Latitude: -20.0, Longitude: -150.0, Rarity: 3.1, Tier: "Rare"},
		{FlightID: "f4", Callsign: "N44R", TypeCode: "R44", Origin: "", Destination: "", Latitude: 34.0, Longitude: -118.0, Rarity: 1.5, Tier: "Uncommon"},
		{FlightID: "f5", Callsign: "VIPER1", TypeCode: "F16", Origin: "", Destination: "", Latitude: 67.1, Longitude: 20.0, Rarity: 8.0, Tier: "Ultra"},
	}
}

// ---------------------------------------------------------------------------
// Type-code filters
// ---------------------------------------------------------------------------

func TestMatchManufacturer(t *testing.T) {
	m, p := testWorld(t)

	got := m.Match(p.Parse("Catch a Boeing aircraft"), testFlights())
	require.Len(t, got, 2)
	for _, f := range got {
		assert.Equal(t, "B744", f.TypeCode)
	}
}

func TestMatchAircraftClass(t *testing.T) {
	m, p := testWorld(t)

	got := m.Match(p.Parse("Catch a helicopter"), testFlights())
	require.Len(t, got, 1)
	assert.Equal(t, "f4", got[0].FlightID)

	got = m.Match(p.Parse("Catch a military aircraft"), testFlights())
	require.Len(t, got, 1)
	assert.Equal(t, "f5", got[0].FlightID)
}

func TestMatchEmptyCodeSetMatchesNothing(t *testing.T) {
	m, p := testWorld(t)

	got := m.Match(p.Parse("Catch a xyzzy wompus"), testFlights())
	assert.Empty(t, got)
}

// ---------------------------------------------------------------------------
// Airport filters
// ---------------------------------------------------------------------------

func TestMatchAirportEitherEndpoint(t *testing.T) {
	m, p := testWorld(t)

	got := m.Match(p.Parse("Catch a flight going to or from Heathrow"), testFlights())
	require.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].FlightID)
}

func TestMatchAirportPairBothDirections(t *testing.T) {
	m, p := testWorld(t)
	f := p.Parse("Catch a flight from London to New York or back")

	outbound := models.Flight{FlightID: "o", TypeCode: "B744", Origin: "LHR", Destination: "JFK", Latitude: 50, Longitude: -20}
	inbound := models.Flight{FlightID: "i", TypeCode: "B744", Origin: "JFK", Destination: "LHR", Latitude: 50, Longitude: -20}
	unrelated := models.Flight{FlightID: "u", TypeCode: "B744", Origin: "LHR", Destination: "DXB", Latitude: 50, Longitude: 20}

	got := m.Match(f, []models.Flight{outbound, inbound, unrelated})
	require.Len(t, got, 2)
	ids := []string{got[0].FlightID, got[1].FlightID}
	assert.ElementsMatch(t, []string{"o", "i"}, ids)
}

func TestMatchAirportMissingRoute(t *testing.T) {
	m, p := testWorld(t)
	f := p.Parse("Catch a flight from London to New York")

	noRoute := models.Flight{FlightID: "x", TypeCode: "B744", Latitude: 50, Longitude: -20}
	assert.Empty(t, m.Match(f, []models.Flight{noRoute}))
}

// ---------------------------------------------------------------------------
// Route filters
// ---------------------------------------------------------------------------

func TestMatchRoute(t *testing.T) {
	m, p := testWorld(t)

	// f1 LHR->JFK is europe->americas: transatlantic, not transpacific.
	// f3 SYD->LAX is oceania->americas: transpacific.
	got := m.Match(p.Parse("Catch a flight on a transatlantic route"), testFlights())
	require.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].FlightID)

	got = m.Match(p.Parse("Catch a transpacific flight"), testFlights())
	require.Len(t, got, 1)
	assert.Equal(t, "f3", got[0].FlightID)
}

func TestMatchRouteReverseDirection(t *testing.T) {
	m, p := testWorld(t)
	f := p.Parse("Catch a flight on a transatlantic route")

	westbound := models.Flight{FlightID: "w", Origin: "LHR", Destination: "JFK", Latitude: 50, Longitude: -30}
	eastbound := models.Flight{FlightID: "e", Origin: "JFK", Destination: "LHR", Latitude: 50, Longitude: -30}

	got := m.Match(f, []models.Flight{westbound, eastbound})
	assert.Len(t, got, 2)
}

func TestMatchRouteUnknownRegion(t *testing.T) {
	m, p := testWorld(t)
	f := p.Parse("Catch a flight on a transatlantic route")

	// Endpoints outside the region table never satisfy a route.
	mystery := models.Flight{FlightID: "m", Origin: "ZZZ", Destination: "JFK", Latitude: 50, Longitude: -30}
	assert.Empty(t, m.Match(f, []models.Flight{mystery}))
}

// ---------------------------------------------------------------------------
// Tier and latitude filters
// ---------------------------------------------------------------------------

func TestMatchRarityTier(t *testing.T) {
	m, p := testWorld(t)

	got := m.Match(p.Parse("Catch an Ultra tier aircraft"), testFlights())
	require.Len(t, got, 1)
	assert.Equal(t, "f5", got[0].FlightID)
}

func TestMatchLatitude(t *testing.T) {
	m, p := testWorld(t)

	got := m.Match(p.Parse("Catch a flight north of the Arctic Circle"), testFlights())
	require.Len(t, got, 1)
	assert.Equal(t, "f5", got[0].FlightID)

	got = m.Match(p.Parse("Catch a flight south of the equator"), testFlights())
	require.Len(t, got, 1)
	assert.Equal(t, "f3", got[0].FlightID)
}

func TestMatchLatitudeRequiresPosition(t *testing.T) {
	m, p := testWorld(t)
	f := p.Parse("Catch a flight south of the equator")

	// A zero lat/lon pair means no position report, not the Gulf of Guinea.
	unplaced := models.Flight{FlightID: "z", TypeCode: "A320"}
	assert.Empty(t, m.Match(f, []models.Flight{unplaced}))
}

// ---------------------------------------------------------------------------
// Result ordering and batching
// ---------------------------------------------------------------------------

func TestMatchSortsByRarityDescending(t *testing.T) {
	m, p := testWorld(t)

	// Match everything with positions through a broad latitude filter.
	got := m.Match(p.Parse("Catch a flight north of the equator"), testFlights())
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Rarity, got[i].Rarity)
	}
}

func TestMatchAll(t *testing.T) {
	m, p := testWorld(t)

	filters := p.ParseAll([]string{
		"Catch a helicopter",
		"Catch an Ultra tier aircraft",
	})
	results := m.MatchAll(filters, testFlights())
	require.Len(t, results, 2)
	assert.Len(t, results[0], 1)
	assert.Len(t, results[1], 1)
}

func TestMatchEmptyInputs(t *testing.T) {
	m, p := testWorld(t)

	assert.Empty(t, m.Match(p.Parse("Catch a helicopter"), nil))
	assert.Empty(t, m.Match(nil, testFlights()))
	assert.Empty(t, m.MatchAll(nil, testFlights()))
}

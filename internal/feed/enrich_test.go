package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riley-LeLay/skycards/internal/catalog"
	"github.com/Riley-LeLay/skycards/pkg/models"
)

func TestEnrich(t *testing.T) {
	lookup := catalog.RarityLookup{
		"B744": {Name: "Boeing 747-400", Rarity: 3.1, Tier: "Rare", XP: 120},
		"A320": {Name: "Airbus A320", Rarity: 0.47, Tier: "Common", XP: 10},
	}

	flights := Enrich([]models.Flight{
		{FlightID: "f1", TypeCode: "A320"},
		{FlightID: "f2", TypeCode: "B744"},
	}, lookup)

	require.Len(t, flights, 2)
	// Sorted by rarity descending.
	assert.Equal(t, "f2", flights[0].FlightID)
	assert.Equal(t, "Boeing 747-400", flights[0].AircraftName)
	assert.Equal(t, "Rare", flights[0].Tier)
	assert.Equal(t, 120, flights[0].XP)
	assert.InDelta(t, 3.1, flights[0].Rarity, 1e-9)

	assert.Equal(t, "f1", flights[1].FlightID)
	assert.Equal(t, "Common", flights[1].Tier)
}

func TestEnrichUnknownType(t *testing.T) {
	flights := Enrich([]models.Flight{
		{FlightID: "f1", TypeCode: "ZZZZ"},
	}, catalog.RarityLookup{})

	require.Len(t, flights, 1)
	assert.Equal(t, "Unknown", flights[0].Tier)
	assert.Equal(t, "ZZZZ", flights[0].AircraftName)
	assert.Zero(t, flights[0].Rarity)
	assert.Zero(t, flights[0].XP)
}

func TestEnrichEmpty(t *testing.T) {
	assert.Empty(t, Enrich(nil, catalog.RarityLookup{}))
}

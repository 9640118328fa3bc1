package feed

import (
	"sort"

	"github.com/Riley-LeLay/skycards/internal/catalog"
	"github.com/Riley-LeLay/skycards/pkg/models"
)

// Enrich attaches rarity data to each flight by type code and returns the
// slice sorted by rarity descending. Flights whose type code is absent from
// the lookup keep zero rarity with an "Unknown" tier so they sort last but
// stay visible.
func Enrich(flights []models.Flight, lookup catalog.RarityLookup) []models.Flight {
	for i := range flights {
		info, ok := lookup[flights[i].TypeCode]
		if !ok {
			flights[i].Rarity = 0
			flights[i].Tier = "Unknown"
			flights[i].AircraftName = flights[i].TypeCode
			flights[i].XP = 0
			continue
		}
		flights[i].Rarity = info.Rarity
		flights[i].Tier = info.Tier
		flights[i].AircraftName = info.Name
		flights[i].XP = info.XP
	}
	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Rarity > flights[j].Rarity
	})
	return flights
}

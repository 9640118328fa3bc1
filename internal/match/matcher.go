// Package match evaluates parsed challenge filters against live flights.
package match

import (
	"sort"

	"github.com/Riley-LeLay/skycards/internal/airports"
	"github.com/Riley-LeLay/skycards/internal/challenge"
	"github.com/Riley-LeLay/skycards/pkg/models"
)

// Matcher evaluates filters against flights. It holds the airport
// directory for code expansion and the region table for route checks;
// both are immutable, so a Matcher is safe for concurrent use.
type Matcher struct {
	dir     *airports.Directory
	regions *airports.RegionTable
}

// NewMatcher builds a matcher over the given directory and region table.
func NewMatcher(dir *airports.Directory, regions *airports.RegionTable) *Matcher {
	return &Matcher{dir: dir, regions: regions}
}

// Match returns the flights satisfying the filter, sorted by rarity
// descending. A filter with an empty code set matches nothing, and a nil
// filter matches nothing; matching never fails.
func (m *Matcher) Match(f challenge.Filter, flights []models.Flight) []models.Flight {
	if f == nil {
		return nil
	}
	var out []models.Flight
	for _, fl := range flights {
		if m.matches(f, fl) {
			out = append(out, fl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rarity > out[j].Rarity
	})
	return out
}

// MatchAll evaluates each filter independently against the same flight
// slice, returning results in filter order.
func (m *Matcher) MatchAll(filters []challenge.Filter, flights []models.Flight) [][]models.Flight {
	results := make([][]models.Flight, len(filters))
	for i, f := range filters {
		results[i] = m.Match(f, flights)
	}
	return results
}

func (m *Matcher) matches(f challenge.Filter, fl models.Flight) bool {
	switch v := f.(type) {
	case challenge.Manufacturer:
		return codeIn(v.Codes, fl.TypeCode)
	case challenge.AircraftType:
		return codeIn(v.Codes, fl.TypeCode)
	case challenge.AircraftClass:
		return codeIn(v.Codes, fl.TypeCode)
	case challenge.Airport:
		return m.touchesAny(v.Codes, fl)
	case challenge.AirportPair:
		return m.connectsPair(v, fl)
	case challenge.Route:
		return m.onRoute(v, fl)
	case challenge.RarityTier:
		return fl.Tier == v.Tier
	case challenge.Latitude:
		return m.inLatitudeBand(v, fl)
	default:
		return false
	}
}

func codeIn(codes map[string]struct{}, typeCode string) bool {
	if typeCode == "" {
		return false
	}
	_, ok := codes[typeCode]
	return ok
}

// touchesAny reports whether the flight's origin or destination is one of
// the given airports. Codes are expanded to both ICAO and IATA forms so a
// filter carrying EGLL also matches a feed reporting LHR.
func (m *Matcher) touchesAny(codes map[string]struct{}, fl models.Flight) bool {
	if fl.Origin == "" && fl.Destination == "" {
		return false
	}
	expanded := m.dir.ExpandCodes(codes)
	if _, ok := expanded[fl.Origin]; ok && fl.Origin != "" {
		return true
	}
	if _, ok := expanded[fl.Destination]; ok && fl.Destination != "" {
		return true
	}
	return false
}

// connectsPair reports whether the flight links the two airport sets in
// either direction.
func (m *Matcher) connectsPair(v challenge.AirportPair, fl models.Flight) bool {
	if !fl.HasRoute() {
		return false
	}
	sideA := m.dir.ExpandCodes(v.SideA)
	sideB := m.dir.ExpandCodes(v.SideB)
	_, originA := sideA[fl.Origin]
	_, destB := sideB[fl.Destination]
	if originA && destB {
		return true
	}
	_, originB := sideB[fl.Origin]
	_, destA := sideA[fl.Destination]
	return originB && destA
}

// onRoute reports whether the flight crosses between the route's two
// region groups, in either direction. Endpoints whose region is unknown
// never satisfy a route.
func (m *Matcher) onRoute(v challenge.Route, fl models.Flight) bool {
	sides, ok := challenge.Routes[v.Name]
	if !ok || !fl.HasRoute() {
		return false
	}
	originRegion, ok := m.regions.Region(fl.Origin)
	if !ok {
		return false
	}
	destRegion, ok := m.regions.Region(fl.Destination)
	if !ok {
		return false
	}
	_, originA := sides.SideA[originRegion]
	_, destB := sides.SideB[destRegion]
	if originA && destB {
		return true
	}
	_, originB := sides.SideB[originRegion]
	_, destA := sides.SideA[destRegion]
	return originB && destA
}

// inLatitudeBand checks the flight's present latitude against the filter
// bounds. Each bound applies independently; a flight with no reported
// position never matches.
func (m *Matcher) inLatitudeBand(v challenge.Latitude, fl models.Flight) bool {
	if !fl.HasPosition() {
		return false
	}
	if v.HasMin && fl.Latitude < v.Min {
		return false
	}
	if v.HasMax && fl.Latitude > v.Max {
		return false
	}
	return true
}

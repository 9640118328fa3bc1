// Package challenge turns free-form challenge text ("Catch a Boeing 747",
// "flight from London to New York or back") into typed filters that the
// match package evaluates against live flights.
package challenge

import "github.com/Riley-LeLay/skycards/internal/airports"

// ---------------------------------------------------------------------------
// Filter kinds
// ---------------------------------------------------------------------------

// Kind identifies the category of a parsed challenge filter.
type Kind uint8

const (
	KindManufacturer Kind = iota
	KindAirport
	KindAirportPair
	KindRoute
	KindAircraftType
	KindRarityTier
	KindAircraftClass
	KindLatitude
	kindCount // must be last
)

var kindNames = [kindCount]string{
	KindManufacturer:  "manufacturer",
	KindAirport:       "airport",
	KindAirportPair:   "airport_pair",
	KindRoute:         "route",
	KindAircraftType:  "aircraft_type",
	KindRarityTier:    "rarity_tier",
	KindAircraftClass: "aircraft_class",
	KindLatitude:      "latitude_region",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// ---------------------------------------------------------------------------
// Filter variants
// ---------------------------------------------------------------------------

// Filter is a parsed challenge. Exactly one concrete type exists per kind,
// so a filter can never carry fields that don't belong to its kind. All
// variants are immutable once returned by the parser.
type Filter interface {
	Kind() Kind
	// Text returns the original challenge text.
	Text() string
	// Description returns a human-readable summary of what the filter matches.
	Description() string
}

// base carries the fields every variant shares.
type base struct {
	text string
	desc string
}

func (b base) Text() string        { return b.text }
func (b base) Description() string { return b.desc }

// Manufacturer matches flights whose type code belongs to one manufacturer.
type Manufacturer struct {
	base
	Canonical string
	Codes     map[string]struct{}
}

func (Manufacturer) Kind() Kind { return KindManufacturer }

// AircraftType matches flights by an explicit set of type codes. Also the
// terminal "unresolved" variant, with an empty code set that matches
// nothing.
type AircraftType struct {
	base
	Codes map[string]struct{}
}

func (AircraftType) Kind() Kind { return KindAircraftType }

// AircraftClass matches flights whose type code belongs to a class
// (helicopter, military, glider, ...).
type AircraftClass struct {
	base
	Class string
	Codes map[string]struct{}
}

func (AircraftClass) Kind() Kind { return KindAircraftClass }

// Airport matches flights arriving at or departing from any of a set of
// airports. Codes may be ICAO or IATA; the matcher expands equivalents.
type Airport struct {
	base
	Codes map[string]struct{}
}

func (Airport) Kind() Kind { return KindAirport }

// AirportPair matches flights between two airport sets, in either
// direction.
type AirportPair struct {
	base
	SideA map[string]struct{}
	SideB map[string]struct{}
}

func (AirportPair) Kind() Kind { return KindAirportPair }

// Route matches flights crossing between two region groups (transpacific,
// transatlantic).
type Route struct {
	base
	Name string
}

func (Route) Kind() Kind { return KindRoute }

// RarityTier matches flights whose enriched tier label equals Tier exactly.
type RarityTier struct {
	base
	Tier string
}

func (RarityTier) Kind() Kind { return KindRarityTier }

// Latitude matches flights by latitude bounds. Each bound applies only when
// its Has flag is set.
type Latitude struct {
	base
	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

func (Latitude) Kind() Kind { return KindLatitude }

// ---------------------------------------------------------------------------
// Route definitions
// ---------------------------------------------------------------------------

// RouteSides defines the two region groups a route filter spans.
type RouteSides struct {
	SideA map[airports.Region]struct{}
	SideB map[airports.Region]struct{}
}

// Routes maps route names to their region groups. A flight matches when its
// endpoints' regions fall on opposite sides, in either direction.
var Routes = map[string]RouteSides{
	"transpacific": {
		SideA: regionSet(airports.RegionAsia, airports.RegionOceania),
		SideB: regionSet(airports.RegionAmericas),
	},
	"transatlantic": {
		SideA: regionSet(airports.RegionEurope, airports.RegionAfrica, airports.RegionMiddleEast),
		SideB: regionSet(airports.RegionAmericas),
	},
}

func regionSet(regions ...airports.Region) map[airports.Region]struct{} {
	s := make(map[airports.Region]struct{}, len(regions))
	for _, r := range regions {
		s[r] = struct{}{}
	}
	return s
}

// TypeCodes returns the type-code set carried by code-based filters
// (manufacturer, aircraft type, aircraft class). Used by the compound-"or"
// rule to union sub-results and by the matcher.
func TypeCodes(f Filter) (map[string]struct{}, bool) {
	switch v := f.(type) {
	case Manufacturer:
		return v.Codes, true
	case AircraftType:
		return v.Codes, true
	case AircraftClass:
		return v.Codes, true
	}
	return nil, false
}

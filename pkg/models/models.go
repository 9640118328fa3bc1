package models

import "time"

// Flight represents a live flight record from the feed, optionally enriched
// with rarity data (see feed.Enrich). Origin and Destination are IATA-style
// airport codes and may be empty for flights without a filed route.
type Flight struct {
	FlightID     string    `json:"flightid"`
	Callsign     string    `json:"callsign"`
	Registration string    `json:"registration"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	TypeCode     string    `json:"typecode"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Altitude     float64   `json:"altitude"`
	GroundSpeed  float64   `json:"ground_speed"`
	OnGround     bool      `json:"on_ground"`
	Timestamp    time.Time `json:"timestamp"`

	// Enrichment fields, attached before matching.
	Rarity       float64 `json:"rarity"`
	Tier         string  `json:"tier"`
	AircraftName string  `json:"aircraft_name"`
	XP           int     `json:"xp"`
}

// HasPosition reports whether the flight carries a usable position.
// The feed encodes "no position" as (0, 0).
func (f *Flight) HasPosition() bool {
	return f.Latitude != 0 || f.Longitude != 0
}

// HasRoute reports whether both route endpoints are present.
func (f *Flight) HasRoute() bool {
	return f.Origin != "" && f.Destination != ""
}

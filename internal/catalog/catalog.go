// Package catalog provides the aircraft metadata catalog: the model rows
// fetched from the Skycards API, rarity lookups, and the manufacturer and
// class indexes the challenge parser consults.
package catalog

// Row is a single aircraft model in the catalog.
type Row struct {
	ID           string `json:"id"`   // ICAO type code, e.g. "B744"
	Name         string `json:"name"` // display name, e.g. "Boeing 747-400"
	Manufacturer string `json:"manufacturer"`
	Type         string `json:"aircraftType"` // single-letter classification
	Military     bool   `json:"military"`
	Rareness     int    `json:"rareness"` // 0-2000 raw scale
	Category     string `json:"cardCategory"`
	XP           int    `json:"xp"`
	Count        int    `json:"num"` // registered aircraft of this type
}

// Catalog is the ordered collection of model rows plus the blacklist of
// type codes excluded from rarity scoring.
type Catalog struct {
	UpdatedAt int64    `json:"updatedAt"`
	Rows      []Row    `json:"rows"`
	Blacklist []string `json:"blacklist"`

	// Source records where this copy came from: "cache" or "remote".
	Source string `json:"-"`
}

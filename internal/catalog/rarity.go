package catalog

// ---------------------------------------------------------------------------
// Rarity tiers
// ---------------------------------------------------------------------------

// TierNames maps the catalog's lowercase card categories to their canonical
// display labels (the in-game tier scale).
var TierNames = map[string]string{
	"ultra":      "Ultra",
	"rare":       "Rare",
	"scarce":     "Scarce",
	"uncommon":   "Uncommon",
	"common":     "Common",
	"historical": "Historical",
	"fantasy":    "Fantasy",
}

// RarityInfo holds the per-type rarity data attached to flights during
// enrichment.
type RarityInfo struct {
	Name   string
	Rarity float64 // in-game display scale, rareness/100
	Tier   string  // canonical display label
	XP     int
}

// RarityLookup maps ICAO type codes to rarity info.
type RarityLookup map[string]RarityInfo

// BuildRarityLookup derives the rarity lookup from the catalog, skipping
// blacklisted type codes. The raw rareness (0-2000) is converted to the
// in-game display scale: A320 rareness=47 → 0.47, Robin R-300 895 → 8.95.
func BuildRarityLookup(c *Catalog) RarityLookup {
	blacklist := make(map[string]struct{}, len(c.Blacklist))
	for _, code := range c.Blacklist {
		blacklist[code] = struct{}{}
	}

	lookup := make(RarityLookup, len(c.Rows))
	for _, row := range c.Rows {
		if row.ID == "" {
			continue
		}
		if _, banned := blacklist[row.ID]; banned {
			continue
		}
		tier, ok := TierNames[row.Category]
		if !ok {
			tier = titleCase(row.Category)
		}
		name := row.Name
		if name == "" {
			name = row.ID
		}
		lookup[row.ID] = RarityInfo{
			Name:   name,
			Rarity: float64(row.Rareness) / 100.0,
			Tier:   tier,
			XP:     row.XP,
		}
	}
	return lookup
}

// titleCase uppercases the first byte of an ASCII word.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

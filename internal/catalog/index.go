package catalog

import (
	"strings"
)

// ---------------------------------------------------------------------------
// Manufacturer index
// ---------------------------------------------------------------------------

// ManufacturerEntry holds the canonical manufacturer name and the type
// codes it produces. Multiple normalized keys may point at the same entry.
type ManufacturerEntry struct {
	Canonical string
	Codes     map[string]struct{}
}

// ManufacturerIndex maps normalized manufacturer strings to their entry.
type ManufacturerIndex struct {
	byKey map[string]*ManufacturerEntry
	keys  []string // insertion-ordered unique keys, for deterministic prefix scans
}

// Lookup returns the entry for a normalized key.
func (idx *ManufacturerIndex) Lookup(key string) (*ManufacturerEntry, bool) {
	e, ok := idx.byKey[key]
	return e, ok
}

// Keys returns every index key in a stable order.
func (idx *ManufacturerIndex) Keys() []string { return idx.keys }

// Len returns the number of distinct keys.
func (idx *ManufacturerIndex) Len() int { return len(idx.byKey) }

// NormalizeLoose lowercases, drops apostrophes and turns hyphens into
// spaces, matching the index's punctuation-to-space key form.
func NormalizeLoose(s string) string {
	out := strings.ToLower(s)
	out = strings.ReplaceAll(out, "'", "")
	out = strings.ReplaceAll(out, "-", " ")
	return strings.TrimSpace(out)
}

// NormalizeCollapsed lowercases and strips everything but letters and
// digits, matching the index's collapsed key form.
func NormalizeCollapsed(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildManufacturerIndex derives the manufacturer lookup table from the
// catalog rows. Each manufacturer is reachable under several normalized
// keys: exact lowercase, punctuation-to-space, alphanumeric-collapsed, and
// (for multi-word names) the first word alone, so "Gulfstream" finds
// "GULFSTREAM AEROSPACE". Pure function of the rows; safe to cache.
func BuildManufacturerIndex(rows []Row) *ManufacturerIndex {
	// Group type codes by manufacturer, preserving first-seen order.
	byMfr := make(map[string]*ManufacturerEntry)
	var order []string
	for _, row := range rows {
		if row.Manufacturer == "" || row.ID == "" {
			continue
		}
		e, ok := byMfr[row.Manufacturer]
		if !ok {
			e = &ManufacturerEntry{
				Canonical: row.Manufacturer,
				Codes:     make(map[string]struct{}),
			}
			byMfr[row.Manufacturer] = e
			order = append(order, row.Manufacturer)
		}
		e.Codes[row.ID] = struct{}{}
	}

	idx := &ManufacturerIndex{byKey: make(map[string]*ManufacturerEntry, len(byMfr)*3)}
	add := func(key string, e *ManufacturerEntry) {
		if key == "" {
			return
		}
		if _, exists := idx.byKey[key]; !exists {
			idx.keys = append(idx.keys, key)
		}
		idx.byKey[key] = e
	}
	for _, mfr := range order {
		e := byMfr[mfr]
		lower := strings.ToLower(mfr)
		add(lower, e)
		add(NormalizeLoose(mfr), e)
		add(NormalizeCollapsed(mfr), e)
		if i := strings.IndexByte(lower, ' '); i > 0 {
			first := lower[:i]
			// First-word keys never displace a full-name key.
			if _, taken := idx.byKey[first]; !taken {
				add(first, e)
			}
		}
	}
	return idx
}

// ---------------------------------------------------------------------------
// Class index
// ---------------------------------------------------------------------------

// ClassNames are the aircraft class labels the parser recognizes.
var ClassNames = []string{
	"helicopter", "military", "gyrocopter", "autogyro",
	"tiltrotor", "amphibian", "glider",
}

// ClassIndex maps a class label to the type codes belonging to it.
type ClassIndex map[string]map[string]struct{}

// Codes returns the type-code set for a class label.
func (idx ClassIndex) Codes(class string) map[string]struct{} {
	return idx[class]
}

// BuildClassIndex derives per-class type-code sets from the catalog rows.
// Classification comes from the single-letter type field and the military
// flag; gliders are additionally detected by name or by the GLID/GLIM ids,
// since the catalog types most of them as plain landplanes.
func BuildClassIndex(rows []Row) ClassIndex {
	idx := make(ClassIndex, len(ClassNames))
	for _, class := range ClassNames {
		idx[class] = make(map[string]struct{})
	}
	for _, row := range rows {
		if row.ID == "" {
			continue
		}
		switch row.Type {
		case "H":
			idx["helicopter"][row.ID] = struct{}{}
		case "G":
			idx["gyrocopter"][row.ID] = struct{}{}
			idx["autogyro"][row.ID] = struct{}{}
		case "T":
			idx["tiltrotor"][row.ID] = struct{}{}
		case "A":
			idx["amphibian"][row.ID] = struct{}{}
		case "S":
			idx["glider"][row.ID] = struct{}{}
		}
		if strings.Contains(strings.ToLower(row.Name), "glider") ||
			row.ID == "GLID" || row.ID == "GLIM" {
			idx["glider"][row.ID] = struct{}{}
		}
		if row.Military {
			idx["military"][row.ID] = struct{}{}
		}
	}
	return idx
}

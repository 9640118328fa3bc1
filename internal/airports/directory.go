// Package airports resolves free-form airport and city names to ICAO/IATA
// codes and classifies airports into coarse geographic regions.
package airports

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ---------------------------------------------------------------------------
// Static lookup tables
// ---------------------------------------------------------------------------

// nameToICAO maps lowercase airport/city names to ICAO codes. Covers the
// notable airports that show up in challenge text: extreme locations, major
// hubs, and common aliases ("ohare", "cdg").
var nameToICAO = map[string]string{
	// Extreme locations
	"longyearbyen": "ENSB",
	"svalbard":     "ENSB",
	"ushuaia":      "SAWH",
	"ushuai":       "SAWH",
	// Major hubs
	"heathrow":          "EGLL",
	"london heathrow":   "EGLL",
	"gatwick":           "EGKK",
	"jfk":               "KJFK",
	"john f kennedy":    "KJFK",
	"kennedy":           "KJFK",
	"lax":               "KLAX",
	"los angeles":       "KLAX",
	"chicago":           "KORD",
	"o'hare":            "KORD",
	"ohare":             "KORD",
	"atlanta":           "KATL",
	"dallas":            "KDFW",
	"denver":            "KDEN",
	"san francisco":     "KSFO",
	"sfo":               "KSFO",
	"miami":             "KMIA",
	"seattle":           "KSEA",
	"boston":            "KBOS",
	"newark":            "KEWR",
	"laguardia":         "KLGA",
	"narita":            "RJAA",
	"tokyo narita":      "RJAA",
	"haneda":            "RJTT",
	"tokyo haneda":      "RJTT",
	"incheon":           "RKSI",
	"seoul":             "RKSI",
	"beijing":           "ZBAA",
	"shanghai":          "ZSPD",
	"pudong":            "ZSPD",
	"hong kong":         "VHHH",
	"singapore":         "WSSS",
	"changi":            "WSSS",
	"dubai":             "OMDB",
	"abu dhabi":         "OMAA",
	"doha":              "OTHH",
	"istanbul":          "LTFM",
	"paris":             "LFPG",
	"charles de gaulle": "LFPG",
	"cdg":               "LFPG",
	"amsterdam":         "EHAM",
	"schiphol":          "EHAM",
	"frankfurt":         "EDDF",
	"munich":            "EDDM",
	"zurich":            "LSZH",
	"rome":              "LIRF",
	"fiumicino":         "LIRF",
	"madrid":            "LEMD",
	"barcelona":         "LEBL",
	"lisbon":            "LPPT",
	"sydney":            "YSSY",
	"melbourne":         "YMML",
	"auckland":          "NZAA",
	"bangkok":           "VTBS",
	"suvarnabhumi":      "VTBS",
	"kuala lumpur":      "WMKK",
	"jakarta":           "WIII",
	"delhi":             "VIDP",
	"mumbai":            "VABB",
	"johannesburg":      "FAOR",
	"cape town":         "FACT",
	"cairo":             "HECA",
	"sao paulo":         "SBGR",
	"guarulhos":         "SBGR",
	"mexico city":       "MMMX",
	"buenos aires":      "SAEZ",
	"ezeiza":            "SAEZ",
	"lima":              "SPJC",
	"bogota":            "SKBO",
	"santiago":          "SCEL",
	"toronto":           "CYYZ",
	"pearson":           "CYYZ",
	"vancouver":         "CYVR",
	"anchorage":         "PANC",
	"honolulu":          "PHNL",
	"taipei":            "RCTP",
	"taoyuan":           "RCTP",
	"manila":            "RPLL",
	"osaka":             "RJBB",
	"kansai":            "RJBB",
	"moscow":            "UUEE",
	"sheremetyevo":      "UUEE",
	"helsinki":          "EFHK",
	"copenhagen":        "EKCH",
	"oslo":              "ENGM",
	"stockholm":         "ESSA",
	"reykjavik":         "BIRK",
	"keflavik":          "BIKF",
}

// iataToICAO maps 3-letter IATA codes to their 4-letter ICAO equivalents,
// covering the primary airports above plus the secondary airports of every
// multi-airport city in cityAirports.
var iataToICAO = map[string]string{
	"LYR": "ENSB", "USH": "SAWH", "LHR": "EGLL", "JFK": "KJFK",
	"LAX": "KLAX", "ORD": "KORD", "ATL": "KATL", "DFW": "KDFW",
	"DEN": "KDEN", "SFO": "KSFO", "MIA": "KMIA", "SEA": "KSEA",
	"BOS": "KBOS", "EWR": "KEWR", "LGA": "KLGA", "NRT": "RJAA",
	"HND": "RJTT", "ICN": "RKSI", "PEK": "ZBAA", "PVG": "ZSPD",
	"HKG": "VHHH", "SIN": "WSSS", "DXB": "OMDB", "AUH": "OMAA",
	"DOH": "OTHH", "IST": "LTFM", "CDG": "LFPG", "AMS": "EHAM",
	"FRA": "EDDF", "MUC": "EDDM", "ZRH": "LSZH", "FCO": "LIRF",
	"MAD": "LEMD", "BCN": "LEBL", "LIS": "LPPT", "SYD": "YSSY",
	"MEL": "YMML", "AKL": "NZAA", "BKK": "VTBS", "KUL": "WMKK",
	"CGK": "WIII", "DEL": "VIDP", "BOM": "VABB", "JNB": "FAOR",
	"CPT": "FACT", "CAI": "HECA", "GRU": "SBGR", "MEX": "MMMX",
	"EZE": "SAEZ", "LIM": "SPJC", "BOG": "SKBO", "SCL": "SCEL",
	"YYZ": "CYYZ", "YVR": "CYVR", "ANC": "PANC", "HNL": "PHNL",
	"TPE": "RCTP", "MNL": "RPLL", "KIX": "RJBB",
	// Secondary airports of multi-airport cities
	"LGW": "EGKK", "STN": "EGSS", "LTN": "EGGW", "LCY": "EGLC",
	"ORY": "LFPO", "CIA": "LIRA", "MXP": "LIMC", "BGY": "LIME",
	"DME": "UUDD", "VKO": "UUWW", "GMP": "RKSS", "SHA": "ZSSS",
	"AEP": "SABE", "CGH": "SBSP", "IAD": "KIAD", "DCA": "KDCA",
	"BWI": "KBWI", "BUR": "KBUR", "LGB": "KLGB", "SNA": "KSNA",
	"MDW": "KMDW", "DAL": "KDAL", "IAH": "KIAH", "HOU": "KHOU",
	"OAK": "KOAK", "SJC": "KSJC", "FLL": "KFLL", "DMK": "VTBD",
	"SAW": "LTFJ", "DWC": "OMDW",
}

// cityAirports maps lowercase city names to every ICAO code serving the
// city, so "from London to New York" covers all airports of both.
var cityAirports = map[string][]string{
	"london":        {"EGLL", "EGKK", "EGSS", "EGGW", "EGLC"},
	"new york":      {"KJFK", "KEWR", "KLGA"},
	"tokyo":         {"RJAA", "RJTT"},
	"paris":         {"LFPG", "LFPO"},
	"rome":          {"LIRF", "LIRA"},
	"milan":         {"LIMC", "LIME"},
	"moscow":        {"UUEE", "UUDD", "UUWW"},
	"seoul":         {"RKSI", "RKSS"},
	"shanghai":      {"ZSPD", "ZSSS"},
	"buenos aires":  {"SAEZ", "SABE"},
	"sao paulo":     {"SBGR", "SBSP"},
	"washington":    {"KIAD", "KDCA", "KBWI"},
	"los angeles":   {"KLAX", "KBUR", "KLGB", "KSNA"},
	"chicago":       {"KORD", "KMDW"},
	"dallas":        {"KDFW", "KDAL"},
	"houston":       {"KIAH", "KHOU"},
	"san francisco": {"KSFO", "KOAK", "KSJC"},
	"miami":         {"KMIA", "KFLL"},
	"bangkok":       {"VTBS", "VTBD"},
	"istanbul":      {"LTFM", "LTFJ"},
	"sydney":        {"YSSY"},
	"melbourne":     {"YMML"},
	"auckland":      {"NZAA"},
	"dubai":         {"OMDB", "OMDW"},
}

// ---------------------------------------------------------------------------
// Directory
// ---------------------------------------------------------------------------

// Directory resolves airport and city names to codes. Immutable after
// construction; safe for concurrent readers.
type Directory struct {
	names      map[string]string // lowercase name → ICAO
	fuzzyKeys  []string          // sorted name keys for deterministic fuzzy scan
	iataToICAO map[string]string
	icaoToIATA map[string]string
	cities     map[string][]string // lowercase city → ICAO codes
}

// NewDirectory builds the static airport directory.
func NewDirectory() *Directory {
	d := &Directory{
		names:      nameToICAO,
		iataToICAO: iataToICAO,
		icaoToIATA: make(map[string]string, len(iataToICAO)),
		cities:     cityAirports,
	}
	for iata, icao := range iataToICAO {
		d.icaoToIATA[icao] = iata
	}
	d.fuzzyKeys = make([]string, 0, len(d.names))
	for k := range d.names {
		d.fuzzyKeys = append(d.fuzzyKeys, k)
	}
	// Sorted scan order makes the fuzzy tie-break deterministic: among
	// equidistant keys the lexicographically smallest wins.
	sort.Strings(d.fuzzyKeys)
	return d
}

// IATAToICAO converts a 3-letter IATA code to its ICAO equivalent.
func (d *Directory) IATAToICAO(code string) (string, bool) {
	icao, ok := d.iataToICAO[code]
	return icao, ok
}

// ICAOToIATA converts a 4-letter ICAO code to its IATA equivalent.
func (d *Directory) ICAOToIATA(code string) (string, bool) {
	iata, ok := d.icaoToIATA[code]
	return iata, ok
}

// Resolve turns an airport name or code into an ICAO code.
//
// Resolution order, first success wins:
//  1. exact 4 uppercase letters → returned as-is (assumed ICAO)
//  2. exact 3 uppercase letters → IATA lookup
//  3. case-insensitive exact name match
//  4. fuzzy match by edit distance against every known name
func (d *Directory) Resolve(text string) (string, bool) {
	name := strings.TrimSpace(text)
	if isUpperAlpha(name, 4) {
		return name, true
	}
	upper := strings.ToUpper(name)
	if isUpperAlpha(upper, 3) {
		icao, ok := d.iataToICAO[upper]
		return icao, ok
	}
	if icao, ok := d.names[strings.ToLower(name)]; ok {
		return icao, true
	}
	return d.fuzzyResolve(name)
}

// fuzzyResolve finds the name key with the smallest edit distance to the
// input, accepting it only within max(2, len(key)/4) edits. Handles typos
// like "madris" → "madrid".
func (d *Directory) fuzzyResolve(name string) (string, bool) {
	lower := strings.ToLower(name)
	best := ""
	bestDist := -1
	for _, key := range d.fuzzyKeys {
		dist := levenshtein.ComputeDistance(lower, key)
		maxAllowed := len(key) / 4
		if maxAllowed < 2 {
			maxAllowed = 2
		}
		if dist > maxAllowed {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = key
		}
	}
	if best == "" {
		return "", false
	}
	return d.names[best], true
}

// ResolveCity resolves a city or airport name to the set of all matching
// codes, in both ICAO and IATA form to maximize coverage against flight
// records that may report either format. Multi-airport cities return every
// airport of the city; other names fall back to single-airport resolution.
func (d *Directory) ResolveCity(text string) map[string]struct{} {
	codes := make(map[string]struct{})
	key := strings.ToLower(strings.TrimSpace(text))
	if icaos, ok := d.cities[key]; ok {
		for _, icao := range icaos {
			codes[icao] = struct{}{}
			if iata, ok := d.icaoToIATA[icao]; ok {
				codes[iata] = struct{}{}
			}
		}
		return codes
	}
	if icao, ok := d.Resolve(text); ok {
		codes[icao] = struct{}{}
		if iata, ok := d.icaoToIATA[icao]; ok {
			codes[iata] = struct{}{}
		}
	}
	return codes
}

// ExpandCodes returns a copy of the code set with IATA↔ICAO equivalents
// added for every member. Used by the matcher so a filter built from ICAO
// codes still matches feed records reporting IATA, and vice versa.
func (d *Directory) ExpandCodes(codes map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(codes)*2)
	for code := range codes {
		out[code] = struct{}{}
		if iata, ok := d.icaoToIATA[code]; ok {
			out[iata] = struct{}{}
		}
		if icao, ok := d.iataToICAO[code]; ok {
			out[icao] = struct{}{}
		}
	}
	return out
}

// KnownIATACodes returns every IATA code in the directory. Used by the
// region table builder to derive regions from ICAO prefixes.
func (d *Directory) KnownIATACodes() []string {
	out := make([]string, 0, len(d.iataToICAO))
	for iata := range d.iataToICAO {
		out = append(out, iata)
	}
	sort.Strings(out)
	return out
}

// isUpperAlpha reports whether s is exactly n uppercase ASCII letters.
func isUpperAlpha(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < n; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

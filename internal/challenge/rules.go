package challenge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Riley-LeLay/skycards/internal/catalog"
)

// rule is one step of the classification cascade. try returns the parsed
// filter and true on a confident match; false falls through to the next
// rule.
type rule struct {
	name string
	try  func(p *Parser, original, cleaned string) (Filter, bool)
}

// orderedRules returns the cascade in precedence order. The order is part
// of the contract: "transpacific" must be claimed by the route rule before
// the manufacturer substring rule ever sees it, and airport patterns must
// beat the loose aircraft searches.
func orderedRules() []rule {
	return []rule{
		{"route", (*Parser).tryRoute},
		{"latitude", (*Parser).tryLatitude},
		{"airport_pair", (*Parser).tryAirportPair},
		{"airport", (*Parser).tryAirport},
		{"rarity_tier", (*Parser).tryRarityTier},
		{"aircraft_class", (*Parser).tryAircraftClass},
		{"compound_or", (*Parser).tryCompoundOr},
		{"manufacturer", (*Parser).tryManufacturer},
		{"manufacturer_model", (*Parser).tryManufacturerModel},
		{"type_substring", (*Parser).tryTypeSubstring},
		{"word_conjunction", (*Parser).tryWordConjunction},
	}
}

// ---------------------------------------------------------------------------
// Rule: route
// ---------------------------------------------------------------------------

var routeRE = regexp.MustCompile(`(?i)(transpacific|transatlantic)`)

func (p *Parser) tryRoute(original, cleaned string) (Filter, bool) {
	m := routeRE.FindStringSubmatch(cleaned)
	if m == nil {
		return nil, false
	}
	name := strings.ToLower(m[1])
	return Route{
		base: base{text: original, desc: fmt.Sprintf("Flights on %s routes", name)},
		Name: name,
	}, true
}

// ---------------------------------------------------------------------------
// Rule: latitude region
// ---------------------------------------------------------------------------

// latPhrase is one recognizable geographic phrase. Fixed phrases carry
// their bound directly; directional ones (equator, tropics) branch on a
// "north of" cue, defaulting to "south of" when the cue is absent.
type latPhrase struct {
	key       string
	line      float64 // latitude of the line for directional phrases
	lineName  string
	fixed     bool
	min, max  float64
	hasMin    bool
	hasMax    bool
	fixedDesc string
}

// latPhrases is checked in order. The antarctic entries must precede the
// arctic ones: "antarctic circle" contains "arctic circle" as a substring,
// so the shorter key would otherwise claim both. Misspelled variants cover
// challenge texts seen in the wild.
var latPhrases = []latPhrase{
	{key: "antarctic circle", fixed: true, max: -66.5, hasMax: true,
		fixedDesc: "south of the Antarctic Circle (below 66.5S)"},
	{key: "antartic circle", fixed: true, max: -66.5, hasMax: true,
		fixedDesc: "south of the Antarctic Circle (below 66.5S)"},
	{key: "arctic circle", fixed: true, min: 66.5, hasMin: true,
		fixedDesc: "north of the Arctic Circle (above 66.5N)"},
	{key: "artic circle", fixed: true, min: 66.5, hasMin: true,
		fixedDesc: "north of the Arctic Circle (above 66.5N)"},
	{key: "equator", line: 0, lineName: "Equator"},
	{key: "tropic of cancer", line: 23.4, lineName: "Tropic of Cancer"},
	{key: "tropic of capricorn", line: -23.4, lineName: "Tropic of Capricorn"},
}

var northOfRE = regexp.MustCompile(`(?i)north\s+of`)

func (p *Parser) tryLatitude(original, cleaned string) (Filter, bool) {
	lower := strings.ToLower(cleaned)
	for _, ph := range latPhrases {
		if !strings.Contains(lower, ph.key) {
			continue
		}
		if ph.fixed {
			return Latitude{
				base:   base{text: original, desc: "Flights " + ph.fixedDesc},
				Min:    ph.min,
				Max:    ph.max,
				HasMin: ph.hasMin,
				HasMax: ph.hasMax,
			}, true
		}
		// Directional: "north of" selects the upper half; anything else,
		// including no cue at all, defaults to "south of".
		if northOfRE.MatchString(cleaned) {
			return Latitude{
				base:   base{text: original, desc: fmt.Sprintf("Flights north of the %s", ph.lineName)},
				Min:    ph.line,
				HasMin: true,
			}, true
		}
		return Latitude{
			base:   base{text: original, desc: fmt.Sprintf("Flights south of the %s", ph.lineName)},
			Max:    ph.line,
			HasMax: true,
		}, true
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Rule: airport pair ("from A to B [or back]")
// ---------------------------------------------------------------------------

var pairRE = regexp.MustCompile(
	`(?i)(?:flight\s+)?(?:going\s+)?from\s+(.+?)\s+to\s+(.+?)(?:\s+or\s+back)?(?:\s+airport)?\.?$`)

func (p *Parser) tryAirportPair(original, cleaned string) (Filter, bool) {
	m := pairRE.FindStringSubmatch(cleaned)
	if m == nil {
		return nil, false
	}
	cityA := strings.TrimSpace(m[1])
	cityB := strings.TrimSpace(m[2])
	codesA := p.dir.ResolveCity(cityA)
	codesB := p.dir.ResolveCity(cityB)
	// Both sides must resolve; otherwise fall through so the looser
	// single-airport rule gets a chance at the text.
	if len(codesA) == 0 || len(codesB) == 0 {
		return nil, false
	}
	return AirportPair{
		base: base{
			text: original,
			desc: fmt.Sprintf("Flights from %s to %s or back", cityA, cityB),
		},
		SideA: codesA,
		SideB: codesB,
	}, true
}

// ---------------------------------------------------------------------------
// Rule: airport ("flight going to or from X [or Y]")
// ---------------------------------------------------------------------------

var (
	airportRE = regexp.MustCompile(
		`(?i)(?:flight\s+)?(?:going\s+)?(?:to|from)\s+(?:or\s+(?:to|from)\s+)?(.+?)(?:\s+airport)?(?:\s+in\s+the\s+world)?\.?$`)
	parenRE   = regexp.MustCompile(`\(([^)]+)\)`)
	orSplitRE = regexp.MustCompile(`(?i)\s+or\s+`)
)

func (p *Parser) tryAirport(original, cleaned string) (Filter, bool) {
	m := airportRE.FindStringSubmatch(cleaned)
	if m == nil {
		return nil, false
	}
	airportText := m[1]

	// "the northernmost (Longyearbyen) or southernmost (Ushuaia)" names the
	// airports in parentheses; prefer those when present, otherwise split
	// on " or ".
	var names []string
	if parens := parenRE.FindAllStringSubmatch(airportText, -1); len(parens) > 0 {
		for _, pm := range parens {
			names = append(names, pm[1])
		}
	} else {
		names = orSplitRE.Split(airportText, -1)
	}

	codes := make(map[string]struct{})
	resolved := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimRight(strings.TrimSpace(name), ".")
		if name == "" {
			continue
		}
		if code, ok := p.dir.Resolve(name); ok {
			codes[code] = struct{}{}
			resolved = append(resolved, fmt.Sprintf("%s (%s)", name, code))
		} else {
			// Unresolved names stay visible in the description instead of
			// failing the whole challenge.
			resolved = append(resolved, fmt.Sprintf("%s (unresolved)", name))
		}
	}
	if len(codes) == 0 {
		return nil, false
	}
	return Airport{
		base: base{
			text: original,
			desc: fmt.Sprintf("Flights to/from %s", strings.Join(resolved, ", ")),
		},
		Codes: codes,
	}, true
}

// ---------------------------------------------------------------------------
// Rule: rarity tier
// ---------------------------------------------------------------------------

var tierRE = regexp.MustCompile(`(?i)\b(ultra|rare|scarce|uncommon|common|historical|fantasy)\b`)

func (p *Parser) tryRarityTier(original, cleaned string) (Filter, bool) {
	m := tierRE.FindStringSubmatch(cleaned)
	if m == nil {
		return nil, false
	}
	tier := catalog.TierNames[strings.ToLower(m[1])]
	return RarityTier{
		base: base{text: original, desc: fmt.Sprintf("%s tier aircraft", tier)},
		Tier: tier,
	}, true
}

// ---------------------------------------------------------------------------
// Rule: aircraft class
// ---------------------------------------------------------------------------

var classRE = regexp.MustCompile(`(?i)\b(helicopter|military|gyrocopter|autogyro|tiltrotor|amphibian|glider)\b`)

func (p *Parser) tryAircraftClass(original, cleaned string) (Filter, bool) {
	m := classRE.FindStringSubmatch(cleaned)
	if m == nil {
		return nil, false
	}
	class := strings.ToLower(m[1])
	codes := p.classIdx.Codes(class)
	if codes == nil {
		codes = map[string]struct{}{}
	}
	return AircraftClass{
		base: base{
			text: original,
			desc: fmt.Sprintf("%s aircraft (%d types)", titleWord(class), len(codes)),
		},
		Class: class,
		Codes: codes,
	}, true
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ---------------------------------------------------------------------------
// Rule: compound "or" for aircraft types
// ---------------------------------------------------------------------------

var backRE = regexp.MustCompile(`(?i)\bback\b`)

// tryCompoundOr handles "Pilatus PC-12 or PC-24": split on " or ", infer
// the manufacturer prefix for bare model fragments from the first part,
// re-parse each reconstructed part as its own challenge, and union the
// resulting code sets. Recursion is bounded: each fragment is strictly
// shorter than the input and contains no further " or ", so the compound
// rule can never re-trigger on a fragment.
func (p *Parser) tryCompoundOr(original, cleaned string) (Filter, bool) {
	if !orSplitRE.MatchString(cleaned) || backRE.MatchString(cleaned) {
		return nil, false
	}
	parts := orSplitRE.Split(cleaned, -1)

	merged := make(map[string]struct{})
	var descriptions []string
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// Later parts that look like bare model fragments ("PC-24") get the
		// manufacturer token from the first part prepended.
		if i > 0 && !strings.Contains(part, " ") {
			firstWords := strings.Fields(parts[0])
			if len(firstWords) > 1 {
				part = firstWords[0] + " " + part
			}
		}
		sub := p.Parse("Catch a " + part)
		if codes, ok := TypeCodes(sub); ok && len(codes) > 0 {
			for c := range codes {
				merged[c] = struct{}{}
			}
			descriptions = append(descriptions, sub.Description())
		}
	}
	if len(merged) == 0 {
		return nil, false
	}
	return AircraftType{
		base:  base{text: original, desc: strings.Join(descriptions, " + ")},
		Codes: merged,
	}, true
}

// ---------------------------------------------------------------------------
// Rule: manufacturer
// ---------------------------------------------------------------------------

var typeSuffixRE = regexp.MustCompile(`(?i)\s*(?:aircraft|plane|airplane|aeroplane)s?\s*$`)

func (p *Parser) tryManufacturer(original, cleaned string) (Filter, bool) {
	candidate := strings.TrimSpace(typeSuffixRE.ReplaceAllString(cleaned, ""))
	if candidate == "" {
		return nil, false
	}
	for _, key := range []string{
		strings.ToLower(candidate),
		catalog.NormalizeLoose(candidate),
		catalog.NormalizeCollapsed(candidate),
	} {
		entry, ok := p.mfrIdx.Lookup(key)
		if !ok {
			continue
		}
		return Manufacturer{
			base: base{
				text: original,
				desc: fmt.Sprintf("%s aircraft (%s)", entry.Canonical, summarizeCodes(entry.Codes)),
			},
			Canonical: entry.Canonical,
			Codes:     entry.Codes,
		}, true
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Rule: manufacturer + model ("Boeing 747", "Airbus A380")
// ---------------------------------------------------------------------------

func (p *Parser) tryManufacturerModel(original, cleaned string) (Filter, bool) {
	search := strings.ToLower(strings.TrimSpace(typeSuffixRE.ReplaceAllString(cleaned, "")))
	for _, key := range p.mfrIdx.Keys() {
		if !strings.HasPrefix(search, key) || len(search) <= len(key) {
			continue
		}
		modelPart := strings.TrimSpace(search[len(key):])
		if modelPart == "" {
			continue
		}
		entry, _ := p.mfrIdx.Lookup(key)
		modelNoHyphen := strings.ReplaceAll(modelPart, "-", "")

		matched := make(map[string]struct{})
		for _, row := range p.rows {
			if _, ok := entry.Codes[row.ID]; !ok {
				continue
			}
			rid := strings.ToLower(row.ID)
			rname := strings.ToLower(row.Name)
			if strings.Contains(rname, modelPart) || strings.Contains(rid, modelPart) ||
				strings.Contains(rid, modelNoHyphen) || strings.Contains(rname, modelNoHyphen) {
				matched[row.ID] = struct{}{}
			}
		}
		if len(matched) > 0 {
			return AircraftType{
				base: base{
					text: original,
					desc: fmt.Sprintf("%s %s variants (%s)",
						entry.Canonical, strings.ToUpper(modelPart), summarizeCodes(matched)),
				},
				Codes: matched,
			}, true
		}
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Rule: bare type substring
// ---------------------------------------------------------------------------

func (p *Parser) tryTypeSubstring(original, cleaned string) (Filter, bool) {
	search := strings.ToLower(strings.TrimSpace(typeSuffixRE.ReplaceAllString(cleaned, "")))
	noHyphen := strings.ReplaceAll(search, "-", "")
	if search == "" {
		return nil, false
	}

	matched := make(map[string]struct{})
	for _, row := range p.rows {
		rid := strings.ToLower(row.ID)
		rname := strings.ToLower(row.Name)
		// Substring search against names, exact match against type codes:
		// "747" should find "Boeing 747-400" but "74" must not claim B744.
		if strings.Contains(rname, search) || search == rid ||
			strings.Contains(rname, noHyphen) || noHyphen == rid {
			matched[row.ID] = struct{}{}
		}
	}
	if len(matched) == 0 {
		return nil, false
	}
	return AircraftType{
		base: base{
			text: original,
			desc: fmt.Sprintf("Aircraft matching '%s' (%d types)", cleaned, len(matched)),
		},
		Codes: matched,
	}, true
}

// ---------------------------------------------------------------------------
// Rule: fallback word-conjunction search
// ---------------------------------------------------------------------------

// tryWordConjunction is the last-resort search: every word longer than two
// characters must appear in the row's name or manufacturer. Conjunctive on
// purpose: requiring all words avoids false positives from any single
// common word.
func (p *Parser) tryWordConjunction(original, cleaned string) (Filter, bool) {
	search := strings.ToLower(strings.TrimSpace(typeSuffixRE.ReplaceAllString(cleaned, "")))
	var words []string
	for _, w := range strings.Fields(search) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil, false
	}

	matched := make(map[string]struct{})
	for _, row := range p.rows {
		rname := strings.ToLower(row.Name)
		rmfr := strings.ToLower(row.Manufacturer)
		all := true
		for _, w := range words {
			if !strings.Contains(rname, w) && !strings.Contains(rmfr, w) {
				all = false
				break
			}
		}
		if all {
			matched[row.ID] = struct{}{}
		}
	}
	if len(matched) == 0 {
		return nil, false
	}
	return AircraftType{
		base: base{
			text: original,
			desc: fmt.Sprintf("Best-effort match for '%s' (%d types)", cleaned, len(matched)),
		},
		Codes: matched,
	}, true
}

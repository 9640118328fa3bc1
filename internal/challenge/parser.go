package challenge

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Riley-LeLay/skycards/internal/airports"
	"github.com/Riley-LeLay/skycards/internal/catalog"
)

// parseCacheSize bounds the memoized parse results. Challenge sets are tiny
// (a handful per day), so this mostly guards against unbounded growth when
// the parser is fed arbitrary text.
const parseCacheSize = 256

// catchPrefixRE strips the "Catch a/an" lead-in from challenge text.
var catchPrefixRE = regexp.MustCompile(`(?i)^catch\s+(?:a|an)\s+`)

// Parser classifies challenge text into typed filters. Construction builds
// the manufacturer and class indexes from the catalog; after that the
// parser is read-only and safe for concurrent use.
type Parser struct {
	dir      *airports.Directory
	rows     []catalog.Row
	mfrIdx   *catalog.ManufacturerIndex
	classIdx catalog.ClassIndex
	rules    []rule
	cache    *lru.Cache[string, Filter]
}

// NewParser builds a parser over the given directory and catalog.
func NewParser(dir *airports.Directory, cat *catalog.Catalog) *Parser {
	cache, _ := lru.New[string, Filter](parseCacheSize)
	return &Parser{
		dir:      dir,
		rows:     cat.Rows,
		mfrIdx:   catalog.BuildManufacturerIndex(cat.Rows),
		classIdx: catalog.BuildClassIndex(cat.Rows),
		rules:    orderedRules(),
		cache:    cache,
	}
}

// Parse turns one challenge text into a filter. Deterministic and
// side-effect-free; results are memoized per input text. Parsing never
// fails: text no rule recognizes yields an AircraftType filter with an
// empty code set, which matches nothing.
func (p *Parser) Parse(text string) Filter {
	if f, ok := p.cache.Get(text); ok {
		return f
	}
	f := p.parse(text)
	p.cache.Add(text, f)
	return f
}

// ParseAll parses a batch of challenge texts in order.
func (p *Parser) ParseAll(texts []string) []Filter {
	filters := make([]Filter, len(texts))
	for i, text := range texts {
		filters[i] = p.Parse(text)
	}
	return filters
}

// parse runs the rule cascade. Rule order matters: later, looser rules
// (manufacturer substring, broad word search) would shadow earlier,
// specific ones ("transpacific" must never hit a manufacturer rule).
func (p *Parser) parse(text string) Filter {
	original := strings.TrimSpace(text)
	cleaned := cleanText(original)

	for _, r := range p.rules {
		if f, ok := r.try(p, original, cleaned); ok {
			return f
		}
	}

	// Terminal fallback: a valid filter that matches nothing.
	return AircraftType{
		base:  base{text: original, desc: fmt.Sprintf("Could not parse '%s': no matching aircraft found", cleaned)},
		Codes: map[string]struct{}{},
	}
}

// cleanText trims the text and strips the "Catch a/an" prefix.
func cleanText(text string) string {
	return strings.TrimSpace(catchPrefixRE.ReplaceAllString(strings.TrimSpace(text), ""))
}

// sortedCodes returns the code set as a sorted slice.
func sortedCodes(codes map[string]struct{}) []string {
	out := make([]string, 0, len(codes))
	for c := range codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// summarizeCodes renders "N types: A, B, C..." keeping descriptions short
// for manufacturers with large fleets.
func summarizeCodes(codes map[string]struct{}) string {
	const maxShown = 8
	sorted := sortedCodes(codes)
	shown := sorted
	suffix := ""
	if len(shown) > maxShown {
		shown = shown[:maxShown]
		suffix = "..."
	}
	return fmt.Sprintf("%d types: %s%s", len(sorted), strings.Join(shown, ", "), suffix)
}

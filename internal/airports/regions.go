package airports

// ---------------------------------------------------------------------------
// Region enumeration
// ---------------------------------------------------------------------------

// Region is a coarse geographic bucket used for route classification.
type Region uint8

const (
	RegionAmericas Region = iota
	RegionEurope
	RegionAsia
	RegionOceania
	RegionMiddleEast
	RegionAfrica
	regionCount // must be last
)

var regionNames = [regionCount]string{
	RegionAmericas:   "americas",
	RegionEurope:     "europe",
	RegionAsia:       "asia",
	RegionOceania:    "oceania",
	RegionMiddleEast: "middle_east",
	RegionAfrica:     "africa",
}

func (r Region) String() string {
	if r < regionCount {
		return regionNames[r]
	}
	return "unknown"
}

// ParseRegion converts a string like "americas" to its Region constant.
func ParseRegion(s string) (Region, bool) {
	for i, name := range regionNames {
		if name == s {
			return Region(i), true
		}
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// ICAO prefix layer
// ---------------------------------------------------------------------------

// icaoPrefixRegion maps the first letter of a 4-letter ICAO code to a
// region. Coarse: several prefixes straddle regions but this layer only
// seeds codes the explicit lists below don't cover.
var icaoPrefixRegion = map[byte]Region{
	'K': RegionAmericas, 'P': RegionAmericas, 'C': RegionAmericas,
	'M': RegionAmericas, 'S': RegionAmericas, 'T': RegionAmericas,
	'E': RegionEurope, 'L': RegionEurope, 'B': RegionEurope,
	'R': RegionAsia, 'Z': RegionAsia, 'V': RegionAsia,
	'W': RegionAsia, 'U': RegionAsia,
	'Y': RegionOceania, 'N': RegionOceania,
	'O': RegionMiddleEast,
	'H': RegionAfrica, 'F': RegionAfrica, 'D': RegionAfrica, 'G': RegionAfrica,
}

// ---------------------------------------------------------------------------
// Explicit override layer
// ---------------------------------------------------------------------------

// Explicit IATA→region assignments for high-traffic airports. Many codes
// don't reduce correctly from a single ICAO prefix letter or are missing
// from the IATA↔ICAO map entirely; these lists are authoritative and always
// win over the derived prefix layer.
var regionOverrides = map[Region][]string{
	RegionAmericas: {
		"ATL", "ORD", "DFW", "DEN", "CLT", "IAH", "PHX", "MSP", "DTW", "FLL",
		"IAD", "SLC", "MCO", "PHL", "BWI", "SAN", "TPA", "PDX", "STL", "MCI",
		"BNA", "RDU", "AUS", "IND", "CLE", "CMH", "OAK", "SJC", "SMF", "SNA",
		"SAT", "PIT", "MKE", "CVG", "JAX", "OMA", "RNO", "ABQ", "TUS", "ELP",
		"BUF", "PBI", "RSW", "ONT", "BDL", "RIC", "ORF", "SDF", "OKC", "MEM",
		"GUA", "SAL", "SJO", "PTY", "BOG", "UIO", "LIM", "SCL", "GRU", "GIG",
		"EZE", "MVD", "ASU", "CUN", "MEX", "GDL", "MTY", "TIJ", "SJD", "PVR",
		"HAV", "NAS", "MBJ", "KIN", "PUJ", "SXM", "AUA", "CUR", "BGI", "POS",
		"YUL", "YOW", "YEG", "YWG", "YHZ", "YYC", "ANC", "HNL", "OGG", "KOA",
		"LIH", "FAI", "JNU", "SIT",
	},
	RegionAsia: {
		"NRT", "HND", "KIX", "NGO", "CTS", "FUK", "OKA", "ICN", "GMP", "CJU",
		"PUS", "PEK", "PVG", "CAN", "CTU", "SZX", "WUH", "CSX", "KMG", "XIY",
		"HGH", "NKG", "CKG", "TAO", "DLC", "TSN", "SHE", "CGO", "XMN", "FOC",
		"NNG", "KWE", "HRB", "URC", "LHW", "TNA", "ZUH", "HAK", "SYX", "YNT",
		"HKG", "MFM", "TPE", "KHH", "RMQ", "BKK", "DMK", "CNX", "HKT", "USM",
		"SGN", "HAN", "DAD", "PQC", "KUL", "PEN", "BKI", "KCH", "LGK", "SIN",
		"CGK", "DPS", "SUB", "JOG", "MNL", "CEB", "DVO", "ILO",
		"DEL", "BOM", "BLR", "MAA", "CCU", "HYD", "COK", "AMD", "GOI", "PNQ",
		"DAC", "CMB", "KTM", "ISB", "LHE", "KHI",
		"RGN", "PNH", "REP", "VTE", "LPQ", "UBN", "ULN",
	},
	RegionEurope: {
		"LHR", "LGW", "STN", "LTN", "MAN", "EDI", "BRS", "BHX", "GLA", "BFS",
		"CDG", "ORY", "LYS", "NCE", "MRS", "TLS", "BOD", "NTE",
		"FRA", "MUC", "DUS", "TXL", "BER", "HAM", "STR", "CGN", "HAJ",
		"AMS", "BRU", "LUX",
		"MAD", "BCN", "PMI", "AGP", "ALC", "VLC", "SVQ", "IBZ", "LPA", "TFS",
		"FCO", "MXP", "LIN", "VCE", "NAP", "BLQ", "FLR", "PSA", "CTA", "PMO",
		"ZRH", "GVA", "BSL",
		"VIE", "PRG", "BUD", "WAW", "KRK", "GDN",
		"CPH", "OSL", "ARN", "GOT", "HEL", "TLL", "RIX", "VNO",
		"LIS", "OPO", "FAO", "FNC",
		"ATH", "SKG", "HER", "JTR", "CFU", "RHO", "JMK",
		"IST", "SAW", "AYT", "ADB", "ESB", "DLM", "BJV",
		"BEG", "ZAG", "LJU", "SKP", "SOF", "OTP", "CLJ", "TSR",
		"DUB", "SNN", "ORK", "KEF", "TIV", "DBV", "SPU",
		"SVO", "DME", "LED", "SVX", "KZN", "ROV",
	},
	RegionOceania: {
		"SYD", "MEL", "BNE", "PER", "ADL", "OOL", "CNS", "CBR", "HBA", "DRW",
		"AKL", "CHC", "WLG", "ZQN", "DUD", "NAN", "PPT", "APW", "NOU", "GUM",
	},
	RegionMiddleEast: {
		"DXB", "AUH", "SHJ", "DOH", "BAH", "KWI", "MCT", "RUH", "JED", "DMM",
		"MED", "TLV", "AMM", "BEY", "BGW", "EBL", "THR", "IFN", "MHD", "SRY",
		"ISE", "TBZ", "AWZ",
	},
	RegionAfrica: {
		"JNB", "CPT", "DUR", "CAI", "HRG", "SSH", "LXR", "ALG", "TUN", "CMN",
		"RAK", "FEZ", "TNG", "LOS", "ABV", "ACC", "DSS", "ABJ",
		"NBO", "MBA", "DAR", "ZNZ", "EBB", "KGL", "ADD", "MPM", "LAD",
		"HRE", "LUN", "MRU", "TNR", "SEZ", "WDH", "GBE",
	},
}

// ---------------------------------------------------------------------------
// Region table
// ---------------------------------------------------------------------------

// RegionTable maps 3-letter IATA codes to regions. Built once by
// BuildRegionTable and immutable thereafter; safe for concurrent readers.
type RegionTable struct {
	byIATA map[string]Region
}

// BuildRegionTable constructs the region table in two layers: regions
// derived from the ICAO prefix of every code in the directory's IATA↔ICAO
// map, then the explicit override lists. Overrides are applied last and
// unconditionally, so a code present in both layers always gets its
// explicit assignment.
func BuildRegionTable(dir *Directory) *RegionTable {
	t := &RegionTable{byIATA: make(map[string]Region, 512)}

	for _, iata := range dir.KnownIATACodes() {
		icao, ok := dir.IATAToICAO(iata)
		if !ok || icao == "" {
			continue
		}
		if region, ok := icaoPrefixRegion[icao[0]]; ok {
			t.byIATA[iata] = region
		}
	}

	// Explicit assignments win over derived ones.
	for region, codes := range regionOverrides {
		for _, code := range codes {
			t.byIATA[code] = region
		}
	}
	return t
}

// Region returns the region of a 3-letter IATA code, or false if the code
// is unknown. Empty codes never classify.
func (t *RegionTable) Region(iata string) (Region, bool) {
	if iata == "" {
		return 0, false
	}
	r, ok := t.byIATA[iata]
	return r, ok
}

// Len returns the number of classified codes.
func (t *RegionTable) Len() int { return len(t.byIATA) }

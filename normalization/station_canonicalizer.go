package normalization

import "strings"

// stationAlias maps a lower-cased name prefix to the canonical station it
// belongs to. The list is the documented set of historical spelling variants
// found in the source registers; anything not listed is its own canonical
// form. Prefix matching absorbs trailing residue like "(Nagpur)" or the
// cell-reference artifacts Sanitize strips.
type stationAlias struct {
	prefix    string
	canonical string
}

var stationAliases = []stationAlias{
	// British Burma returns file Rangoon data under the country name.
	{"india (british burma)", "Rangoon"},
	// "Seetabuldee" is the 19th-century transliteration of Sitabaldi.
	{"seetabuldee", "Sitabaldi (Nagpur)"},
	{"sitabaldi", "Sitabaldi (Nagpur)"},
}

// stationDisplayNames maps canonical keys back to their preferred display
// spelling for names the alias table rewrites.
var stationDisplayNames = map[string]string{}

func init() {
	for _, alias := range stationAliases {
		stationDisplayNames[CanonicalStationName(alias.canonical)] = alias.canonical
	}
}

// CanonicalStationName reduces a raw station name to its canonical join key:
// sanitized, lower-cased, trimmed, with known historical aliases resolved.
// Idempotent, and case/whitespace-insensitive by construction.
func CanonicalStationName(rawName string) string {
	cleaned := strings.ToLower(sanitizeString(rawName))
	if cleaned == "" {
		return ""
	}

	for _, alias := range stationAliases {
		if strings.HasPrefix(cleaned, alias.prefix) {
			return strings.ToLower(alias.canonical)
		}
	}

	return cleaned
}

// StationDisplayName returns the preferred display spelling for a canonical
// key: the documented spelling for aliased stations, title case otherwise.
func StationDisplayName(canonical string) string {
	if canonical == "" {
		return ""
	}
	if display, ok := stationDisplayNames[canonical]; ok {
		return display
	}
	return titleCase(canonical)
}

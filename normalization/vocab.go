package normalization

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

func titleCase(value string) string {
	return titleCaser.String(strings.ToLower(value))
}

// StandardizeAct reduces free-text act citations to their canonical short
// form ("Act XIV of 1868 (Cantonment Act)" and "act xiv, 1868" both become
// "Act XIV of 1868"). Unrecognized non-empty values pass through title-cased.
func StandardizeAct(value string) *string {
	cleaned := sanitizeString(value)
	if cleaned == "" {
		return nil
	}

	lower := strings.ToLower(cleaned)
	var result string
	switch {
	case strings.Contains(lower, "xxii") && strings.Contains(lower, "1864"):
		result = "Act XXII of 1864"
	case strings.Contains(lower, "xiv") && strings.Contains(lower, "1868"):
		result = "Act XIV of 1868"
	case strings.Contains(lower, "xii") && strings.Contains(lower, "1864"):
		result = "Act XII of 1864"
	case strings.Contains(lower, "iii") && strings.Contains(lower, "1880"):
		result = "Act III of 1880"
	case strings.Contains(lower, "voluntary"):
		result = "Voluntary System"
	default:
		result = titleCase(cleaned)
	}
	return &result
}

// StandardizeClass maps hospital classification variants ("1st class",
// "First-class") to the canonical labels.
func StandardizeClass(value string) *string {
	cleaned := sanitizeString(value)
	if cleaned == "" {
		return nil
	}

	lower := strings.ToLower(cleaned)
	var result string
	switch {
	case strings.Contains(lower, "first") || strings.Contains(lower, "1st"):
		result = "First Class"
	case strings.Contains(lower, "second") || strings.Contains(lower, "2nd"):
		result = "Second Class"
	case strings.Contains(lower, "third") || strings.Contains(lower, "3rd"):
		result = "Third Class"
	case strings.Contains(lower, "military"):
		result = "Military"
	case strings.Contains(lower, "civil"):
		result = "Civil"
	default:
		result = titleCase(cleaned)
	}
	return &result
}

// StandardizeRegion maps administrative-region variants onto the canonical
// presidency and province names.
func StandardizeRegion(value string) *string {
	cleaned := sanitizeString(value)
	if cleaned == "" {
		return nil
	}

	lower := strings.ToLower(cleaned)
	var result string
	switch {
	case strings.Contains(lower, "madras"):
		result = "Madras Presidency"
	case strings.Contains(lower, "burma"):
		result = "Burma"
	case strings.Contains(lower, "punjab"):
		result = "Punjab"
	case strings.Contains(lower, "central provinces"):
		result = "Central Provinces"
	case strings.Contains(lower, "north-western provinces") || strings.Contains(lower, "oudh"):
		result = "North-Western Provinces & Oudh"
	default:
		result = titleCase(cleaned)
	}
	return &result
}

// StandardizeCountry maps country variants onto "British India" or
// "British Burma".
func StandardizeCountry(value string) *string {
	cleaned := sanitizeString(value)
	if cleaned == "" {
		return nil
	}

	lower := strings.ToLower(cleaned)
	var result string
	switch {
	case strings.Contains(lower, "british india"):
		result = "British India"
	case strings.Contains(lower, "burma"):
		result = "British Burma"
	default:
		result = titleCase(cleaned)
	}
	return &result
}

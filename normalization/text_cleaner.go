package normalization

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// Spreadsheet cell-reference residue left behind by the PDF extraction,
	// e.g. "India (British Burma)+G143".
	cellArtifactRegex = regexp.MustCompile(`\+[A-Z]{1,2}\d{1,4}\b`)

	// asciiFolder decomposes accented characters and drops the combining
	// marks, so "Meerút" becomes "Meerut".
	asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// placeholder values the source spreadsheets use for "no data".
var emptyPlaceholders = map[string]bool{
	"none": true,
	"nan":  true,
	"n/a":  true,
	"na":   true,
	"-":    true,
	"?":    true,
}

// Sanitize converts heterogeneous free text into a canonical ASCII-safe
// string: accents folded, control and non-ASCII characters dropped, the
// recurring cell-reference artifact removed, whitespace collapsed. Returns
// nil when nothing meaningful remains. Idempotent.
func Sanitize(text string) *string {
	cleaned := sanitizeString(text)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// sanitizeString is the string-in-string-out core of Sanitize; empty string
// stands for "no data".
func sanitizeString(text string) string {
	if text == "" {
		return ""
	}

	folded, _, err := transform.String(asciiFolder, text)
	if err == nil {
		text = folded
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r > unicode.MaxASCII || unicode.IsControl(r) {
			// Control characters and whatever survived folding are
			// replaced by a space so words do not fuse together.
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	cleaned := cellArtifactRegex.ReplaceAllString(b.String(), "")
	cleaned = whitespaceRegex.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if emptyPlaceholders[strings.ToLower(cleaned)] {
		return ""
	}

	return cleaned
}

package normalization

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

var tokenRegex = regexp.MustCompile(`[a-zA-Z]+`)

// negation terms that suppress a role mention when they appear within the
// window before it ("no surgeon", "post of matron vacant", "not appointed").
var negationTerms = map[string]bool{
	"no":      true,
	"not":     true,
	"without": true,
	"vacant":  true,
}

// stemToken lower-cases and stems one token so that "surgeons" and "surgeon"
// compare equal. Falls back to the lower-cased token when stemming fails.
func stemToken(token string) string {
	lower := strings.ToLower(token)
	stemmed, err := snowball.Stem(lower, "english", true)
	if err != nil {
		return lower
	}
	return stemmed
}

// CountRoleMentions counts occurrences of the given role terms in free text,
// subtracting mentions negated within the preceding token window. The result
// is floored at zero. Matching is stem-based, so plural and inflected forms
// of a role term still count.
func CountRoleMentions(text string, roleTerms []string, negationWindow int) int {
	cleaned := sanitizeString(text)
	if cleaned == "" || len(roleTerms) == 0 {
		return 0
	}
	if negationWindow < 0 {
		negationWindow = 0
	}

	roleStems := make(map[string]bool, len(roleTerms))
	for _, term := range roleTerms {
		for _, token := range tokenRegex.FindAllString(term, -1) {
			roleStems[stemToken(token)] = true
		}
	}

	tokens := tokenRegex.FindAllString(cleaned, -1)
	stems := make([]string, len(tokens))
	for i, token := range tokens {
		stems[i] = stemToken(token)
	}

	count := 0
	for i, stem := range stems {
		if !roleStems[stem] {
			continue
		}
		if negatedWithin(stems, i, negationWindow) {
			continue
		}
		count++
	}

	return count
}

// negatedWithin reports whether a negation term occurs in the window of
// tokens immediately before position i.
func negatedWithin(stems []string, i, window int) bool {
	start := i - window
	if start < 0 {
		start = 0
	}
	for j := start; j < i; j++ {
		if negationTerms[stems[j]] {
			return true
		}
	}
	return false
}

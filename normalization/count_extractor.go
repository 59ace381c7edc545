package normalization

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var (
	leadingIntRegex   = regexp.MustCompile(`-?\d+`)
	leadingFloatRegex = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

	keywordPatternCache   = make(map[string]*regexp.Regexp)
	keywordPatternCacheMu sync.Mutex
)

// ExtractCountNearKeyword finds a digit sequence immediately preceding the
// given keyword phrase ("14 absentees punished" with pattern
// `absentees? punished` yields 14) and returns it as an integer. Returns nil
// when the text contains no such match.
func ExtractCountNearKeyword(text, keywordPattern string) (*int, error) {
	if strings.TrimSpace(text) == "" || keywordPattern == "" {
		return nil, nil
	}

	re, err := compileKeywordPattern(keywordPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid keyword pattern %q: %w", keywordPattern, err)
	}

	matches := re.FindStringSubmatch(text)
	if len(matches) < 2 {
		return nil, nil
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, nil
	}
	return &value, nil
}

func compileKeywordPattern(keywordPattern string) (*regexp.Regexp, error) {
	keywordPatternCacheMu.Lock()
	defer keywordPatternCacheMu.Unlock()

	if re, ok := keywordPatternCache[keywordPattern]; ok {
		return re, nil
	}

	re, err := regexp.Compile(`(?i)(\d+)\s+(?:` + keywordPattern + `)`)
	if err != nil {
		return nil, err
	}
	keywordPatternCache[keywordPattern] = re
	return re, nil
}

// LooseInt extracts an integer from a loosely typed cell value: "14" and
// "3 MO" both yield the number, anything without digits yields nil. This is
// the best-effort coercion for numeric columns that arrive as prose.
func LooseInt(value string) *int {
	match := leadingIntRegex.FindString(value)
	if match == "" {
		return nil
	}
	parsed, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &parsed
}

// LooseFloat is LooseInt for real-valued columns (average strength, averages).
func LooseFloat(value string) *float64 {
	match := leadingFloatRegex.FindString(value)
	if match == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

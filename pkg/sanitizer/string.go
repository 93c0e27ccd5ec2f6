// Package sanitizer normalizes free-text input before validation and
// persistence.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace and collapses runs
// of internal whitespace into a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeTitle(title string) string {
	return TrimAndNormalize(title)
}

func NormalizeCity(city string) string {
	return TrimAndNormalize(city)
}

func NormalizeCountry(country string) string {
	return TrimAndNormalize(country)
}

// NormalizeFreeText keeps user-entered paragraphs (descriptions, special
// requests) but strips surrounding whitespace.
func NormalizeFreeText(s string) string {
	return strings.TrimSpace(s)
}

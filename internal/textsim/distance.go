package textsim

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Levenshtein returns the unit-cost edit distance between a and b.
// It is case-sensitive and symmetric.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	return edlib.LevenshteinDistance(a, b)
}

// Similarity returns 1 - distance/maxLen over the lowercased inputs.
// Two empty strings are identical (1.0).
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}

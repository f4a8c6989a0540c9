package textsim

import "strings"

// NGramSimilarity returns the Jaccard similarity of the n-gram sets of a and b.
// Inputs are lowercased and padded with one space on each side so word
// boundaries contribute grams. Returns 0 when either input is blank.
func NGramSimilarity(a, b string, n int) float64 {
	if n < 1 {
		n = 2
	}
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0.0
	}

	gramsA := ngrams(a, n)
	gramsB := ngrams(b, n)

	intersection := 0
	for g := range gramsA {
		if gramsB[g] {
			intersection++
		}
	}

	union := len(gramsA) + len(gramsB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// ngrams returns the set of n-rune substrings of the padded, lowercased input.
func ngrams(s string, n int) map[string]bool {
	runes := []rune(" " + strings.ToLower(s) + " ")
	grams := make(map[string]bool)

	if len(runes) < n {
		grams[string(runes)] = true
		return grams
	}
	for i := 0; i+n <= len(runes); i++ {
		grams[string(runes[i:i+n])] = true
	}
	return grams
}

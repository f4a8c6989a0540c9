/*
Package search implements the multi-signal fuzzy search engine.

An Engine scores every catalog item against a query with a lexical base
score and a fixed sequence of widening signals (abbreviations, synonyms,
phonetic codes, n-gram and concept similarity, session context). When
nothing matches it retries with typo-corrected queries. A bleve BM25
index is kept alongside as a keyword baseline for benchmarking.
*/
package search

import (
	"fmt"
	"strings"

	"github.com/khanglvm/quickfind/internal/catalog"
)

// MatchType is the tier a result was assigned.
type MatchType string

const (
	MatchExact      MatchType = "exact"
	MatchPartial    MatchType = "partial"
	MatchFuzzy      MatchType = "fuzzy"
	MatchSemantic   MatchType = "semantic"
	MatchPhonetic   MatchType = "phonetic"
	MatchContextual MatchType = "contextual"
	MatchSuggested  MatchType = "suggested"
)

// Match field names reported in Result.Matches.
const (
	FieldTitle    = "title"
	FieldCategory = "category"
	FieldSummary  = "summary"
	FieldTags     = "tags"
)

// Result is a scored catalog item.
type Result struct {
	Item        *catalog.Item `json:"item"`
	Score       float64       `json:"score"`
	Type        MatchType     `json:"type"`
	Matches     []string      `json:"matches,omitempty"`
	Explanation string        `json:"explanation,omitempty"`
}

// Explain turns a result into a sentence for display.
func Explain(r Result) string {
	var sentence string
	switch r.Type {
	case MatchExact:
		sentence = "Exact match"
	case MatchPartial:
		sentence = "Strong partial match"
	case MatchFuzzy:
		sentence = "Approximate match"
	case MatchPhonetic:
		sentence = "Sounds like your query"
	case MatchContextual:
		sentence = "Based on your recent activity"
	case MatchSuggested:
		sentence = "Result for a corrected spelling"
	default:
		sentence = "Related to your query"
	}

	if len(r.Matches) > 0 {
		sentence += fmt.Sprintf(" in %s", strings.Join(r.Matches, " and "))
	}
	sentence += fmt.Sprintf(" (%.0f%%)", r.Score*100)

	if r.Explanation != "" {
		sentence += ". " + r.Explanation
	}
	return sentence
}

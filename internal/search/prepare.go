package search

import (
	"strings"
	"unicode"

	"github.com/surgebase/porter2"

	"github.com/khanglvm/quickfind/internal/catalog"
)

// queryText is a normalized query.
type queryText struct {
	text  string
	words []string
	stems map[string]bool
}

func newQuery(q string) *queryText {
	text := strings.ToLower(strings.TrimSpace(q))
	return &queryText{
		text:  text,
		words: tokenize(text),
	}
}

func (q *queryText) stemSet() map[string]bool {
	if q.stems == nil {
		q.stems = stemSet(tokenize(q.text))
	}
	return q.stems
}

// references reports whether the query mentions term literally or by stem.
func (q *queryText) references(term string) bool {
	return strings.Contains(q.text, term) || containsStems(q.stemSet(), term)
}

// document caches the lowercased fields of one catalog item for a search call.
type document struct {
	item       *catalog.Item
	title      string
	category   string
	summary    string
	searchable string
	tags       []string
	text       string

	titleWords []string
	words      map[string]bool
	stems      map[string]bool
	phonetics  []phoneticCode
}

func newDocument(item *catalog.Item) *document {
	d := &document{
		item:       item,
		title:      strings.ToLower(item.Title),
		category:   strings.ToLower(item.Category),
		summary:    strings.ToLower(item.Summary),
		searchable: strings.ToLower(item.SearchableText),
		text:       item.Text(),
		tags:       make([]string, len(item.Tags)),
	}
	for i, tag := range item.Tags {
		d.tags[i] = strings.ToLower(tag)
	}
	d.titleWords = tokenize(d.title)
	return d
}

// wordSet returns every word of the item text.
func (d *document) wordSet() map[string]bool {
	if d.words == nil {
		words := tokenize(d.text)
		d.words = make(map[string]bool, len(words))
		for _, w := range words {
			d.words[w] = true
		}
	}
	return d.words
}

func (d *document) stemSet() map[string]bool {
	if d.stems == nil {
		d.stems = stemSet(tokenize(d.text))
	}
	return d.stems
}

// references reports whether the item text mentions term literally or by stem.
func (d *document) references(term string) bool {
	return strings.Contains(d.text, term) || containsStems(d.stemSet(), term)
}

// describes reports whether title, category or summary mention term.
func (d *document) describes(term string) bool {
	return strings.Contains(d.title, term) ||
		strings.Contains(d.category, term) ||
		strings.Contains(d.summary, term)
}

// tokenize splits s on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func stemSet(words []string) map[string]bool {
	stems := make(map[string]bool, len(words))
	for _, w := range words {
		stems[porter2.Stem(w)] = true
	}
	return stems
}

// containsStems reports whether every word of term has its stem in stems.
func containsStems(stems map[string]bool, term string) bool {
	words := tokenize(term)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !stems[porter2.Stem(w)] {
			return false
		}
	}
	return true
}

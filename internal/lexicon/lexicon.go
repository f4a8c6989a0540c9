/*
Package lexicon holds the static vocabulary tables that widen matching beyond
literal substrings: abbreviations, synonyms, domain jargon and concept pairs.

Tables are plain data. Default returns the built-in set; LoadFile merges a
user-supplied TOML file on top of it.
*/
package lexicon

import (
	"sort"
	"strings"
)

// ConceptPair links two terms that tend to co-occur in the same topic.
type ConceptPair struct {
	A string
	B string
}

// Lexicon is a set of lookup tables. All keys and values are lowercase.
type Lexicon struct {
	// Abbreviations maps an acronym to its expansions.
	Abbreviations map[string][]string

	// Synonyms maps a word to interchangeable words.
	Synonyms map[string][]string

	// Jargon maps a domain term to related vocabulary.
	Jargon map[string][]string

	// Concepts lists co-occurring term pairs.
	Concepts []ConceptPair
}

// New returns an empty lexicon with initialized maps.
func New() *Lexicon {
	return &Lexicon{
		Abbreviations: make(map[string][]string),
		Synonyms:      make(map[string][]string),
		Jargon:        make(map[string][]string),
	}
}

// Expansions returns the expansions of an abbreviation.
func (l *Lexicon) Expansions(abbr string) []string {
	return l.Abbreviations[strings.ToLower(abbr)]
}

// SynonymsOf returns the synonyms of a word.
func (l *Lexicon) SynonymsOf(word string) []string {
	return l.Synonyms[strings.ToLower(word)]
}

// JargonTerms returns the jargon keys in sorted order.
func (l *Lexicon) JargonTerms() []string {
	return sortedKeys(l.Jargon)
}

// AbbreviationKeys returns the abbreviation keys in sorted order.
func (l *Lexicon) AbbreviationKeys() []string {
	return sortedKeys(l.Abbreviations)
}

// AddAbbreviation registers expansions for an abbreviation.
func (l *Lexicon) AddAbbreviation(abbr string, expansions ...string) {
	key := normalize(abbr)
	if key == "" {
		return
	}
	l.Abbreviations[key] = appendUnique(l.Abbreviations[key], expansions...)
}

// AddSynonyms registers a group of mutually interchangeable words.
func (l *Lexicon) AddSynonyms(group ...string) {
	for _, word := range group {
		key := normalize(word)
		if key == "" {
			continue
		}
		for _, other := range group {
			if normalize(other) != key {
				l.Synonyms[key] = appendUnique(l.Synonyms[key], other)
			}
		}
	}
}

// AddJargon registers related vocabulary for a domain term.
func (l *Lexicon) AddJargon(term string, related ...string) {
	key := normalize(term)
	if key == "" {
		return
	}
	l.Jargon[key] = appendUnique(l.Jargon[key], related...)
}

// AddConcept registers a concept pair unless it is already present in either order.
func (l *Lexicon) AddConcept(a, b string) {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" || a == b {
		return
	}
	for _, p := range l.Concepts {
		if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
			return
		}
	}
	l.Concepts = append(l.Concepts, ConceptPair{A: a, B: b})
}

// Merge copies every entry of other into l.
func (l *Lexicon) Merge(other *Lexicon) {
	if other == nil {
		return
	}
	for abbr, expansions := range other.Abbreviations {
		l.AddAbbreviation(abbr, expansions...)
	}
	for word, syns := range other.Synonyms {
		key := normalize(word)
		if key == "" {
			continue
		}
		l.Synonyms[key] = appendUnique(l.Synonyms[key], syns...)
	}
	for term, related := range other.Jargon {
		l.AddJargon(term, related...)
	}
	for _, p := range other.Concepts {
		l.AddConcept(p.A, p.B)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		v = normalize(v)
		if v == "" {
			continue
		}
		dup := false
		for _, existing := range dst {
			if existing == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

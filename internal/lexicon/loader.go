package lexicon

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// fileFormat is the on-disk TOML layout of a lexicon override file:
//
//	concepts = [["sort", "order"], ["tree", "node"]]
//
//	[abbreviations]
//	dfs = ["depth first search"]
//
//	[synonyms]
//	fast = ["quick", "rapid"]
//
//	[jargon]
//	graph = ["vertex", "edge"]
type fileFormat struct {
	Concepts      [][]string          `toml:"concepts"`
	Abbreviations map[string][]string `toml:"abbreviations"`
	Synonyms      map[string][]string `toml:"synonyms"`
	Jargon        map[string][]string `toml:"jargon"`
}

// Parse decodes a TOML lexicon document. Synonym entries are treated as groups,
// so `fast = ["quick"]` also makes "quick" a synonym of "fast".
func Parse(data []byte) (*Lexicon, error) {
	var f fileFormat
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}

	l := New()
	for abbr, expansions := range f.Abbreviations {
		l.AddAbbreviation(abbr, expansions...)
	}
	for word, syns := range f.Synonyms {
		l.AddSynonyms(append([]string{word}, syns...)...)
	}
	for term, related := range f.Jargon {
		l.AddJargon(term, related...)
	}
	for i, pair := range f.Concepts {
		if len(pair) != 2 {
			return nil, fmt.Errorf("concept %d: expected 2 terms, got %d", i, len(pair))
		}
		l.AddConcept(pair[0], pair[1])
	}
	return l, nil
}

// LoadFile reads a TOML lexicon and merges it over the built-in defaults.
// An empty path returns the defaults unchanged.
func LoadFile(path string) (*Lexicon, error) {
	l := Default()
	if path == "" {
		return l, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}

	override, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.Merge(override)
	return l, nil
}

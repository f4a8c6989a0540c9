package search

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/khanglvm/quickfind/internal/lexicon"
	"github.com/khanglvm/quickfind/internal/textsim"
)

const (
	exactScore    = 1.0
	prefixScore   = 0.9
	containsScore = 0.7

	fuzzyWeight       = 0.6
	shortCircuitBelow = 0.3
	categoryBonus     = 0.4
	summaryBonus      = 0.2
	tagBonus          = 0.3
	searchableBonus   = 0.1
	lengthBoost       = 0.2

	jargonHit    = 0.4
	jargonCap    = 0.8
	abbrForward  = 0.6
	abbrReverse  = 0.5
	abbrCap      = 0.8
	synonymHit   = 0.3
	synonymCap   = 0.6
	soundexHit   = 0.4
	metaphoneHit = 0.5
	phoneticCap  = 0.7
	conceptHit   = 0.2
	semanticCap  = 0.8

	minWordLen     = 3
	minPhoneticLen = 3
)

// scorer computes the individual match signals. It only reads the lexicon.
type scorer struct {
	lex         *lexicon.Lexicon
	jargonTerms []string
	abbrevKeys  []string
}

func newScorer(lex *lexicon.Lexicon) *scorer {
	return &scorer{
		lex:         lex,
		jargonTerms: lex.JargonTerms(),
		abbrevKeys:  lex.AbbreviationKeys(),
	}
}

// lexical is the tiered base score over the item's literal fields.
func (s *scorer) lexical(q *queryText, d *document, fuzzyThreshold float64) float64 {
	if q.text == d.title {
		return exactScore
	}
	if strings.HasPrefix(d.title, q.text) {
		return prefixScore
	}

	score := 0.0
	if strings.Contains(d.title, q.text) {
		score = containsScore
	} else {
		sim := textsim.Similarity(q.text, d.title)
		if sim >= fuzzyThreshold {
			score += sim * fuzzyWeight
		}
		if sim < shortCircuitBelow {
			flex := s.wordOrder(q, d)
			jargon := s.jargon(q, d)
			if flex == 0 && jargon == 0 {
				return 0
			}
			score += flex + jargon
		}
	}

	if d.category != "" && strings.Contains(d.category, q.text) {
		score += categoryBonus
	}

	qLen := utf8.RuneCountInString(q.text)
	if score > shortCircuitBelow || qLen <= 3 {
		if strings.Contains(d.summary, q.text) {
			score += summaryBonus
		}
		for _, tag := range d.tags {
			if strings.Contains(tag, q.text) {
				score += tagBonus
				break
			}
		}
		if score < 0.5 && strings.Contains(d.searchable, q.text) {
			score += searchableBonus
		}
	}

	if tLen := utf8.RuneCountInString(d.title); tLen > 0 {
		score *= 1 + lengthBoost*math.Min(1, float64(qLen)/float64(tLen))
	}
	return clamp01(score)
}

// wordOrder scores multi-word queries whose words appear in any order.
func (s *scorer) wordOrder(q *queryText, d *document) float64 {
	if len(q.words) < 2 {
		return 0
	}

	titleWords := make(map[string]bool, len(d.titleWords))
	for _, w := range d.titleWords {
		titleWords[w] = true
	}
	otherWords := make(map[string]bool)
	for _, w := range tokenize(d.category + " " + d.summary) {
		otherWords[w] = true
	}

	var n, matched, inTitle, exact int
	for _, w := range q.words {
		if len(w) < minWordLen {
			continue
		}
		n++
		switch {
		case titleWords[w]:
			matched++
			inTitle++
			exact++
		case strings.Contains(d.title, w):
			matched++
			inTitle++
		case otherWords[w]:
			matched++
			exact++
		case strings.Contains(d.category, w) || strings.Contains(d.summary, w):
			matched++
		}
	}
	if n == 0 || matched == 0 {
		return 0
	}

	total := float64(n)
	return 0.5*float64(matched)/total + 0.3*float64(inTitle)/total + 0.2*float64(exact)/total
}

// jargon scores domain terms in the query whose related vocabulary describes the item.
func (s *scorer) jargon(q *queryText, d *document) float64 {
	hits := 0
	for _, term := range s.jargonTerms {
		if !strings.Contains(q.text, term) {
			continue
		}
		for _, related := range s.lex.Jargon[term] {
			if d.describes(related) {
				hits++
				break
			}
		}
	}
	return math.Min(float64(hits)*jargonHit, jargonCap)
}

// abbreviation scores acronym expansions in either direction.
func (s *scorer) abbreviation(q *queryText, d *document) float64 {
	score := 0.0

	candidates := append([]string{q.text}, q.words...)
forward:
	for _, c := range candidates {
		for _, exp := range s.lex.Abbreviations[c] {
			if strings.Contains(d.text, exp) {
				score += abbrForward
				break forward
			}
		}
	}

	words := d.wordSet()
reverse:
	for _, abbr := range s.abbrevKeys {
		if !words[abbr] {
			continue
		}
		for _, exp := range s.lex.Abbreviations[abbr] {
			if strings.Contains(q.text, exp) {
				score += abbrReverse
				break reverse
			}
		}
	}

	return math.Min(score, abbrCap)
}

// synonym counts query words that have a synonym in the item text.
func (s *scorer) synonym(q *queryText, d *document) float64 {
	hits := 0
	for _, w := range q.words {
		for _, syn := range s.lex.SynonymsOf(w) {
			if d.references(syn) {
				hits++
				break
			}
		}
	}
	return math.Min(float64(hits)*synonymHit, synonymCap)
}

type phoneticCode struct {
	soundex   string
	primary   string
	secondary string
}

func encode(word string) phoneticCode {
	p, s := textsim.DoubleMetaphone(word)
	return phoneticCode{soundex: textsim.Soundex(word), primary: p, secondary: s}
}

func (c phoneticCode) metaphoneMatches(o phoneticCode) bool {
	return sameCode(c.primary, o.primary) ||
		sameCode(c.primary, o.secondary) ||
		sameCode(c.secondary, o.primary) ||
		sameCode(c.secondary, o.secondary)
}

func sameCode(a, b string) bool {
	return a != "" && a == b
}

func (d *document) phoneticCodes() []phoneticCode {
	if d.phonetics == nil {
		d.phonetics = make([]phoneticCode, 0, len(d.titleWords))
		for _, w := range d.titleWords {
			if utf8.RuneCountInString(w) >= minPhoneticLen {
				d.phonetics = append(d.phonetics, encode(w))
			}
		}
	}
	return d.phonetics
}

// phonetic compares sound codes of query and title words.
func (s *scorer) phonetic(q *queryText, d *document) float64 {
	titleCodes := d.phoneticCodes()
	if len(titleCodes) == 0 {
		return 0
	}

	score := 0.0
	for _, w := range q.words {
		if utf8.RuneCountInString(w) < minPhoneticLen {
			continue
		}
		qc := encode(w)
		for _, tc := range titleCodes {
			if sameCode(qc.soundex, tc.soundex) {
				score += soundexHit
			}
			if qc.metaphoneMatches(tc) {
				score += metaphoneHit
			}
			if score >= phoneticCap {
				return phoneticCap
			}
		}
	}
	return score
}

// semantic combines n-gram overlap with concept pairs spanning query and item.
func (s *scorer) semantic(q *queryText, d *document) float64 {
	score := 0.4*textsim.NGramSimilarity(q.text, d.title, 2) +
		0.2*textsim.NGramSimilarity(q.text, d.summary, 2)

	for _, pair := range s.lex.Concepts {
		if (q.references(pair.A) && d.references(pair.B)) ||
			(q.references(pair.B) && d.references(pair.A)) {
			score += conceptHit
		}
		if score >= semanticCap {
			return semanticCap
		}
	}
	return score
}

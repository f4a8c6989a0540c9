package textsim

import "strings"

const metaphoneLen = 4

// DoubleMetaphone returns a primary and secondary phonetic code for word.
//
// This is a simplified encoder, not the published Double Metaphone algorithm.
// It applies a small set of per-letter rules (CH/SH/TH/PH digraphs, silent GH,
// soft C and G, H kept only before a vowel) and produces codes of at most four
// characters. The secondary code differs from the primary only where a rule
// has an alternate reading (CH as K, TH as T, soft G as K).
func DoubleMetaphone(word string) (string, string) {
	w := asciiLetters(word)
	if len(w) == 0 {
		return "", ""
	}

	e := &metaphoneEncoder{word: w}
	i := 0

	if len(w) >= 2 {
		switch string(w[:2]) {
		case "GN", "KN", "PN", "WR", "PS":
			i = 1
		}
	}
	if w[0] == 'X' {
		e.add("S", "S")
		i = 1
	}

	for i < len(w) && !e.full() {
		c := w[i]
		if i > 0 && c == w[i-1] {
			i++
			continue
		}
		i += e.encode(i, c)
	}

	return e.codes()
}

type metaphoneEncoder struct {
	word      []rune
	primary   strings.Builder
	secondary strings.Builder
}

func (e *metaphoneEncoder) add(primary, secondary string) {
	e.primary.WriteString(primary)
	e.secondary.WriteString(secondary)
}

func (e *metaphoneEncoder) full() bool {
	return e.primary.Len() >= metaphoneLen && e.secondary.Len() >= metaphoneLen
}

func (e *metaphoneEncoder) codes() (string, string) {
	return truncate(e.primary.String()), truncate(e.secondary.String())
}

// at returns the letter at i, or 0 outside the word.
func (e *metaphoneEncoder) at(i int) rune {
	if i < 0 || i >= len(e.word) {
		return 0
	}
	return e.word[i]
}

// encode emits the code for the letter at i and returns how many letters it consumed.
func (e *metaphoneEncoder) encode(i int, c rune) int {
	next := e.at(i + 1)

	switch c {
	case 'A', 'E', 'I', 'O', 'U':
		if i == 0 {
			e.add("A", "A")
		}
	case 'B':
		e.add("P", "P")
	case 'C':
		switch {
		case next == 'H':
			e.add("X", "K")
			return 2
		case next == 'K':
			e.add("K", "K")
			return 2
		case isFrontVowel(next):
			e.add("S", "S")
		default:
			e.add("K", "K")
		}
	case 'D':
		if next == 'G' && isFrontVowel(e.at(i+2)) {
			e.add("J", "J")
			return 2
		}
		e.add("T", "T")
	case 'F', 'V':
		e.add("F", "F")
	case 'G':
		switch {
		case next == 'H':
			if !isVowel(e.at(i + 2)) {
				return 2
			}
			e.add("K", "K")
			return 2
		case next == 'N' && i+2 == len(e.word):
			return 2
		case isFrontVowel(next):
			e.add("J", "K")
		default:
			e.add("K", "K")
		}
	case 'H':
		if isVowel(next) && (i == 0 || isVowel(e.at(i-1))) {
			e.add("H", "H")
		}
	case 'J':
		e.add("J", "J")
	case 'K', 'Q':
		e.add("K", "K")
	case 'L', 'M', 'N', 'R':
		e.add(string(c), string(c))
	case 'P':
		if next == 'H' {
			e.add("F", "F")
			return 2
		}
		e.add("P", "P")
	case 'S':
		if next == 'H' {
			e.add("X", "X")
			return 2
		}
		e.add("S", "S")
	case 'T':
		if next == 'H' {
			e.add("0", "T")
			return 2
		}
		e.add("T", "T")
	case 'W', 'Y':
		if isVowel(next) {
			e.add(string(c), string(c))
		}
	case 'X':
		e.add("KS", "KS")
	case 'Z':
		e.add("S", "S")
	}
	return 1
}

func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U', 'Y':
		return true
	}
	return false
}

func isFrontVowel(r rune) bool {
	return r == 'E' || r == 'I' || r == 'Y'
}

func truncate(code string) string {
	if len(code) > metaphoneLen {
		return code[:metaphoneLen]
	}
	return code
}

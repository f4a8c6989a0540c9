package textsim

import "strings"

// soundexCodes maps consonants to their Soundex digit class.
// Letters absent from the table (vowels, H, W, Y) carry no code.
var soundexCodes = map[rune]byte{
	'B': '1', 'F': '1', 'P': '1', 'V': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// Soundex returns the 4-character Soundex code of word, or "" when word
// contains no ASCII letters.
//
// Adjacent letters with the same code collapse into one digit. H and W do not
// separate duplicates; vowels do.
func Soundex(word string) string {
	letters := asciiLetters(word)
	if len(letters) == 0 {
		return ""
	}

	code := []byte{byte(letters[0])}
	last := soundexCodes[letters[0]]

	for _, r := range letters[1:] {
		if len(code) == 4 {
			break
		}
		digit, ok := soundexCodes[r]
		switch {
		case ok && digit != last:
			code = append(code, digit)
			last = digit
		case !ok && r != 'H' && r != 'W':
			last = 0
		}
	}

	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

// asciiLetters returns the upper-cased A-Z letters of s, dropping everything else.
func asciiLetters(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			out = append(out, r)
		}
	}
	return out
}

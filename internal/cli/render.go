package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/khanglvm/quickfind/internal/search"
	"github.com/mattn/go-isatty"
)

const (
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// renderer formats results, emphasising matched text on terminals.
type renderer struct {
	w       io.Writer
	color   bool
	explain bool
}

func newRenderer(w io.Writer, explain bool) *renderer {
	return &renderer{w: w, color: useColor(w), explain: explain}
}

// useColor reports whether w is a terminal and NO_COLOR is unset.
func useColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// results prints a numbered result list.
func (r *renderer) results(query string, results []search.Result) {
	for i, res := range results {
		title := res.Item.Title
		if r.color {
			title = highlight(title, query, ansiBold, ansiReset)
		}

		fmt.Fprintf(r.w, "%2d. %s", i+1, title)
		if res.Item.Category != "" {
			fmt.Fprintf(r.w, "  [%s]", res.Item.Category)
		}
		fmt.Fprintf(r.w, "  %.2f %s\n", res.Score, res.Type)

		if r.explain {
			line := search.Explain(res)
			if r.color {
				line = ansiDim + line + ansiReset
			}
			fmt.Fprintf(r.w, "    %s\n", line)
		}
	}
}

// highlight wraps every case-insensitive occurrence of a query word of two
// or more letters in open and close. Overlapping occurrences are merged.
func highlight(text, query, open, close string) string {
	runes := []rune(text)
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}

	type span struct{ start, end int }
	var spans []span
	for _, word := range strings.Fields(strings.ToLower(query)) {
		term := []rune(word)
		if len(term) < 2 {
			continue
		}
		for i := 0; i+len(term) <= len(lower); i++ {
			if string(lower[i:i+len(term)]) == word {
				spans = append(spans, span{i, i + len(term)})
			}
		}
	}
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	var b strings.Builder
	pos := 0
	for _, s := range merged {
		b.WriteString(string(runes[pos:s.start]))
		b.WriteString(open)
		b.WriteString(string(runes[s.start:s.end]))
		b.WriteString(close)
		pos = s.end
	}
	b.WriteString(string(runes[pos:]))
	return b.String()
}

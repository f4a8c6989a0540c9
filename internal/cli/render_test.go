package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/search"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{"single word", "Binary Search", "binary", "[Binary] Search"},
		{"case insensitive", "Binary Search", "SEARCH", "Binary [Search]"},
		{"two words", "Merge Sort", "merge sort", "[Merge] [Sort]"},
		{"repeated", "Sort and sort", "sort", "[Sort] and [sort]"},
		{"overlapping merged", "Bubble", "bub bble", "[Bubble]"},
		{"partial word", "Dijkstra's Algorithm", "algo", "Dijkstra's [Algo]rithm"},
		{"single letters skipped", "A Stack", "a", "A Stack"},
		{"no match", "Stack", "queue", "Stack"},
		{"empty query", "Stack", "", "Stack"},
		{"unicode", "Äpfel Sort", "äpfel", "[Äpfel] Sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := highlight(tt.text, tt.query, "[", "]"); got != tt.want {
				t.Errorf("highlight(%q, %q) = %q, want %q", tt.text, tt.query, got, tt.want)
			}
		})
	}
}

func TestUseColorNonTerminal(t *testing.T) {
	if useColor(new(bytes.Buffer)) {
		t.Error("buffers are never terminals")
	}
}

func TestRendererResults(t *testing.T) {
	item := &catalog.Item{ID: "stack", Title: "Stack", Category: "Data Structures"}
	results := []search.Result{{Item: item, Score: 1, Type: search.MatchExact, Matches: []string{"title"}}}

	buf := new(bytes.Buffer)
	newRenderer(buf, true).results("stack", results)

	out := buf.String()
	if !strings.HasPrefix(out, " 1. Stack  [Data Structures]  1.00 exact\n") {
		t.Errorf("unexpected line:\n%s", out)
	}
	if !strings.Contains(out, "    Exact match in title") {
		t.Errorf("missing explanation:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("no escape codes expected for non-terminal output")
	}
}

package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/lexicon"
)

// testCatalog is a small algorithms catalog shared by the search tests.
func testCatalog() []catalog.Item {
	return []catalog.Item{
		{ID: "bubble", Title: "Bubble Sort", Category: "Sorting", Tags: []string{"comparison", "stable"},
			Summary: "Repeatedly swaps adjacent elements that are out of order."},
		{ID: "quick", Title: "Quick Sort", Category: "Sorting", Tags: []string{"divide and conquer"},
			Summary: "Partitions around a pivot and sorts each side."},
		{ID: "merge", Title: "Merge Sort", Category: "Sorting", Tags: []string{"divide and conquer", "stable"},
			Summary: "Splits the array in halves and merges sorted halves."},
		{ID: "binary", Title: "Binary Search", Category: "Searching", Tags: []string{"logarithmic"},
			Summary: "Halves a sorted range until the key is found."},
		{ID: "dfs", Title: "Depth First Search", Category: "Graphs", Tags: []string{"traversal"},
			Summary: "Explores as far as possible along each branch before backtracking."},
		{ID: "bfs", Title: "Breadth First Search", Category: "Graphs", Tags: []string{"traversal"},
			Summary: "Visits neighbours level by level using a queue."},
		{ID: "dijkstra", Title: "Dijkstra's Algorithm", Category: "Graphs", Tags: []string{"weighted"},
			Summary: "Computes shortest paths from a source vertex."},
		{ID: "stack", Title: "Stack", Category: "Data Structures", Tags: []string{"lifo"},
			Summary: "Push and pop at one end.", SearchableText: "call stack undo history"},
		{ID: "heap", Title: "Min Heap", Category: "Data Structures", Tags: []string{"priority queue"},
			Summary: "Complete tree where each node orders before its children."},
		{ID: "hash", Title: "Hash Table", Category: "Data Structures", Tags: []string{"dictionary"},
			Summary: "Maps keys to buckets for constant time lookup."},
	}
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	engine, err := NewEngine(lexicon.Default(), opts...)
	require.NoError(t, err)
	return engine
}

func lexiconOrDie(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	return lexicon.Default()
}

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanglvm/quickfind/internal/catalog"
)

func words(s []suggestion) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.word
	}
	return out
}

func TestBuildVocabulary(t *testing.T) {
	items := []catalog.Item{
		{ID: "1", Title: "Bubble Sort", Category: "Sorting", Tags: []string{"In Place"},
			Summary: "ignored summary", SearchableText: "Swap Neighbours"},
	}

	vocab := buildVocabulary(items)

	for _, w := range []string{"bubble sort", "bubble", "sort", "sorting", "in place", "in", "place", "swap", "neighbours"} {
		assert.Contains(t, vocab, w)
	}
	assert.NotContains(t, vocab, "swap neighbours", "searchable text is only split")
	assert.NotContains(t, vocab, "ignored")
	assert.IsIncreasing(t, vocab)
}

func TestSuggest(t *testing.T) {
	vocab := []string{"bubble", "bubbles", "rubble", "bub", "sort", "bubbel"}

	got := suggest("bubbel", vocab, 2)
	require.NotEmpty(t, got)
	// rubble is three edits away; bub is too short; bubbel is the query itself.
	assert.Equal(t, []string{"bubbles", "bubble"}, words(got))
	assert.InDelta(t, 1-2.0/7.0, got[0].score, 1e-9)
	assert.InDelta(t, 1-2.0/6.0, got[1].score, 1e-9)

	assert.Empty(t, suggest("xyz123qqq", vocab, 2))
	assert.Empty(t, suggest("  ", vocab, 2))
}

func TestSuggestLengthRule(t *testing.T) {
	// "bub" is within distance 3 of "bubble" but too short to be a correction.
	assert.Empty(t, suggest("bubble", []string{"bub"}, 3))
	assert.Equal(t, []string{"bubbl"}, words(suggest("bubble", []string{"bubbl"}, 2)))
}

func TestSuggestTieBreak(t *testing.T) {
	got := suggest("cat", []string{"cot", "bat", "cab", "hat"}, 1)
	assert.Equal(t, []string{"bat", "cab", "cot"}, words(got))
}

func TestVocabCache(t *testing.T) {
	cache := newVocabCache(2)
	a := []catalog.Item{{ID: "a", Title: "Alpha"}}
	b := []catalog.Item{{ID: "b", Title: "Beta"}}
	c := []catalog.Item{{ID: "c", Title: "Gamma"}}

	assert.Equal(t, []string{"alpha"}, cache.vocabulary(a))
	cache.vocabulary(b)
	cache.vocabulary(a)
	cache.vocabulary(c)

	assert.Equal(t, 2, cache.len())
	_, hasA := cache.entries[fingerprint(a)]
	_, hasB := cache.entries[fingerprint(b)]
	assert.True(t, hasA, "recently used entry survives")
	assert.False(t, hasB, "least recently used entry is evicted")
}

func TestFingerprint(t *testing.T) {
	a := []catalog.Item{{ID: "1", Title: "Stack", Tags: []string{"lifo"}}}
	b := []catalog.Item{{ID: "1", Title: "Stack", Tags: []string{"fifo"}}}
	c := []catalog.Item{{ID: "1", Title: "Stack", Tags: []string{"lifo"}, Summary: "summary is not part of the vocabulary"}}

	assert.NotEqual(t, fingerprint(a), fingerprint(b))
	assert.Equal(t, fingerprint(a), fingerprint(c))
}

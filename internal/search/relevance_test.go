package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/learning"
	"github.com/khanglvm/quickfind/internal/lexicon"
)

func gainsFor(values map[string]float64) []float64 {
	gains := make([]float64, len(stages))
	for i, st := range stages {
		gains[i] = values[st.family]
	}
	return gains
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		gains    map[string]float64
		wantType MatchType
		wantExpl string
	}{
		{name: "exact", score: 0.95, wantType: MatchExact},
		{name: "partial", score: 0.6, wantType: MatchPartial},
		{name: "fuzzy", score: 0.45, wantType: MatchFuzzy},
		{
			name:     "partial via abbreviation",
			score:    0.61,
			gains:    map[string]float64{familyAbbreviation: 0.6, familySemantic: 0.01},
			wantType: MatchPartial,
			wantExpl: "Matched via advanced matching: abbreviation, semantic",
		},
		{
			name:     "phonetic dominates",
			score:    0.35,
			gains:    map[string]float64{familyPhonetic: 0.3, familySemantic: 0.05},
			wantType: MatchPhonetic,
			wantExpl: "Matched via advanced matching: phonetic, semantic",
		},
		{
			name:     "contextual dominates",
			score:    0.15,
			gains:    map[string]float64{familyContextual: 0.15},
			wantType: MatchContextual,
			wantExpl: "Matched via advanced matching: contextual",
		},
		{
			name:     "synonym falls back to semantic",
			score:    0.3,
			gains:    map[string]float64{familySynonym: 0.3},
			wantType: MatchSemantic,
			wantExpl: "Matched via advanced matching: synonym",
		},
		{name: "no gains", score: 0.2, wantType: MatchSemantic, wantExpl: "Matched via lexical similarity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, expl := fusion{score: tt.score, gains: gainsFor(tt.gains)}.classify()
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.wantExpl, expl)
		})
	}
}

func TestFuseStages(t *testing.T) {
	s := newScorer(lexicon.Default())
	opts := DefaultOptions()

	in := &scoreInput{
		q:    newQuery("dfs"),
		d:    doc(catalog.Item{ID: "dfs", Title: "Depth First Search"}),
		opts: &opts,
	}
	f := s.fuse(in)
	assert.GreaterOrEqual(t, f.score, 0.6)
	assert.InDelta(t, 0.6, f.gains[0], 1e-9, "abbreviation is the first stage")

	opts.EnableAbbreviations = false
	f = s.fuse(in)
	assert.Less(t, f.score, 0.2, "disabled stages contribute nothing")
	assert.Zero(t, f.gains[0])
}

func TestFuseContextual(t *testing.T) {
	s := newScorer(lexicon.Default())
	opts := DefaultOptions()
	item := catalog.Item{ID: "stack", Title: "Stack", Category: "Data Structures"}

	session := learning.NewSession()
	session.RecordInteraction("anything", &item)

	in := &scoreInput{q: newQuery("zzzz"), d: doc(item), session: session, opts: &opts}
	f := s.fuse(in)
	assert.InDelta(t, 0.15, f.score, 1e-9)

	opts.EnableContextual = false
	assert.Zero(t, s.fuse(in).score)
}

func TestFuseClamps(t *testing.T) {
	s := newScorer(lexicon.Default())
	opts := DefaultOptions()
	item := catalog.Item{ID: "1", Title: "Bubble Sort", Category: "Sorting"}

	session := learning.NewSession()
	for i := 0; i < 10; i++ {
		session.RecordInteraction("bubble", &item)
	}

	f := s.fuse(&scoreInput{q: newQuery("bubble sort"), d: doc(item), session: session, opts: &opts})
	assert.Equal(t, 1.0, f.score)
}

func TestMatchFields(t *testing.T) {
	d := doc(catalog.Item{
		Title:    "Bubble Sort",
		Category: "Sorting",
		Summary:  "swaps neighbours",
		Tags:     []string{"stable"},
	})

	assert.Equal(t, []string{FieldTitle, FieldCategory}, matchFields(newQuery("sort"), d))
	assert.Equal(t, []string{FieldSummary, FieldTags}, matchFields(newQuery("swaps stable"), d))
	assert.Empty(t, matchFields(newQuery("heap"), d))
}

package search

import (
	"math"
	"strings"

	"github.com/khanglvm/quickfind/internal/learning"
)

// Signal families reported in explanations.
const (
	familyAbbreviation = "abbreviation"
	familySynonym      = "synonym"
	familyPhonetic     = "phonetic"
	familySemantic     = "semantic"
	familyContextual   = "contextual"
)

// scoreInput is everything a stage may look at for one item.
type scoreInput struct {
	q       *queryText
	d       *document
	session *learning.Session
	opts    *Options
}

// stage widens the running score with one signal family. A stage runs only
// when it is enabled and its guard accepts the current score.
type stage struct {
	family  string
	enabled func(o *Options) bool
	guard   func(score float64) bool
	apply   func(s *scorer, score float64, in *scoreInput) float64
}

func below(limit float64) func(float64) bool {
	return func(score float64) bool { return score < limit }
}

func always(float64) bool { return true }

// stages run in order after the lexical base score.
var stages = []stage{
	{
		family:  familyAbbreviation,
		enabled: func(o *Options) bool { return o.EnableAbbreviations },
		guard:   below(0.8),
		apply: func(s *scorer, score float64, in *scoreInput) float64 {
			return math.Max(score, s.abbreviation(in.q, in.d))
		},
	},
	{
		family:  familySynonym,
		enabled: func(o *Options) bool { return o.EnableSynonyms },
		guard:   below(0.7),
		apply: func(s *scorer, score float64, in *scoreInput) float64 {
			return score + 0.5*s.synonym(in.q, in.d)
		},
	},
	{
		family:  familyPhonetic,
		enabled: func(o *Options) bool { return o.EnablePhonetic },
		guard:   below(0.6),
		apply: func(s *scorer, score float64, in *scoreInput) float64 {
			return math.Max(score, 0.8*s.phonetic(in.q, in.d))
		},
	},
	{
		family:  familySemantic,
		enabled: func(o *Options) bool { return o.EnableSemantic },
		guard:   below(0.7),
		apply: func(s *scorer, score float64, in *scoreInput) float64 {
			return score + 0.6*s.semantic(in.q, in.d)
		},
	},
	{
		family:  familyContextual,
		enabled: func(o *Options) bool { return o.EnableContextual },
		guard:   always,
		apply: func(_ *scorer, score float64, in *scoreInput) float64 {
			return score + in.session.ContextualScore(in.q.text, in.d.item)
		},
	},
}

// fusion is the fused score of one item and what each stage added.
type fusion struct {
	score float64
	gains []float64
}

// fuse runs the lexical base score and then every stage.
func (s *scorer) fuse(in *scoreInput) fusion {
	f := fusion{
		score: s.lexical(in.q, in.d, in.opts.FuzzyThreshold),
		gains: make([]float64, len(stages)),
	}

	for i, st := range stages {
		if !st.enabled(in.opts) || !st.guard(f.score) {
			continue
		}
		next := st.apply(s, f.score, in)
		if next > f.score {
			f.gains[i] = next - f.score
			f.score = next
		}
	}

	f.score = clamp01(f.score)
	return f
}

// lexicalExplanation names the signal behind a weak match that no advanced
// stage improved.
const lexicalExplanation = "Matched via lexical similarity"

// classify assigns the match tier and explanation.
func (f fusion) classify() (MatchType, string) {
	var families []string
	top, topGain := -1, 0.0
	for i, g := range f.gains {
		if g <= 0 {
			continue
		}
		families = append(families, stages[i].family)
		if g > topGain {
			top, topGain = i, g
		}
	}

	var explanation string
	if len(families) > 0 {
		explanation = "Matched via advanced matching: " + strings.Join(families, ", ")
	}

	switch {
	case f.score >= 0.9:
		return MatchExact, explanation
	case f.score >= 0.6:
		return MatchPartial, explanation
	case f.score >= 0.4:
		return MatchFuzzy, explanation
	}

	if top >= 0 {
		switch stages[top].family {
		case familyPhonetic:
			return MatchPhonetic, explanation
		case familyContextual:
			return MatchContextual, explanation
		}
	}
	if explanation == "" {
		explanation = lexicalExplanation
	}
	return MatchSemantic, explanation
}

// matchFields lists up to two fields that mention the query or one of its words.
func matchFields(q *queryText, d *document) []string {
	mentions := func(field string) bool {
		if field == "" {
			return false
		}
		if strings.Contains(field, q.text) {
			return true
		}
		for _, w := range q.words {
			if len(w) >= minWordLen && strings.Contains(field, w) {
				return true
			}
		}
		return false
	}

	fields := make([]string, 0, 2)
	add := func(name string, ok bool) bool {
		if ok {
			fields = append(fields, name)
		}
		return len(fields) == 2
	}

	if add(FieldTitle, mentions(d.title)) {
		return fields
	}
	if add(FieldCategory, mentions(d.category)) {
		return fields
	}
	if add(FieldSummary, mentions(d.summary)) {
		return fields
	}
	tagged := false
	for _, tag := range d.tags {
		if mentions(tag) {
			tagged = true
			break
		}
	}
	add(FieldTags, tagged)
	return fields
}

package search

// Options tunes a single search call.
type Options struct {
	// FuzzyThreshold is the minimum title similarity that earns a fuzzy bonus.
	FuzzyThreshold float64 `json:"fuzzyThreshold"`

	// MaxResults bounds the result list.
	MaxResults int `json:"maxResults"`

	// MinScore drops results scoring below it.
	MinScore float64 `json:"minScore"`

	// HighlightMatches fills Result.Matches.
	HighlightMatches bool `json:"highlightMatches"`

	// SuggestTypos enables the typo fallback when nothing matches.
	SuggestTypos bool `json:"suggestTypos"`

	// MaxSuggestionDistance is the largest edit distance a suggestion may have.
	MaxSuggestionDistance int `json:"maxSuggestionDistance"`

	EnableSemantic      bool `json:"enableSemantic"`
	EnablePhonetic      bool `json:"enablePhonetic"`
	EnableContextual    bool `json:"enableContextual"`
	EnableAbbreviations bool `json:"enableAbbreviations"`
	EnableSynonyms      bool `json:"enableSynonyms"`

	// FullScan scores the whole catalog before truncating. When false the
	// scan stops once 1.5x MaxResults candidates have been collected.
	FullScan bool `json:"fullScan"`
}

const (
	defaultFuzzyThreshold        = 0.6
	defaultMaxResults            = 20
	defaultMinScore              = 0.2
	defaultMaxSuggestionDistance = 2
)

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold:        defaultFuzzyThreshold,
		MaxResults:            defaultMaxResults,
		MinScore:              defaultMinScore,
		HighlightMatches:      true,
		SuggestTypos:          true,
		MaxSuggestionDistance: defaultMaxSuggestionDistance,
		EnableSemantic:        true,
		EnablePhonetic:        true,
		EnableContextual:      true,
		EnableAbbreviations:   true,
		EnableSynonyms:        true,
	}
}

// sanitize clamps out-of-range values to safe defaults.
func (o Options) sanitize() Options {
	if o.MaxResults <= 0 {
		o.MaxResults = defaultMaxResults
	}
	if o.MaxSuggestionDistance < 1 {
		o.MaxSuggestionDistance = defaultMaxSuggestionDistance
	}
	o.MinScore = clamp01(o.MinScore)
	o.FuzzyThreshold = clamp01(o.FuzzyThreshold)
	return o
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

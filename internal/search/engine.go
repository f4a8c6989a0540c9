package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/learning"
	"github.com/khanglvm/quickfind/internal/lexicon"
	"github.com/khanglvm/quickfind/internal/textsim"
)

const (
	fastPathMaxLen    = 2
	earlyStopFactor   = 1.5
	suggestedDiscount = 0.8
	ctxCheckInterval  = 64
	categoryFastScore = 0.7
)

// Engine ranks catalog items against free-text queries. It is safe for
// concurrent use; the lexicon must not be modified after NewEngine.
type Engine struct {
	scorer *scorer
	vocab  *vocabCache
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithVocabularyCacheSize sets how many catalog vocabularies are kept for
// typo suggestions.
func WithVocabularyCacheSize(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return fmt.Errorf("vocabulary cache size must be positive, got %d", n)
		}
		e.vocab = newVocabCache(n)
		return nil
	}
}

// NewEngine creates an engine over lex.
func NewEngine(lex *lexicon.Lexicon, opts ...Option) (*Engine, error) {
	if lex == nil {
		return nil, ErrLexiconRequired
	}

	e := &Engine{
		scorer: newScorer(lex),
		vocab:  newVocabCache(defaultVocabCacheSize),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Search returns the items matching query, best first. session may be nil.
// An empty query or catalog yields an empty list. The only error is a
// cancelled ctx.
func (e *Engine) Search(ctx context.Context, query string, items []catalog.Item, opts Options, session *learning.Session) ([]Result, error) {
	opts = opts.sanitize()
	q := newQuery(query)
	if q.text == "" || len(items) == 0 {
		return []Result{}, nil
	}

	results, err := e.searchOnce(ctx, q, items, opts, session)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 && opts.SuggestTypos && utf8.RuneCountInString(q.text) > fastPathMaxLen {
		results, err = e.typoFallback(ctx, q, items, opts, session)
		if err != nil {
			return nil, err
		}
	}

	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results, nil
}

// DidYouMean returns spelling corrections for query drawn from the catalog
// vocabulary. threshold <= 0 selects 0.6.
func (e *Engine) DidYouMean(query string, items []catalog.Item, threshold float64) []string {
	if threshold <= 0 {
		threshold = defaultDidYouMean
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := []string{}
	if q == "" || len(items) == 0 {
		return out
	}

	for _, s := range suggest(q, e.vocab.vocabulary(items), defaultMaxSuggestionDistance) {
		if s.word != q && textsim.Similarity(q, s.word) >= threshold {
			out = append(out, s.word)
		}
	}
	return out
}

// searchOnce runs the fast or full path without typo correction.
func (e *Engine) searchOnce(ctx context.Context, q *queryText, items []catalog.Item, opts Options, session *learning.Session) ([]Result, error) {
	if utf8.RuneCountInString(q.text) <= fastPathMaxLen {
		return e.fastPath(ctx, q, items, opts)
	}
	return e.scan(ctx, q, items, opts, session)
}

// fastPath handles very short queries with literal checks only.
func (e *Engine) fastPath(ctx context.Context, q *queryText, items []catalog.Item, opts Options) ([]Result, error) {
	results := make([]Result, 0, opts.MaxResults)

	for i := range items {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		it := &items[i]
		title := strings.ToLower(it.Title)
		r := Result{Item: it}
		switch {
		case title == q.text:
			r.Score, r.Type = exactScore, MatchExact
			r.Matches = []string{FieldTitle}
		case strings.HasPrefix(title, q.text):
			r.Score, r.Type = prefixScore, MatchExact
			r.Matches = []string{FieldTitle}
		case it.Category != "" && strings.Contains(strings.ToLower(it.Category), q.text):
			r.Score, r.Type = categoryFastScore, MatchPartial
			r.Matches = []string{FieldCategory}
		default:
			continue
		}
		if !opts.HighlightMatches {
			r.Matches = nil
		}

		results = append(results, r)
		if len(results) >= opts.MaxResults {
			break
		}
	}

	e.logger.Debug("fast path search", "query", q.text, "results", len(results))
	sortResults(results)
	return dedupe(results), nil
}

// scan scores every item with the fused relevance score.
func (e *Engine) scan(ctx context.Context, q *queryText, items []catalog.Item, opts Options, session *learning.Session) ([]Result, error) {
	var results []Result
	earlyStop := earlyStopFactor * float64(opts.MaxResults)

	for i := range items {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		d := newDocument(&items[i])
		f := e.scorer.fuse(&scoreInput{q: q, d: d, session: session, opts: &opts})
		if f.score <= 0 || f.score < opts.MinScore {
			continue
		}

		typ, explanation := f.classify()
		r := Result{
			Item:        d.item,
			Score:       f.score,
			Type:        typ,
			Explanation: explanation,
		}
		if opts.HighlightMatches {
			r.Matches = matchFields(q, d)
		}
		results = append(results, r)

		if !opts.FullScan && float64(len(results)) > earlyStop {
			e.logger.Debug("stopping scan early",
				"query", q.text, "scanned", i+1, "catalog", len(items), "candidates", len(results))
			sortResults(results)
			results = dedupe(results)
			if len(results) > opts.MaxResults {
				results = results[:opts.MaxResults]
			}
			return results, nil
		}
	}

	sortResults(results)
	results = dedupe(results)
	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	if results == nil {
		results = []Result{}
	}
	return results, nil
}

// typoFallback searches again with each spelling suggestion.
func (e *Engine) typoFallback(ctx context.Context, q *queryText, items []catalog.Item, opts Options, session *learning.Session) ([]Result, error) {
	suggestions := suggest(q.text, e.vocab.vocabulary(items), opts.MaxSuggestionDistance)
	if len(suggestions) == 0 {
		return []Result{}, nil
	}

	sub := opts
	sub.SuggestTypos = false
	sub.MaxResults = max(1, opts.MaxResults/2)

	words := make([]string, len(suggestions))
	for i, s := range suggestions {
		words[i] = s.word
	}
	e.logger.Debug("typo fallback", "query", q.text, "suggestions", words)

	merged := make([]Result, 0, len(suggestions)*sub.MaxResults)
	for _, word := range words {
		found, err := e.searchOnce(ctx, newQuery(word), items, sub, session)
		if err != nil {
			return nil, err
		}
		for _, r := range found {
			r.Score *= suggestedDiscount
			r.Type = MatchSuggested
			r.Explanation = fmt.Sprintf("Did you mean %q?", word)
			merged = append(merged, r)
		}
	}

	sortResults(merged)
	return dedupe(merged), nil
}

// sortResults orders by score, then title, then ID.
func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Item.Title != b.Item.Title {
			return a.Item.Title < b.Item.Title
		}
		return a.Item.ID < b.Item.ID
	})
}

// dedupe keeps the first result per item ID. Sorted input keeps the best.
func dedupe(results []Result) []Result {
	seen := make(map[string]bool, len(results))
	out := results[:0]
	for _, r := range results {
		if seen[r.Item.ID] {
			continue
		}
		seen[r.Item.ID] = true
		out = append(out, r)
	}
	return out
}

/*
Package benchmark compares the fuzzy engine against a BM25 keyword baseline.

For every query it measures the average latency of both searchers and the
overlap of their top-k result IDs. Misspelled variants of catalog titles are
included by default, which is where the two diverge the most.
*/
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/search"
)

var (
	// ErrNoQueries is returned when there is nothing to benchmark.
	ErrNoQueries = errors.New("benchmark: no queries")
	// ErrEmptyCategory is returned when Config.Category matches no item.
	ErrEmptyCategory = errors.New("benchmark: no items in category")
	// ErrIndexMismatch is returned when the keyword index lost documents.
	ErrIndexMismatch = errors.New("benchmark: keyword index is incomplete")
)

const (
	defaultIterations = 3
	defaultTopK       = 5
)

// KeywordSearcher is the BM25 side of the comparison.
type KeywordSearcher interface {
	SearchBM25(text string, limit int) ([]search.KeywordHit, error)
	SearchByCategory(text, category string, limit int) ([]search.KeywordHit, error)
}

// Config controls a benchmark run.
type Config struct {
	Queries    []string
	Iterations int
	TopK       int
	Options    search.Options
	// Category restricts both searchers to one catalog category.
	Category string
}

// QueryResult holds the measurements for one query.
type QueryResult struct {
	Query          string        `json:"query"`
	FuzzyLatency   time.Duration `json:"fuzzyLatency"`
	KeywordLatency time.Duration `json:"keywordLatency"`
	FuzzyHits      int           `json:"fuzzyHits"`
	KeywordHits    int           `json:"keywordHits"`
	FuzzyTop       string        `json:"fuzzyTop,omitempty"`
	KeywordTop     string        `json:"keywordTop,omitempty"`
	Overlap        float64       `json:"overlap"`
}

// Report aggregates a benchmark run.
type Report struct {
	CatalogSize  int           `json:"catalogSize"`
	Category     string        `json:"category,omitempty"`
	Iterations   int           `json:"iterations"`
	TopK         int           `json:"topK"`
	Queries      []QueryResult `json:"queries"`
	FuzzyAvg     time.Duration `json:"fuzzyAvg"`
	KeywordAvg   time.Duration `json:"keywordAvg"`
	MeanOverlap  float64       `json:"meanOverlap"`
	FuzzyOnly    int           `json:"fuzzyOnly"`
	KeywordOnly  int           `json:"keywordOnly"`
}

// Run benchmarks every query in cfg.
func Run(ctx context.Context, engine *search.Engine, keyword KeywordSearcher, items []catalog.Item, cfg Config) (*Report, error) {
	category := strings.TrimSpace(cfg.Category)
	if category != "" {
		items = InCategory(items, category)
		if len(items) == 0 {
			return nil, fmt.Errorf("%w %q", ErrEmptyCategory, category)
		}
	}
	if len(cfg.Queries) == 0 {
		return nil, ErrNoQueries
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = defaultIterations
	}
	if cfg.TopK <= 0 {
		cfg.TopK = defaultTopK
	}

	keywordSearch := func(q string) ([]search.KeywordHit, error) {
		if category != "" {
			return keyword.SearchByCategory(q, category, cfg.TopK)
		}
		return keyword.SearchBM25(q, cfg.TopK)
	}

	opts := cfg.Options
	opts.MaxResults = cfg.TopK

	report := &Report{
		CatalogSize: len(items),
		Category:    category,
		Iterations:  cfg.Iterations,
		TopK:        cfg.TopK,
	}

	var fuzzyTotal, keywordTotal time.Duration
	var overlapTotal float64

	for _, q := range cfg.Queries {
		qr := QueryResult{Query: q}

		var fuzzy []search.Result
		start := time.Now()
		for i := 0; i < cfg.Iterations; i++ {
			var err error
			fuzzy, err = engine.Search(ctx, q, items, opts, nil)
			if err != nil {
				return nil, fmt.Errorf("fuzzy search %q: %w", q, err)
			}
		}
		qr.FuzzyLatency = time.Since(start) / time.Duration(cfg.Iterations)

		var hits []search.KeywordHit
		start = time.Now()
		for i := 0; i < cfg.Iterations; i++ {
			var err error
			hits, err = keywordSearch(q)
			if err != nil {
				return nil, fmt.Errorf("keyword search %q: %w", q, err)
			}
		}
		qr.KeywordLatency = time.Since(start) / time.Duration(cfg.Iterations)

		fuzzyIDs := make([]string, 0, len(fuzzy))
		for _, r := range fuzzy {
			fuzzyIDs = append(fuzzyIDs, r.Item.ID)
		}
		keywordIDs := make([]string, 0, len(hits))
		for _, h := range hits {
			keywordIDs = append(keywordIDs, h.ID)
		}

		qr.FuzzyHits = len(fuzzyIDs)
		qr.KeywordHits = len(keywordIDs)
		if len(fuzzyIDs) > 0 {
			qr.FuzzyTop = fuzzyIDs[0]
		}
		if len(keywordIDs) > 0 {
			qr.KeywordTop = keywordIDs[0]
		}
		qr.Overlap = Overlap(fuzzyIDs, keywordIDs)

		switch {
		case qr.FuzzyHits > 0 && qr.KeywordHits == 0:
			report.FuzzyOnly++
		case qr.KeywordHits > 0 && qr.FuzzyHits == 0:
			report.KeywordOnly++
		}

		fuzzyTotal += qr.FuzzyLatency
		keywordTotal += qr.KeywordLatency
		overlapTotal += qr.Overlap
		report.Queries = append(report.Queries, qr)
	}

	n := len(report.Queries)
	report.FuzzyAvg = fuzzyTotal / time.Duration(n)
	report.KeywordAvg = keywordTotal / time.Duration(n)
	report.MeanOverlap = overlapTotal / float64(n)

	return report, nil
}

// InCategory returns the items whose category matches category, ignoring
// case and surrounding space.
func InCategory(items []catalog.Item, category string) []catalog.Item {
	want := strings.ToLower(strings.TrimSpace(category))
	var out []catalog.Item
	for _, item := range items {
		if strings.ToLower(strings.TrimSpace(item.Category)) == want {
			out = append(out, item)
		}
	}
	return out
}

// BuildIndex indexes items into a fresh in-memory BM25 index and checks that
// every distinct item ID made it in. The caller closes the index.
func BuildIndex(items []catalog.Item) (*search.Indexer, error) {
	indexer, err := search.NewIndexer()
	if err != nil {
		return nil, err
	}
	if err := indexer.IndexItems(items); err != nil {
		indexer.Close()
		return nil, err
	}

	ids := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ID != "" {
			ids[item.ID] = true
		}
	}
	count, err := indexer.Count()
	if err != nil {
		indexer.Close()
		return nil, err
	}
	if count != uint64(len(ids)) {
		indexer.Close()
		return nil, fmt.Errorf("%w: %d of %d items indexed", ErrIndexMismatch, count, len(ids))
	}
	return indexer, nil
}

// Overlap returns the share of IDs two top-k lists have in common, relative
// to the longer list. Two empty lists agree completely.
func Overlap(a, b []string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}

	seen := make(map[string]bool, len(a))
	for _, id := range a {
		seen[id] = true
	}
	common := 0
	for _, id := range b {
		if seen[id] {
			common++
			delete(seen, id)
		}
	}
	return float64(common) / float64(longest)
}

// DefaultQueries derives queries from the first n catalog titles: each
// lowercased title followed by a variant with two letters swapped.
func DefaultQueries(items []catalog.Item, n int) []string {
	if n <= 0 || n > len(items) {
		n = len(items)
	}

	seen := make(map[string]bool)
	var queries []string
	add := func(q string) {
		if q != "" && !seen[q] {
			seen[q] = true
			queries = append(queries, q)
		}
	}

	for _, item := range items[:n] {
		title := strings.ToLower(strings.TrimSpace(item.Title))
		add(title)
		add(transpose(title))
	}
	return queries
}

// transpose swaps the second and third letters of the first word of at
// least four letters, or returns "" when there is none.
func transpose(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) < 4 || r[1] == r[2] {
			continue
		}
		r[1], r[2] = r[2], r[1]
		words[i] = string(r)
		return strings.Join(words, " ")
	}
	return ""
}

// FormatResult formats the report for display.
func FormatResult(r *Report) string {
	var sb strings.Builder

	sb.WriteString("╔══════════════════════════════════════════════════════════════╗\n")
	sb.WriteString("║           FUZZY vs BM25 BENCHMARK RESULTS                    ║\n")
	sb.WriteString("╠══════════════════════════════════════════════════════════════╣\n")
	sb.WriteString(fmt.Sprintf("║  Catalog: %-6d  Queries: %-4d  Iterations: %-3d  Top-k: %-3d ║\n",
		r.CatalogSize, len(r.Queries), r.Iterations, r.TopK))
	if r.Category != "" {
		sb.WriteString(fmt.Sprintf("║  Category: %-50s║\n", clip(r.Category, 50)))
	}
	sb.WriteString("╚══════════════════════════════════════════════════════════════╝\n\n")

	sb.WriteString(fmt.Sprintf("%-28s %10s %10s %6s %6s %8s\n", "QUERY", "FUZZY", "BM25", "HITS", "HITS", "OVERLAP"))
	for _, q := range r.Queries {
		sb.WriteString(fmt.Sprintf("%-28s %10s %10s %6d %6d %7.0f%%\n",
			clip(q.Query, 28),
			q.FuzzyLatency.Round(time.Microsecond),
			q.KeywordLatency.Round(time.Microsecond),
			q.FuzzyHits, q.KeywordHits, q.Overlap*100))
	}

	sb.WriteString("\n═══════════════════════════════════════════════════════════════\n")
	sb.WriteString(fmt.Sprintf("Average latency:  fuzzy %v, bm25 %v\n",
		r.FuzzyAvg.Round(time.Microsecond), r.KeywordAvg.Round(time.Microsecond)))
	sb.WriteString(fmt.Sprintf("Mean overlap:     %.1f%%\n", r.MeanOverlap*100))
	sb.WriteString(fmt.Sprintf("Only fuzzy found: %d queries\n", r.FuzzyOnly))
	sb.WriteString(fmt.Sprintf("Only bm25 found:  %d queries\n", r.KeywordOnly))
	sb.WriteString("═══════════════════════════════════════════════════════════════\n")

	return sb.String()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

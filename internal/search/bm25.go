package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// KeywordHit is a BM25 match from the keyword index.
type KeywordHit struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score"`
}

var hitFields = []string{"title", "category"}

// SearchBM25 performs BM25 keyword search using Bleve.
func (i *Indexer) SearchBM25(text string, limit int) ([]KeywordHit, error) {
	return i.run(i.buildMatchQuery(text), limit)
}

// SearchByCategory performs BM25 search scoped to one category.
func (i *Indexer) SearchByCategory(text, category string, limit int) ([]KeywordHit, error) {
	categoryQuery := bleve.NewTermQuery(strings.ToLower(category))
	categoryQuery.SetField("category")

	return i.run(bleve.NewConjunctionQuery(i.buildMatchQuery(text), categoryQuery), limit)
}

func (i *Indexer) run(q query.Query, limit int) ([]KeywordHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.bleveIndex == nil {
		return nil, ErrIndexClosed
	}
	if limit <= 0 {
		limit = 10
	}

	searchRequest := bleve.NewSearchRequestOptions(q, limit, 0, false)
	searchRequest.Fields = hitFields

	results, err := i.bleveIndex.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertBleveResults(results), nil
}

// convertBleveResults converts Bleve hits to KeywordHit values.
func convertBleveResults(results *bleve.SearchResult) []KeywordHit {
	hits := make([]KeywordHit, 0, len(results.Hits))

	for _, hit := range results.Hits {
		title, _ := hit.Fields["title"].(string)
		category, _ := hit.Fields["category"].(string)

		hits = append(hits, KeywordHit{
			ID:       hit.ID,
			Title:    title,
			Category: category,
			Score:    hit.Score,
		})
	}

	return hits
}

package search

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/khanglvm/quickfind/internal/catalog"
)

// Indexer is an in-memory bleve index over catalog items. It serves plain
// BM25 keyword search as a baseline for the fuzzy engine.
type Indexer struct {
	bleveIndex bleve.Index
	mu         sync.RWMutex
}

// NewIndexer creates an empty in-memory index.
func NewIndexer() (*Indexer, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &Indexer{bleveIndex: index}, nil
}

// buildIndexMapping creates the Bleve index mapping.
func buildIndexMapping() mapping.IndexMapping {
	itemMapping := bleve.NewDocumentMapping()

	for _, field := range []string{"title", "summary", "tags", "searchableText"} {
		itemMapping.AddFieldMappingsAt(field, bleve.NewTextFieldMapping())
	}

	// Category is matched whole so it can filter.
	categoryMapping := bleve.NewKeywordFieldMapping()
	itemMapping.AddFieldMappingsAt("category", categoryMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", itemMapping)

	return indexMapping
}

// IndexItems adds or replaces items, keyed by item ID.
func (i *Indexer) IndexItems(items []catalog.Item) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.bleveIndex == nil {
		return ErrIndexClosed
	}

	batch := i.bleveIndex.NewBatch()
	for _, item := range items {
		doc := map[string]interface{}{
			"title":          item.Title,
			"category":       strings.ToLower(item.Category),
			"tags":           strings.Join(item.Tags, " "),
			"summary":        item.Summary,
			"searchableText": item.SearchableText,
		}

		if err := batch.Index(item.ID, doc); err != nil {
			log.Printf("Warning: failed to index item %s: %v", item.ID, err)
		}
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index items: %w", err)
	}

	return nil
}

// Count returns the total number of indexed items.
func (i *Indexer) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.bleveIndex == nil {
		return 0, ErrIndexClosed
	}

	docCount, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}

	return docCount, nil
}

// Close closes the index and releases resources.
func (i *Indexer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.bleveIndex == nil {
		return nil
	}
	err := i.bleveIndex.Close()
	i.bleveIndex = nil
	return err
}

// buildMatchQuery creates a match query for BM25 search.
func (i *Indexer) buildMatchQuery(searchText string) query.Query {
	return bleve.NewMatchQuery(searchText)
}

package search

import (
	"errors"
	"testing"
)

func newTestIndexer(t *testing.T) *Indexer {
	t.Helper()

	indexer, err := NewIndexer()
	if err != nil {
		t.Fatalf("failed to create indexer: %v", err)
	}
	t.Cleanup(func() { indexer.Close() })

	if err := indexer.IndexItems(testCatalog()); err != nil {
		t.Fatalf("failed to index items: %v", err)
	}
	return indexer
}

func TestIndexItems(t *testing.T) {
	indexer := newTestIndexer(t)

	count, err := indexer.Count()
	if err != nil {
		t.Fatalf("failed to get count: %v", err)
	}
	if count != uint64(len(testCatalog())) {
		t.Errorf("expected %d indexed items, got %d", len(testCatalog()), count)
	}
}

func TestSearchBM25(t *testing.T) {
	indexer := newTestIndexer(t)

	tests := []struct {
		name   string
		query  string
		wantID string
	}{
		{name: "title word", query: "bubble", wantID: "bubble"},
		{name: "summary word", query: "shortest", wantID: "dijkstra"},
		{name: "tag", query: "lifo", wantID: "stack"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := indexer.SearchBM25(tt.query, 5)
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if len(hits) == 0 {
				t.Fatalf("no hits for %q", tt.query)
			}
			if hits[0].ID != tt.wantID {
				t.Errorf("top hit = %s, want %s", hits[0].ID, tt.wantID)
			}
			if hits[0].Title == "" {
				t.Error("hit title was not stored")
			}
		})
	}
}

func TestSearchBM25NoMatch(t *testing.T) {
	indexer := newTestIndexer(t)

	hits, err := indexer.SearchBM25("xyzzyplugh", 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestSearchByCategory(t *testing.T) {
	indexer := newTestIndexer(t)

	hits, err := indexer.SearchByCategory("sort", "Sorting", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected hits in the sorting category")
	}
	for _, hit := range hits {
		if hit.Category != "sorting" {
			t.Errorf("hit %s has category %q", hit.ID, hit.Category)
		}
	}
}

func TestClosedIndexer(t *testing.T) {
	indexer, err := NewIndexer()
	if err != nil {
		t.Fatalf("failed to create indexer: %v", err)
	}
	if err := indexer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := indexer.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}

	if _, err := indexer.SearchBM25("sort", 5); !errors.Is(err, ErrIndexClosed) {
		t.Errorf("SearchBM25 after close = %v, want ErrIndexClosed", err)
	}
	if err := indexer.IndexItems(testCatalog()); !errors.Is(err, ErrIndexClosed) {
		t.Errorf("IndexItems after close = %v, want ErrIndexClosed", err)
	}
	if _, err := indexer.Count(); !errors.Is(err, ErrIndexClosed) {
		t.Errorf("Count after close = %v, want ErrIndexClosed", err)
	}
}

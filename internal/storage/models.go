package storage

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Interaction is a query together with the item the user picked for it.
type Interaction struct {
	// Query is the lowercased query text. It is kept in clear so a session's
	// recent-query window can be rebuilt.
	Query string `json:"query"`

	// ItemID is the selected item, or empty when nothing was picked.
	ItemID string `json:"item_id,omitempty"`

	// Category is the selected item's category, if any.
	Category string `json:"category,omitempty"`

	// Timestamp is when the interaction happened.
	Timestamp time.Time `json:"timestamp"`
}

// SearchRecord represents a search query for analytics.
type SearchRecord struct {
	// SearchID is a unique identifier for this search (UUID).
	SearchID string `json:"search_id"`

	// QueryHash is the SHA256 hash of the search query for privacy.
	QueryHash string `json:"query_hash"`

	// Timestamp is when the search was performed.
	Timestamp time.Time `json:"timestamp"`

	// ResultsCount is the number of results returned.
	ResultsCount int `json:"results_count"`
}

// NewSearchRecord creates a record for a search that returned count results.
// The query is normalised and hashed; only the hash is stored.
func NewSearchRecord(query string, count int) SearchRecord {
	return SearchRecord{
		SearchID:     uuid.NewString(),
		QueryHash:    HashQuery(strings.ToLower(strings.TrimSpace(query))),
		Timestamp:    time.Now(),
		ResultsCount: count,
	}
}

package storage

import (
	"log"
	"time"
)

// RecordSearch records a search query for analytics.
func (s *SQLiteStorage) RecordSearch(search SearchRecord) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO search_history (search_id, query_hash, timestamp, results_count)
		VALUES (?, ?, ?, ?)
	`,
		search.SearchID,
		search.QueryHash,
		search.Timestamp.UTC().Format(time.RFC3339Nano),
		search.ResultsCount,
	)
	if err != nil {
		log.Printf("Warning: failed to record search: %v", err)
	}

	return nil
}

// Cleanup removes old records based on retention policy.
func (s *SQLiteStorage) Cleanup(retention time.Duration) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-retention).UTC().Format(time.RFC3339Nano)

	if _, err := s.db.Exec("DELETE FROM interactions WHERE timestamp < ?", cutoff); err != nil {
		log.Printf("Warning: failed to cleanup interactions: %v", err)
	}

	if _, err := s.db.Exec("DELETE FROM search_history WHERE timestamp < ?", cutoff); err != nil {
		log.Printf("Warning: failed to cleanup search_history: %v", err)
	}

	if _, err := s.db.Exec("VACUUM"); err != nil {
		log.Printf("Warning: failed to vacuum database: %v", err)
	}

	return nil
}

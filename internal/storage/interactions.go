package storage

import (
	"log"
	"time"
)

// RecordInteraction records a query and the item picked for it.
func (s *SQLiteStorage) RecordInteraction(event Interaction) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO interactions (query, item_id, category, timestamp)
		VALUES (?, ?, ?, ?)
	`,
		event.Query,
		event.ItemID,
		event.Category,
		ts.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		log.Printf("Warning: failed to record interaction: %v", err)
	}

	return nil
}

// RecentInteractions returns up to limit interactions, newest first.
func (s *SQLiteStorage) RecentInteractions(limit int) ([]Interaction, error) {
	if !s.enabled || s.db == nil {
		return []Interaction{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT query, item_id, category, timestamp
		FROM interactions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		log.Printf("Warning: failed to query interactions: %v", err)
		return []Interaction{}, nil
	}
	defer rows.Close()

	events := make([]Interaction, 0, limit)
	for rows.Next() {
		var event Interaction
		var timestampStr string

		if err := rows.Scan(&event.Query, &event.ItemID, &event.Category, &timestampStr); err != nil {
			log.Printf("Warning: failed to scan interaction row: %v", err)
			continue
		}

		event.Timestamp, err = time.Parse(time.RFC3339Nano, timestampStr)
		if err != nil {
			log.Printf("Warning: failed to parse timestamp: %v", err)
			continue
		}

		events = append(events, event)
	}

	return events, rows.Err()
}

// CountInteractions returns the number of stored interactions.
func (s *SQLiteStorage) CountInteractions() (int, error) {
	if !s.enabled || s.db == nil {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM interactions").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

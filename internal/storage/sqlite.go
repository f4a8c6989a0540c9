package storage

import (
	"fmt"
	"log"
)

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      func() error
}

// runMigrations executes database schema migrations.
func (s *SQLiteStorage) runMigrations() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	if err := s.createMigrationsTable(); err != nil {
		return err
	}

	version, err := s.getCurrentMigrationVersion()
	if err != nil {
		return err
	}

	migrations := []migration{
		{version: 1, name: "initial_schema", up: s.migration001InitialSchema},
	}

	for _, m := range migrations {
		if version < m.version {
			log.Printf("Running migration %d: %s", m.version, m.name)
			if err := m.up(); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
			if err := s.setMigrationVersion(m.version, m.name); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *SQLiteStorage) createMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	return err
}

func (s *SQLiteStorage) getCurrentMigrationVersion() (int, error) {
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")

	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func (s *SQLiteStorage) setMigrationVersion(version int, name string) error {
	_, err := s.db.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", version, name)
	return err
}

// migration001InitialSchema creates the interactions and search_history tables.
func (s *SQLiteStorage) migration001InitialSchema() error {
	statements := []struct {
		desc string
		sql  string
	}{
		{"interactions table", `
			CREATE TABLE IF NOT EXISTS interactions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				query TEXT NOT NULL,
				item_id TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				timestamp TEXT NOT NULL
			)`},
		{"interactions item index", `
			CREATE INDEX IF NOT EXISTS idx_interactions_item
			ON interactions(item_id)`},
		{"interactions timestamp index", `
			CREATE INDEX IF NOT EXISTS idx_interactions_timestamp
			ON interactions(timestamp DESC)`},
		{"search_history table", `
			CREATE TABLE IF NOT EXISTS search_history (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				search_id TEXT NOT NULL UNIQUE,
				query_hash TEXT NOT NULL,
				timestamp TEXT NOT NULL,
				results_count INTEGER NOT NULL
			)`},
		{"search_history timestamp index", `
			CREATE INDEX IF NOT EXISTS idx_search_history_timestamp
			ON search_history(timestamp DESC)`},
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt.sql); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.desc, err)
		}
	}
	return nil
}

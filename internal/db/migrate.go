package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		key        TEXT PRIMARY KEY,
		body       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

// Migrate applies every schema statement. Statements are idempotent so the
// full list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

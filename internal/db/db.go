package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// connPragmas are applied by the driver to every pooled connection. The
// watch TUI and one-shot commands share the file, so each connection
// waits on a lock instead of failing with SQLITE_BUSY.
var connPragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
}

// DSN returns the driver data source for path with connPragmas attached.
func DSN(path string) string {
	v := url.Values{}
	for _, p := range connPragmas {
		v.Add("_pragma", p)
	}
	return "file:" + path + "?" + v.Encode()
}

// OpenDB opens the SQLite database holding the plan documents and applies
// migrations. Parent directories are created for file paths.
//
// An in-memory database lives on a single connection, so the pool is
// capped at one connection for MemoryPath.
func OpenDB(path string) (*sql.DB, error) {
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		dsn = DSN(path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/harbor/internal/db"
)

// SQLiteDocumentRepo implements DocumentRepo on the documents table.
type SQLiteDocumentRepo struct {
	db db.DBTX
}

// NewSQLiteDocumentRepo creates a new SQLiteDocumentRepo.
func NewSQLiteDocumentRepo(conn db.DBTX) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: conn}
}

func (r *SQLiteDocumentRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading document %s: %w", key, err)
	}
	return body, true, nil
}

func (r *SQLiteDocumentRepo) Set(ctx context.Context, key, body string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		key, body, nowUTC())
	if err != nil {
		return fmt.Errorf("writing document %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("document %s: %w", key, ErrNotFound)
	}
	return nil
}

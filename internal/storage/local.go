package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// LocalDB keeps documents in a SQLite file. It serves single-machine setups
// that have no Postgres server.
type LocalDB struct {
	db *sql.DB
}

var _ DocumentStore = (*LocalDB)(nil)

// OpenLocal opens (or creates) the SQLite database at path. The special path
// ":memory:" opens a private in-memory database.
func OpenLocal(path string) (*LocalDB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening local db: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		user_id     TEXT NOT NULL,
		collection  TEXT NOT NULL,
		data        BLOB NOT NULL,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (user_id, collection)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating documents table: %w", err)
	}

	return &LocalDB{db: db}, nil
}

// GetDocument returns the data of the user's document.
func (l *LocalDB) GetDocument(ctx context.Context, userID string, c Collection) ([]byte, error) {
	var data []byte
	err := l.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE user_id = ? AND collection = ?`,
		userID, string(c)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying %s document: %w", c, err)
	}
	return data, nil
}

// SetDocument replaces the user's document.
func (l *LocalDB) SetDocument(ctx context.Context, userID string, c Collection, data []byte) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (user_id, collection, data, updated_at) VALUES (?, ?, ?, ?)`,
		userID, string(c), data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("writing %s document: %w", c, err)
	}
	return nil
}

// ListDocuments returns the documents stored for a user.
func (l *LocalDB) ListDocuments(ctx context.Context, userID string) ([]DocumentInfo, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT collection, length(data), updated_at FROM documents WHERE user_id = ? ORDER BY collection`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var result []DocumentInfo
	for rows.Next() {
		var d DocumentInfo
		var c, updated string
		if err := rows.Scan(&c, &d.Size, &updated); err != nil {
			return nil, fmt.Errorf("scanning document info: %w", err)
		}
		d.Collection = Collection(c)
		d.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		result = append(result, d)
	}
	return result, rows.Err()
}

// Close closes the database.
func (l *LocalDB) Close() error {
	return l.db.Close()
}

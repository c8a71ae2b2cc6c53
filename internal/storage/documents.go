package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Collection names one logical document kept per user.
type Collection string

const (
	CollectionTemplates Collection = "templates"
	CollectionPrograms  Collection = "programs"
	CollectionNutrition Collection = "nutrition"
	CollectionHistory   Collection = "history"
)

// ErrNotFound is returned when a user has no document for a collection yet.
var ErrNotFound = errors.New("document not found")

// DocumentStore is the remote mirror: one document per user per collection,
// always overwritten wholesale.
type DocumentStore interface {
	GetDocument(ctx context.Context, userID string, c Collection) ([]byte, error)
	SetDocument(ctx context.Context, userID string, c Collection, data []byte) error
	ListDocuments(ctx context.Context, userID string) ([]DocumentInfo, error)
}

// Save marshals v and overwrites the user's document.
func Save(ctx context.Context, ds DocumentStore, userID string, c Collection, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", c, err)
	}
	return ds.SetDocument(ctx, userID, c, data)
}

// Load reads the user's document into v. It returns ErrNotFound when no
// document exists.
func Load(ctx context.Context, ds DocumentStore, userID string, c Collection, v any) error {
	data, err := ds.GetDocument(ctx, userID, c)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", c, err)
	}
	return nil
}

// GetDocument returns the data of the user's document.
func (db *DB) GetDocument(ctx context.Context, userID string, c Collection) ([]byte, error) {
	var data []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE user_id = $1 AND collection = $2`,
		userID, string(c)).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying %s document: %w", c, err)
	}
	return data, nil
}

// SetDocument upserts the user's document, replacing any previous data.
func (db *DB) SetDocument(ctx context.Context, userID string, c Collection, data []byte) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO documents (user_id, collection, data, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id, collection) DO UPDATE
		 SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		userID, string(c), data)
	if err != nil {
		return fmt.Errorf("writing %s document: %w", c, err)
	}
	return nil
}

// DocumentInfo describes a stored document without its body.
type DocumentInfo struct {
	Collection Collection `json:"collection"`
	Size       int        `json:"size"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ListDocuments returns the documents stored for a user.
func (db *DB) ListDocuments(ctx context.Context, userID string) ([]DocumentInfo, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT collection, octet_length(data::text), updated_at
		 FROM documents
		 WHERE user_id = $1
		 ORDER BY collection`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var result []DocumentInfo
	for rows.Next() {
		var d DocumentInfo
		var c string
		if err := rows.Scan(&c, &d.Size, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning document info: %w", err)
		}
		d.Collection = Collection(c)
		result = append(result, d)
	}
	return result, rows.Err()
}

// Syncer mirrors a collection to the remote store after a local mutation.
// Implementations must not block the caller and must snapshot v before
// returning.
type Syncer interface {
	Sync(c Collection, v any)
}

// NopSyncer discards every sync request. Stores use it when running
// local-only.
type NopSyncer struct{}

// Sync implements Syncer.
func (NopSyncer) Sync(Collection, any) {}

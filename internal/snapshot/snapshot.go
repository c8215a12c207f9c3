// Package snapshot persists in-memory collections as JSON blobs in a single SQLite table.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DB stores one JSON payload per bucket. Saves replace the whole bucket.
type DB struct {
	db *sql.DB
	mu sync.Mutex
}

func Open(path string) (*DB, error) {
	if path == "" {
		path = "acquitrack.db"
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &DB{db: db}, nil
}

// Load decodes the bucket into v. It reports false when the bucket has never been saved.
func (d *DB) Load(ctx context.Context, bucket string, v any) (bool, error) {
	var payload []byte

	err := d.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("selecting %s: %w", bucket, err)
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", bucket, err)
	}

	return true, nil
}

// Save encodes v and upserts it as the bucket's payload.
func (d *DB) Save(ctx context.Context, bucket string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", bucket, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.db.ExecContext(ctx,
		`INSERT INTO state(bucket, payload) VALUES(?, ?) ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
		bucket, data,
	); err != nil {
		return fmt.Errorf("upserting %s: %w", bucket, err)
	}

	return nil
}

func (d *DB) Close() error { return d.db.Close() }

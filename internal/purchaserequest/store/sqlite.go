package store

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/snapshot"
)

const sqliteBucket = "purchase_requests"

// SQLite is a Memory store that snapshots the whole collection after every mutation.
type SQLite struct {
	*Memory
	db *snapshot.DB
}

// NewSQLite loads any saved state from db. When nothing was saved yet, seed is stored instead.
func NewSQLite(ctx context.Context, db *snapshot.DB, seed ...*purchaserequest.PurchaseRequest) (*SQLite, error) {
	var saved state

	ok, err := db.Load(ctx, sqliteBucket, &saved)
	if err != nil {
		return nil, fmt.Errorf("loading purchase requests: %w", err)
	}

	mem := NewMemory(seed...)
	if ok {
		mem.restore(saved)
	}

	s := &SQLite{Memory: mem, db: db}
	mem.commit = s.save

	if !ok && len(seed) > 0 {
		if err := s.save(ctx, mem.snapshot(nil, false)); err != nil {
			return nil, fmt.Errorf("saving seed: %w", err)
		}
	}

	return s, nil
}

func (s *SQLite) save(ctx context.Context, st state) error {
	return s.db.Save(ctx, sqliteBucket, st)
}

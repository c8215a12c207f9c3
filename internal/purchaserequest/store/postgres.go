package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

const postgresSchema = `
	CREATE SEQUENCE IF NOT EXISTS purchase_request_number_seq;

	CREATE TABLE IF NOT EXISTS purchase_requests (
		position   BIGSERIAL UNIQUE,
		id         UUID PRIMARY KEY,
		pr_number  TEXT NOT NULL UNIQUE,
		status     TEXT NOT NULL,
		payload    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
`

// Postgres stores each purchase request as a JSONB document. Row order follows insertion.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the sequence and table when they are missing.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("migrating purchase requests: %w", err)
	}

	return nil
}

func (s *Postgres) NextSequence(ctx context.Context) (int, error) {
	var seq int
	if err := s.db.QueryRowContext(ctx, `SELECT nextval('purchase_request_number_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next pr sequence: %w", err)
	}

	return seq, nil
}

func (s *Postgres) CreatePurchaseRequest(ctx context.Context, pr *purchaserequest.PurchaseRequest) error {
	payload, err := json.Marshal(pr)
	if err != nil {
		return fmt.Errorf("encoding purchase request: %w", err)
	}

	query := `
		INSERT INTO purchase_requests (id, pr_number, status, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := s.db.ExecContext(ctx, query,
		pr.ID, pr.PRNumber, pr.Status, payload, pr.CreatedAt, pr.UpdatedAt,
	); err != nil {
		return fmt.Errorf("inserting purchase request: %w", err)
	}

	return nil
}

func (s *Postgres) GetPurchaseRequest(ctx context.Context, id uuid.UUID) (*purchaserequest.PurchaseRequest, error) {
	pr, err := scanPayload(s.db.QueryRowContext(ctx, `SELECT payload FROM purchase_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, purchaserequest.ErrNotFound
		}

		return nil, fmt.Errorf("getting purchase request: %w", err)
	}

	return pr, nil
}

func (s *Postgres) ListPurchaseRequests(ctx context.Context) ([]*purchaserequest.PurchaseRequest, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM purchase_requests ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing purchase requests: %w", err)
	}
	defer rows.Close()

	var prs []*purchaserequest.PurchaseRequest

	for rows.Next() {
		pr, err := scanPayload(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase request: %w", err)
		}

		prs = append(prs, pr)
	}

	return prs, rows.Err()
}

// UpdatePurchaseRequest locks the row, applies fn and writes the result in one transaction.
func (s *Postgres) UpdatePurchaseRequest(
	ctx context.Context,
	id uuid.UUID,
	fn func(pr *purchaserequest.PurchaseRequest) error,
) (*purchaserequest.PurchaseRequest, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	current, err := scanPayload(dbTx.QueryRowContext(ctx,
		`SELECT payload FROM purchase_requests WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, purchaserequest.ErrNotFound
		}

		return nil, fmt.Errorf("locking purchase request: %w", err)
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	next.ID = current.ID
	next.PRNumber = current.PRNumber
	next.CreatedAt = current.CreatedAt

	payload, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("encoding purchase request: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE purchase_requests SET status = $2, payload = $3, updated_at = $4 WHERE id = $1`,
		id, next.Status, payload, next.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("updating purchase request: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing purchase request: %w", err)
	}

	return next, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPayload(s scanner) (*purchaserequest.PurchaseRequest, error) {
	var payload []byte
	if err := s.Scan(&payload); err != nil {
		return nil, err
	}

	var pr purchaserequest.PurchaseRequest
	if err := json.Unmarshal(payload, &pr); err != nil {
		return nil, fmt.Errorf("decoding purchase request: %w", err)
	}

	return &pr, nil
}

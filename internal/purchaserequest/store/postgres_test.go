package store_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/acquitrack/internal/database"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest/store"
)

// newPostgres connects to POSTGRES_TEST_DSN and empties the purchase request tables.
// The database is treated as disposable.
func newPostgres(t *testing.T) *store.Postgres {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ctx := context.Background()

	db, err := database.New(ctx, dsn, database.Pool{MaxOpenConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pg := store.NewPostgres(db)
	require.NoError(t, pg.Migrate(ctx))
	resetPostgres(t, db)

	return pg
}

func resetPostgres(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(`TRUNCATE purchase_requests; ALTER SEQUENCE purchase_request_number_seq RESTART WITH 1`)
	require.NoError(t, err)
}

func TestPostgres_Lifecycle(t *testing.T) {
	ctx := context.Background()
	pg := newPostgres(t)

	svc := purchaserequest.NewService(pg, newDirectory(), purchaserequest.WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}))

	first, err := svc.Create(ctx, createParams())
	require.NoError(t, err)
	assert.Equal(t, "PR-2025-001", first.PRNumber)

	second, err := svc.Create(ctx, createParams())
	require.NoError(t, err)
	assert.Equal(t, "PR-2025-002", second.PRNumber)

	submitted, err := svc.Submit(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, submitted.SubmittedAt)

	got, err := pg.GetPurchaseRequest(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, purchaserequest.StatusSubmitted, got.Status)
	assert.True(t, got.TotalAmount.Equal(first.TotalAmount))
	assert.Len(t, got.History, 2)

	all, err := pg.ListPurchaseRequests(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestPostgres_FailedUpdateRollsBack(t *testing.T) {
	ctx := context.Background()
	pg := newPostgres(t)
	svc := purchaserequest.NewService(pg, newDirectory())

	pr, err := svc.Create(ctx, createParams())
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = pg.UpdatePurchaseRequest(ctx, pr.ID, func(p *purchaserequest.PurchaseRequest) error {
		p.Status = purchaserequest.StatusApproved
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := pg.GetPurchaseRequest(ctx, pr.ID)
	require.NoError(t, err)
	assert.Equal(t, purchaserequest.StatusDraft, got.Status)

	_, err = svc.Submit(ctx, pr.ID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, pr.ID)
	assert.ErrorIs(t, err, purchaserequest.ErrInvalidTransition)
}

package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest/store"
	"github.com/MrJamesThe3rd/acquitrack/internal/snapshot"
)

func newDirectory() *store.Directory {
	return store.NewDirectory(
		[]purchaserequest.UserReference{
			{ID: "user-1", Name: "John Smith", Organization: "Information Technology Division"},
		},
		[]purchaserequest.FundingSource{
			{ID: "fund-1", Name: "Operations & Maintenance", AvailableBalance: decimal.NewFromInt(500000), FiscalYear: 2025},
		},
	)
}

func createParams() purchaserequest.CreateParams {
	return purchaserequest.CreateParams{
		RequesterID:     "user-1",
		Organization:    "Information Technology Division",
		FundingSourceID: "fund-1",
		LineItems: []purchaserequest.LineItemParams{
			{Description: "Laptop", Quantity: 2, UnitPrice: decimal.NewFromInt(1500), Category: purchaserequest.CategoryITEquipment},
			{Description: "Cable", Quantity: 10, UnitPrice: decimal.RequireFromString("4.99")},
		},
	}
}

func TestMemory_Lifecycle(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := purchaserequest.NewService(mem, newDirectory(), purchaserequest.WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}))

	pr, err := svc.Create(ctx, createParams())
	require.NoError(t, err)
	assert.Equal(t, "PR-2025-001", pr.PRNumber)
	assert.Equal(t, "3049.9", pr.TotalAmount.String())

	edited, err := svc.Update(ctx, pr.ID, purchaserequest.UpdateParams{})
	require.NoError(t, err)
	assert.Equal(t, pr.ID, edited.ID)
	assert.Equal(t, pr.PRNumber, edited.PRNumber)
	assert.Len(t, edited.History, 2)

	submitted, err := svc.Submit(ctx, pr.ID)
	require.NoError(t, err)
	assert.Equal(t, purchaserequest.StatusSubmitted, submitted.Status)
	assert.Len(t, submitted.History, 3)

	_, err = svc.Submit(ctx, pr.ID)
	assert.ErrorIs(t, err, purchaserequest.ErrInvalidTransition)

	stored, err := svc.Get(ctx, pr.ID)
	require.NoError(t, err)
	assert.Equal(t, purchaserequest.StatusSubmitted, stored.Status)
	assert.Len(t, stored.History, 3)

	second, err := svc.Create(ctx, createParams())
	require.NoError(t, err)
	assert.Equal(t, "PR-2025-002", second.PRNumber)

	all, err := svc.List(ctx, purchaserequest.Filter{Organization: "IT"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, pr.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestMemory_UpdateFailureLeavesRecord(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	mem := store.NewMemory(&purchaserequest.PurchaseRequest{ID: id, PRNumber: "PR-2025-001", Status: purchaserequest.StatusDraft})

	_, err := mem.UpdatePurchaseRequest(ctx, id, func(pr *purchaserequest.PurchaseRequest) error {
		pr.Status = purchaserequest.StatusApproved
		pr.Organization = "changed"

		return errors.New("boom")
	})
	require.Error(t, err)

	got, err := mem.GetPurchaseRequest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, purchaserequest.StatusDraft, got.Status)
	assert.Empty(t, got.Organization)
}

func TestMemory_ApprovedRequestIsFrozen(t *testing.T) {
	ctx := context.Background()
	svc := purchaserequest.NewService(store.NewMemory(), newDirectory())

	pr, err := svc.Create(ctx, createParams())
	require.NoError(t, err)

	_, err = svc.Submit(ctx, pr.ID)
	require.NoError(t, err)
	_, err = svc.StartReview(ctx, pr.ID)
	require.NoError(t, err)
	approved, err := svc.Approve(ctx, pr.ID, "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, pr.ID, purchaserequest.UpdateParams{
		LineItems: []purchaserequest.LineItemParams{{Description: "Server", Quantity: 100, UnitPrice: decimal.NewFromInt(1000)}},
	})
	assert.ErrorIs(t, err, purchaserequest.ErrInvalidTransition)

	got, err := svc.Get(ctx, pr.ID)
	require.NoError(t, err)
	assert.Equal(t, purchaserequest.StatusApproved, got.Status)
	assert.True(t, got.TotalAmount.Equal(approved.TotalAmount))
	assert.Len(t, got.History, len(approved.History))
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	mem := store.NewMemory(&purchaserequest.PurchaseRequest{
		ID:        id,
		LineItems: []purchaserequest.LineItem{{Description: "Laptop"}},
	})

	got, err := mem.GetPurchaseRequest(ctx, id)
	require.NoError(t, err)

	got.LineItems[0].Description = "mutated"

	again, err := mem.GetPurchaseRequest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", again.LineItems[0].Description)
}

func TestMemory_NotFound(t *testing.T) {
	mem := store.NewMemory()

	_, err := mem.GetPurchaseRequest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, purchaserequest.ErrNotFound)

	_, err = mem.UpdatePurchaseRequest(context.Background(), uuid.New(), func(*purchaserequest.PurchaseRequest) error { return nil })
	assert.ErrorIs(t, err, purchaserequest.ErrNotFound)
}

func TestMemory_ConcurrentSubmitsApplyOnce(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := purchaserequest.NewService(mem, newDirectory())

	pr, err := svc.Create(ctx, createParams())
	require.NoError(t, err)

	const workers = 16

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)

	for range workers {
		wg.Go(func() {
			if _, err := svc.Submit(ctx, pr.ID); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		})
	}

	wg.Wait()

	got, err := svc.Get(ctx, pr.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, success)
	assert.Len(t, got.History, 2)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "acquitrack.db")

	db, err := snapshot.Open(path)
	require.NoError(t, err)

	s, err := store.NewSQLite(ctx, db)
	require.NoError(t, err)

	svc := purchaserequest.NewService(s, newDirectory())

	pr, err := svc.Create(ctx, createParams())
	require.NoError(t, err)

	_, err = svc.Submit(ctx, pr.ID)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = snapshot.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	reopened, err := store.NewSQLite(ctx, db)
	require.NoError(t, err)

	got, err := reopened.GetPurchaseRequest(ctx, pr.ID)
	require.NoError(t, err)
	assert.Equal(t, purchaserequest.StatusSubmitted, got.Status)
	assert.True(t, pr.TotalAmount.Equal(got.TotalAmount))
	assert.Len(t, got.History, 2)

	seq, err := reopened.NextSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, seq)
}

package redisx_test

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/acquitrack/internal/redisx"
)

// Runs against a live server: REDIS_TEST_ADDR=localhost:6379 go test ./internal/redisx
func newStore(t *testing.T) *redisx.IdempotencyStore {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	rdb, err := redisx.Connect(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return redisx.NewIdempotencyStore(rdb, time.Minute)
}

func TestIdempotencyStore_ClaimSaveReplay(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	t.Cleanup(func() { _ = store.Release(ctx, key) })

	resp, err := store.Claim(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, resp)

	_, err = store.Claim(ctx, key)
	assert.ErrorIs(t, err, redisx.ErrInFlight)

	want := redisx.Response{
		Status: http.StatusCreated,
		Header: http.Header{"Content-Type": {"application/json"}},
		Body:   []byte(`{"pr_number":"PR-2025-005"}`),
	}
	require.NoError(t, store.Save(ctx, key, want))

	got, err := store.Claim(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestIdempotencyStore_Release(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	_, err := store.Claim(ctx, key)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, key))

	resp, err := store.Claim(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, resp)

	require.NoError(t, store.Release(ctx, key))
}

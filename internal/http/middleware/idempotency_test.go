package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/acquitrack/internal/http/middleware"
	"github.com/MrJamesThe3rd/acquitrack/internal/redisx"
)

type memoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]*redisx.Response
	down    bool
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{entries: make(map[string]*redisx.Response)}
}

func (s *memoryIdempotencyStore) Claim(_ context.Context, key string) (*redisx.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.down {
		return nil, errors.New("connection refused")
	}

	resp, ok := s.entries[key]
	if !ok {
		s.entries[key] = nil
		return nil, nil
	}

	if resp == nil {
		return nil, redisx.ErrInFlight
	}

	return resp, nil
}

func (s *memoryIdempotencyStore) Save(_ context.Context, key string, resp redisx.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &resp

	return nil
}

func (s *memoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

func countingHandler(calls *int, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"pr_number":"PR-2025-006"}`))
	})
}

func post(h http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/purchase-requests", nil)
	if key != "" {
		req.Header.Set(middleware.HeaderIdempotencyKey, key)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	calls := 0
	h := middleware.Idempotency(newMemoryIdempotencyStore())(countingHandler(&calls, http.StatusCreated))

	first := post(h, "abc")
	second := post(h, "abc")

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(middleware.HeaderReplayed))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
}

func TestIdempotency_Passthrough(t *testing.T) {
	tests := []struct {
		name      string
		store     *memoryIdempotencyStore
		key       string
		status    int
		wantCalls int
	}{
		{name: "NoKey", store: newMemoryIdempotencyStore(), status: http.StatusCreated, wantCalls: 2},
		{name: "ServerErrorReleasesKey", store: newMemoryIdempotencyStore(), key: "abc", status: http.StatusInternalServerError, wantCalls: 2},
		{name: "StoreDown", store: &memoryIdempotencyStore{entries: map[string]*redisx.Response{}, down: true}, key: "abc", status: http.StatusCreated, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			h := middleware.Idempotency(tt.store)(countingHandler(&calls, tt.status))

			post(h, tt.key)
			w := post(h, tt.key)

			assert.Equal(t, tt.wantCalls, calls)
			assert.Empty(t, w.Header().Get(middleware.HeaderReplayed))
		})
	}
}

func TestIdempotency_InFlightConflict(t *testing.T) {
	store := newMemoryIdempotencyStore()

	_, err := store.Claim(context.Background(), "idem:system:POST /api/v1/purchase-requests:abc")
	require.NoError(t, err)

	calls := 0
	w := post(middleware.Idempotency(store)(countingHandler(&calls, http.StatusCreated)), "abc")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Zero(t, calls)
}

func TestIdempotency_PanicReleasesKey(t *testing.T) {
	store := newMemoryIdempotencyStore()

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			panic("store exploded")
		}

		countingHandler(new(int), http.StatusCreated).ServeHTTP(w, r)
	})

	h := chimiddleware.Recoverer(middleware.Idempotency(store)(next))

	first := post(h, "abc")
	assert.Equal(t, http.StatusInternalServerError, first.Code)

	second := post(h, "abc")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, 2, calls)

	third := post(h, "abc")
	assert.Equal(t, "true", third.Header().Get(middleware.HeaderReplayed))
	assert.Equal(t, 2, calls)
}

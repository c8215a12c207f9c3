package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

// state is the full persisted shape of a memory store.
type state struct {
	Seq   int
	Items []*purchaserequest.PurchaseRequest
}

// Memory keeps purchase requests in insertion order behind a RWMutex.
// Every mutation is computed on a clone and swapped in only after commit succeeds.
type Memory struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*purchaserequest.PurchaseRequest
	order  []uuid.UUID
	seq    int
	commit func(ctx context.Context, s state) error
}

// NewMemory returns a store holding copies of seed. The sequence continues after the seed.
func NewMemory(seed ...*purchaserequest.PurchaseRequest) *Memory {
	m := &Memory{byID: make(map[uuid.UUID]*purchaserequest.PurchaseRequest)}
	m.restore(state{Seq: len(seed), Items: seed})

	return m
}

func (m *Memory) restore(s state) {
	m.byID = make(map[uuid.UUID]*purchaserequest.PurchaseRequest, len(s.Items))
	m.order = make([]uuid.UUID, 0, len(s.Items))
	m.seq = s.Seq

	for _, pr := range s.Items {
		if _, dup := m.byID[pr.ID]; dup {
			continue
		}

		m.byID[pr.ID] = pr.Clone()
		m.order = append(m.order, pr.ID)
	}
}

// snapshot must be called with mu held.
func (m *Memory) snapshot(replace *purchaserequest.PurchaseRequest, appendNew bool) state {
	items := make([]*purchaserequest.PurchaseRequest, 0, len(m.order)+1)

	for _, id := range m.order {
		if replace != nil && id == replace.ID && !appendNew {
			items = append(items, replace)
			continue
		}

		items = append(items, m.byID[id])
	}

	if appendNew {
		items = append(items, replace)
	}

	return state{Seq: m.seq, Items: items}
}

func (m *Memory) NextSequence(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++

	return m.seq, nil
}

func (m *Memory) CreatePurchaseRequest(ctx context.Context, pr *purchaserequest.PurchaseRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[pr.ID]; exists {
		return fmt.Errorf("purchase request %s already exists", pr.ID)
	}

	stored := pr.Clone()

	if m.commit != nil {
		if err := m.commit(ctx, m.snapshot(stored, true)); err != nil {
			return fmt.Errorf("persisting purchase request: %w", err)
		}
	}

	m.byID[stored.ID] = stored
	m.order = append(m.order, stored.ID)

	return nil
}

func (m *Memory) GetPurchaseRequest(_ context.Context, id uuid.UUID) (*purchaserequest.PurchaseRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pr, ok := m.byID[id]
	if !ok {
		return nil, purchaserequest.ErrNotFound
	}

	return pr.Clone(), nil
}

func (m *Memory) ListPurchaseRequests(_ context.Context) ([]*purchaserequest.PurchaseRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*purchaserequest.PurchaseRequest, len(m.order))
	for i, id := range m.order {
		out[i] = m.byID[id].Clone()
	}

	return out, nil
}

// UpdatePurchaseRequest runs fn on a private copy under the write lock and keeps the result only if fn succeeds.
func (m *Memory) UpdatePurchaseRequest(
	ctx context.Context,
	id uuid.UUID,
	fn func(pr *purchaserequest.PurchaseRequest) error,
) (*purchaserequest.PurchaseRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.byID[id]
	if !ok {
		return nil, purchaserequest.ErrNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	// The identity of a record never changes.
	next.ID = current.ID
	next.PRNumber = current.PRNumber
	next.CreatedAt = current.CreatedAt

	if m.commit != nil {
		if err := m.commit(ctx, m.snapshot(next, false)); err != nil {
			return nil, fmt.Errorf("persisting purchase request: %w", err)
		}
	}

	m.byID[id] = next

	return next.Clone(), nil
}

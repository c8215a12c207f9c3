package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInFlight is returned by Claim when another request holds the key and has not finished.
var ErrInFlight = errors.New("request with this idempotency key is still in progress")

// Response is a stored HTTP reply replayed for a repeated idempotency key.
type Response struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = TTLIdempotency
	}

	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// Claim reserves key for the caller. It returns the stored response when the key already completed,
// ErrInFlight when it is still pending, or nil and nil when the caller now owns it.
func (s *IdempotencyStore) Claim(ctx context.Context, key string) (*Response, error) {
	ok, err := s.rdb.SetNX(ctx, key, pendingMarker, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("claiming idempotency key: %w", err)
	}

	if ok {
		return nil, nil
	}

	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expired or released between the two calls.
		return s.Claim(ctx, key)
	}

	if err != nil {
		return nil, fmt.Errorf("loading idempotency key: %w", err)
	}

	if string(raw) == pendingMarker {
		return nil, ErrInFlight
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding stored response: %w", err)
	}

	return &resp, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, key string, resp Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}

	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving idempotency key: %w", err)
	}

	return nil
}

// Release frees a claimed key so the request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("releasing idempotency key: %w", err)
	}

	return nil
}

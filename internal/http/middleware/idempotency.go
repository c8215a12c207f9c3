package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MrJamesThe3rd/acquitrack/internal/actor"
	"github.com/MrJamesThe3rd/acquitrack/internal/http/respond"
	"github.com/MrJamesThe3rd/acquitrack/internal/logger"
	"github.com/MrJamesThe3rd/acquitrack/internal/redisx"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// IdempotencyStore is implemented by redisx.IdempotencyStore.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (*redisx.Response, error)
	Save(ctx context.Context, key string, resp redisx.Response) error
	Release(ctx context.Context, key string) error
}

// Idempotency replays the stored response when a POST repeats an Idempotency-Key.
// Keys are scoped per actor and route. Server errors are not stored so the client can retry.
func Idempotency(store IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idemKey := r.Header.Get(HeaderIdempotencyKey)
			if r.Method != http.MethodPost || idemKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := fmt.Sprintf(redisx.KeyIdempotency, actor.FromContext(ctx).ID, r.Method+" "+r.URL.Path, idemKey)

			stored, err := store.Claim(ctx, key)
			switch {
			case errors.Is(err, redisx.ErrInFlight):
				respond.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
				return
			case err != nil:
				// Redis trouble must not take the API down with it.
				logger.WithContext(ctx).Warn("idempotency store unavailable", "error", err)
				next.ServeHTTP(w, r)

				return
			case stored != nil:
				replay(w, stored)
				return
			}

			// The key is freed unless a storable response is produced, including when next panics.
			stored = nil
			defer func() {
				if stored != nil {
					return
				}

				if err := store.Release(context.WithoutCancel(ctx), key); err != nil {
					logger.WithContext(ctx).Warn("releasing idempotency key failed", "error", err)
				}
			}()

			rec := &recorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= http.StatusInternalServerError {
				return
			}

			resp := redisx.Response{Status: rec.status, Header: http.Header{}, Body: rec.body.Bytes()}
			if ct := rec.Header().Get("Content-Type"); ct != "" {
				resp.Header.Set("Content-Type", ct)
			}

			if err := store.Save(context.WithoutCancel(ctx), key, resp); err != nil {
				logger.WithContext(ctx).Warn("saving idempotent response failed", "error", err)
				return
			}

			stored = &resp
		})
	}
}

func replay(w http.ResponseWriter, resp *redisx.Response) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}

	w.Header().Set(HeaderReplayed, "true")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

// recorder tees the response so it can be stored after the handler returns.
type recorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (r *recorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}

	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	r.body.Write(b)

	return r.ResponseWriter.Write(b)
}

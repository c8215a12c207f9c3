package redisx

import "time"

const (
	// Idempotent POST responses: idem:{actor}:{method path}:{Idempotency-Key} -> Response JSON
	KeyIdempotency = "idem:%s:%s:%s"
)

var TTLIdempotency = 24 * time.Hour

// pendingMarker holds an idempotency key while the first request is still running.
const pendingMarker = "pending"

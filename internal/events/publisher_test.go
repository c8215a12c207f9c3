package events_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/acquitrack/internal/events"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

type recordingWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	closed   bool
	release  chan struct{}
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.release != nil {
		<-w.release
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.messages = append(w.messages, msgs...)

	return nil
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true

	return nil
}

func approvedPR() (*purchaserequest.PurchaseRequest, purchaserequest.AuditEntry) {
	entry := purchaserequest.AuditEntry{
		ID:        uuid.New(),
		Action:    purchaserequest.ActionApproved,
		ActorID:   "user-2",
		ActorName: "Sarah Johnson",
		Timestamp: time.Date(2025, 1, 12, 14, 0, 0, 0, time.UTC),
		Details:   "Purchase request approved",
	}

	pr := &purchaserequest.PurchaseRequest{
		ID:           uuid.New(),
		PRNumber:     "PR-2025-001",
		Organization: "Information Technology Division",
		TotalAmount:  decimal.RequireFromString("2500"),
		Status:       purchaserequest.StatusApproved,
		History:      []purchaserequest.AuditEntry{entry},
	}

	return pr, entry
}

func TestPublisher_Notify(t *testing.T) {
	w := &recordingWriter{}
	p := events.NewPublisher(w, "acquitrack-api", 8)
	p.Start()

	pr, entry := approvedPR()
	p.Notify(context.Background(), pr, entry)
	p.Close()

	require.Len(t, w.messages, 1)
	assert.True(t, w.closed)

	msg := w.messages[0]
	assert.Equal(t, pr.ID.String(), string(msg.Key))
	assert.Contains(t, msg.Headers, kafka.Header{Key: "x-event-type", Value: []byte("purchase_request.approved")})

	var env events.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "purchase_request.approved", env.EventType)
	assert.Equal(t, "acquitrack-api", env.Producer)
	assert.Equal(t, pr.ID.String(), env.CorrelationID)
	assert.Equal(t, entry.Timestamp, env.OccurredAt)

	var payload events.AuditPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "PR-2025-001", payload.PRNumber)
	assert.Equal(t, "2500.00", payload.TotalAmount)
	assert.Equal(t, "Sarah Johnson", payload.ActorName)
}

func TestPublisher_DropsWhenFullAndAfterClose(t *testing.T) {
	w := &recordingWriter{release: make(chan struct{})}
	p := events.NewPublisher(w, "acquitrack-api", 1)
	p.Start()

	pr, entry := approvedPR()

	// The first event may be taken by the send loop, so at most two fit before Notify starts dropping.
	for range 5 {
		p.Notify(context.Background(), pr, entry)
	}

	close(w.release)
	p.Close()

	p.Notify(context.Background(), pr, entry)

	assert.LessOrEqual(t, len(w.messages), 2)
	assert.GreaterOrEqual(t, len(w.messages), 1)
}

package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/MrJamesThe3rd/acquitrack/internal/logger"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

// Writer is the subset of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter returns a writer hashing on the message key so one purchase request always lands on one partition.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// Publisher sends purchase request audit events from a background goroutine.
// Notify never blocks the caller: when the buffer is full the event is dropped and logged.
type Publisher struct {
	w        Writer
	producer string
	inbox    chan kafka.Message
	done     chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewPublisher(w Writer, producer string, buffer int) *Publisher {
	return &Publisher{
		w:        w,
		producer: producer,
		inbox:    make(chan kafka.Message, buffer),
		done:     make(chan struct{}),
	}
}

// Start runs the send loop until Close drains the buffer.
func (p *Publisher) Start() {
	go func() {
		defer close(p.done)

		for m := range p.inbox {
			if err := p.w.WriteMessages(context.Background(), m); err != nil {
				slog.Error("publishing event failed", "key", string(m.Key), "error", err)
			}
		}

		if err := p.w.Close(); err != nil {
			slog.Error("closing event writer failed", "error", err)
		}
	}()
}

// Notify implements purchaserequest.Notifier.
func (p *Publisher) Notify(ctx context.Context, pr *purchaserequest.PurchaseRequest, entry purchaserequest.AuditEntry) {
	msg, err := p.message(ctx, pr, entry)
	if err != nil {
		logger.WithContext(ctx).Error("encoding audit event failed", "pr_number", pr.PRNumber, "error", err)
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return
	}

	select {
	case p.inbox <- msg:
	default:
		logger.WithContext(ctx).Warn("event buffer full, dropping audit event",
			"pr_number", pr.PRNumber, "action", entry.Action)
	}
}

// Close stops accepting events, flushes what is buffered and waits for the writer to close.
// Start must have been called.
func (p *Publisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()

	<-p.done
}

func (p *Publisher) message(ctx context.Context, pr *purchaserequest.PurchaseRequest, entry purchaserequest.AuditEntry) (kafka.Message, error) {
	body, err := json.Marshal(newAuditPayload(pr, entry))
	if err != nil {
		return kafka.Message{}, err
	}

	eventType := EventType(entry.Action)

	value, err := json.Marshal(Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  eventVersion,
		OccurredAt:    entry.Timestamp.UTC(),
		Producer:      p.producer,
		TraceID:       middleware.GetReqID(ctx),
		CorrelationID: pr.ID.String(),
		Payload:       body,
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(pr.ID.String()),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(eventType)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}, nil
}

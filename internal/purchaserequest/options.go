package purchaserequest

import (
	"context"
	"time"
)

// Notifier is told about every committed mutation, e.g. to fan audit entries out to a broker.
type Notifier interface {
	Notify(ctx context.Context, pr *PurchaseRequest, entry AuditEntry)
}

// MetricsRecorder observes the duration and outcome of service operations.
type MetricsRecorder interface {
	Observe(op string, d time.Duration, err error)
}

type Option func(*Service)

// WithClock overrides the time source used for timestamps and PR numbers.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, *PurchaseRequest, AuditEntry) {}

type nopMetrics struct{}

func (nopMetrics) Observe(string, time.Duration, error) {}

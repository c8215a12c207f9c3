package actor

import "context"

// Actor identifies who performed a state-changing action.
type Actor struct {
	ID   string
	Name string
}

// System is used when no authenticated user is attached to the context.
var System = Actor{ID: "system", Name: "System"}

type ctxKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the actor stored in ctx, falling back to System.
func FromContext(ctx context.Context) Actor {
	if a, ok := ctx.Value(ctxKey{}).(Actor); ok && a.ID != "" {
		return a
	}

	return System
}

package session

import (
	"context"
	"errors"
)

// ErrNoSessionProvider signals that FromContext was called on a context
// that never had a store attached. It is a programming fault.
var ErrNoSessionProvider = errors.New("session: store accessed outside its provider")

type contextKey struct{}

// WithStore attaches s to ctx.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the store attached by WithStore and panics when
// there is none.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(contextKey{}).(*Store)
	if !ok || s == nil {
		panic(ErrNoSessionProvider)
	}
	return s
}

package ports

import "context"

// KeyValueStore is the durable persistence port behind the session slot.
// Writes must be durable when the call returns.
type KeyValueStore interface {
	// Get returns domain.ErrKeyNotFound when key has no value.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove is a no-op for a missing key.
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

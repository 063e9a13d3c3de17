// Package kv defines the durable key-value slot the storefront persists its
// session state into, together with the sqlite, redis and in-memory stores
// that implement it. The in-memory cart remains the source of truth; every
// caller treats a failing store as a cache miss, never as a fatal condition.
package kv

import "context"

// Keys the storefront writes. Nothing else touches the slot namespace.
const (
	KeyCart = "cart"
	KeyUser = "user"
)

// Store is the persistence adapter contract.
type Store interface {
	// Read returns the value at key and whether the key was present.
	Read(ctx context.Context, key string) (string, bool, error)
	// Write stores value at key, replacing any previous value.
	Write(ctx context.Context, key, value string) error
	// Remove deletes the key itself. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

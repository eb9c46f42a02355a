package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer so implementations
// (Redis, in-memory for tests) can be swapped.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}

// PubSub is the change-feed side of the cache backend. Chat message
// inserts are fanned out through it to streaming subscribers.
type PubSub interface {
	Publish(ctx context.Context, channel string, payload interface{}) error

	// Subscribe delivers raw payloads published on channel until ctx is
	// cancelled. The returned channel is closed on cancellation.
	Subscribe(ctx context.Context, channel string) (<-chan string, error)
}

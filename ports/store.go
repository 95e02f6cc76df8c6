package ports

import (
	"context"
	"time"
)

// Store is a shared key-value store with per-key expiry, used for nonce and
// OTP challenges.
type Store interface {
	// Get returns the value for key, with ok false when the key is absent
	// or expired.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes the value, replacing any existing entry and its TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// CompareAndDelete removes the key only if it still holds expected, as
	// a single atomic step. Returns whether the key was deleted.
	CompareAndDelete(ctx context.Context, key, expected string) (bool, error)
}

// Package store provides ephemeral key-value backends for nonce and OTP
// challenges.
package store

import "github.com/janus-id/janus/ports"

var (
	_ ports.Store = (*RedisStore)(nil)
	_ ports.Store = (*MemoryStore)(nil)
)

// Package directory provides user-record backends.
package directory

import "github.com/janus-id/janus/ports"

var (
	_ ports.UserDirectory = (*PostgresDirectory)(nil)
	_ ports.UserDirectory = (*MemoryDirectory)(nil)
)

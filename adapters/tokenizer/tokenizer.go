// Package tokenizer provides the JWT session-token backend.
package tokenizer

import "github.com/janus-id/janus/ports"

var _ ports.Tokenizer = (*JWTTokenizer)(nil)

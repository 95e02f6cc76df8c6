package ports

import "github.com/janus-id/janus/core"

// Tokenizer converts between user identity and signed bearer tokens.
type Tokenizer interface {
	IssueSessionToken(user *core.User) (string, error)
	VerifySessionToken(token string) (*core.SessionClaims, error)
}

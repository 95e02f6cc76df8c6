package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionTokenClaims combines standard claims with the identity fields
// embedded in an access token.
type SessionTokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

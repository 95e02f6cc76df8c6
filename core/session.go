package core

// SessionClaims are the identity claims embedded in an access token. They
// are a cache of the user record, not the source of truth; callers re-fetch
// the live user before trusting anything beyond identity.
type SessionClaims struct {
	UserID   string
	Username string
	Email    string
}

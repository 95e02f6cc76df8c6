package core

import "fmt"

// NonceChallenge is the ephemeral record stored per wallet address while a
// signature login is in flight.
type NonceChallenge struct {
	Nonce    string `json:"nonce"`
	IssuedAt int64  `json:"issued_at"`
}

// LoginMessage is the exact text a wallet signs to prove ownership during
// login or registration. Verification reconstructs it byte for byte, so any
// deviation on the client side fails.
func LoginMessage(walletAddress, nonce string) string {
	return fmt.Sprintf("Verify wallet ownership: %s\nNonce: %s", walletAddress, nonce)
}

// ConnectMessage is the exact text signed when linking a wallet to an
// existing account. Scoping it to the user id keeps a login signature from
// being replayed into a link.
func ConnectMessage(userID, nonce string) string {
	return fmt.Sprintf("Connect wallet to user account: %s\nNonce: %s", userID, nonce)
}

package service

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/janus-id/janus/core"
)

// VerifyWalletSignature checks a detached Ed25519 signature over message.
// The wallet address doubles as the base58-encoded public key. Malformed
// encodings fail with InvalidInput so callers can tell a bad request from a
// signature mismatch; a well-formed but wrong signature returns false.
func VerifyWalletSignature(walletAddress, signature, message string) (bool, error) {
	publicKey, err := base58.Decode(walletAddress)
	if err != nil {
		return false, core.Errf(core.KindInvalidInput, "wallet address is not valid base58")
	}
	if len(publicKey) != ed25519.PublicKeySize {
		return false, core.Errf(core.KindInvalidInput, "wallet address must decode to a 32-byte public key")
	}

	sig, err := base58.Decode(signature)
	if err != nil {
		return false, core.Errf(core.KindInvalidInput, "signature is not valid base58")
	}
	if len(sig) != ed25519.SignatureSize {
		return false, core.Errf(core.KindInvalidInput, "signature must decode to 64 bytes")
	}

	return ed25519.Verify(ed25519.PublicKey(publicKey), []byte(message), sig), nil
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/janus-id/janus/core"
)

const noncePrefix = "nonce:"

// IssueNonce generates a fresh challenge nonce for the wallet address,
// replacing any previous one. At most one nonce is live per wallet.
func (s *AuthService) IssueNonce(ctx context.Context, walletAddress string) (string, error) {
	if walletAddress == "" {
		return "", core.Errf(core.KindInvalidInput, "wallet address is required")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", core.Wrap(core.KindInternal, err, "generate nonce")
	}

	challenge := core.NonceChallenge{
		Nonce:    hex.EncodeToString(buf),
		IssuedAt: s.now().Unix(),
	}

	raw, err := json.Marshal(challenge)
	if err != nil {
		return "", core.Wrap(core.KindInternal, err, "encode nonce")
	}

	if err := s.store.Set(ctx, noncePrefix+walletAddress, string(raw), s.nonceTTL); err != nil {
		return "", core.Wrap(core.KindInternal, err, "store nonce")
	}

	return challenge.Nonce, nil
}

// peekNonce returns the live nonce for the wallet without consuming it.
// Deleting only after full verification succeeds lets a client retry a
// failed attempt against the same nonce. The raw stored value is returned
// so the caller can atomically delete the exact entry it verified against.
func (s *AuthService) peekNonce(ctx context.Context, walletAddress string) (nonce, raw string, err error) {
	val, ok, err := s.store.Get(ctx, noncePrefix+walletAddress)
	if err != nil {
		return "", "", core.Wrap(core.KindInternal, err, "load nonce")
	}
	if !ok {
		return "", "", core.Errf(core.KindNotFound, "no nonce found for this wallet, request a new one")
	}

	var challenge core.NonceChallenge
	if err := json.Unmarshal([]byte(val), &challenge); err != nil {
		return "", "", core.Wrap(core.KindInternal, err, "decode nonce")
	}

	if s.now().Sub(time.Unix(challenge.IssuedAt, 0)) > s.nonceTTL {
		if err := s.store.Delete(ctx, noncePrefix+walletAddress); err != nil {
			s.logger.Warn("delete stale nonce", "wallet", walletAddress, "error", err)
		}
		return "", "", core.Errf(core.KindExpired, "nonce has expired, request a new one")
	}

	return challenge.Nonce, val, nil
}

// burnNonce consumes the verified nonce entry. Compare-and-delete keeps two
// concurrent verifications from both consuming the same nonce; the loser
// sees NotFound.
func (s *AuthService) burnNonce(ctx context.Context, walletAddress, raw string) error {
	deleted, err := s.store.CompareAndDelete(ctx, noncePrefix+walletAddress, raw)
	if err != nil {
		return core.Wrap(core.KindInternal, err, "consume nonce")
	}
	if !deleted {
		return core.Errf(core.KindNotFound, "nonce already used, request a new one")
	}
	return nil
}

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/janus-id/janus/core"
)

// LoginWithWallet authenticates a wallet by verifying its signature over
// the login challenge. Unknown wallets are registered on the spot, which
// requires a username. The nonce is consumed only after the signature
// checks out, so a failed attempt can retry against the same nonce.
func (s *AuthService) LoginWithWallet(ctx context.Context, username, email, walletAddress, signature string) (*core.User, string, error) {
	if walletAddress == "" || signature == "" {
		return nil, "", core.Errf(core.KindInvalidInput, "wallet address and signature are required")
	}

	nonce, raw, err := s.peekNonce(ctx, walletAddress)
	if err != nil {
		return nil, "", err
	}

	ok, err := VerifyWalletSignature(walletAddress, signature, core.LoginMessage(walletAddress, nonce))
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", core.Errf(core.KindUnauthorized, "invalid signature")
	}

	user, err := s.users.FindByWalletAddress(ctx, walletAddress)
	switch {
	case err == nil:
	case core.KindOf(err) == core.KindNotFound:
		newUser, err := core.NewWalletUser(uuid.New().String(), username, email, walletAddress, s.now())
		if err != nil {
			return nil, "", err
		}
		user, err = s.users.Insert(ctx, newUser)
		if err != nil {
			return nil, "", err
		}
	default:
		return nil, "", err
	}

	if err := s.burnNonce(ctx, walletAddress, raw); err != nil {
		return nil, "", err
	}

	token, err := s.tokenizer.IssueSessionToken(user)
	if err != nil {
		return nil, "", core.Wrap(core.KindInternal, err, "issue session token")
	}

	return user, token, nil
}

// ConnectWallet links a wallet to an existing account after verifying the
// linking challenge. The challenge message is scoped to the user id, so a
// login signature cannot be replayed here.
func (s *AuthService) ConnectWallet(ctx context.Context, userID, walletAddress, signature string) (*core.User, error) {
	if walletAddress == "" || signature == "" {
		return nil, core.Errf(core.KindInvalidInput, "wallet address and signature are required")
	}

	nonce, raw, err := s.peekNonce(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	ok, err := VerifyWalletSignature(walletAddress, signature, core.ConnectMessage(userID, nonce))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.Errf(core.KindUnauthorized, "invalid signature")
	}

	user, err := s.users.Update(ctx, userID, core.UserPatch{WalletAddress: &walletAddress})
	if err != nil {
		return nil, err
	}

	if err := s.burnNonce(ctx, walletAddress, raw); err != nil {
		return nil, err
	}

	return user, nil
}

// UserByWallet returns the account registered for a wallet address.
func (s *AuthService) UserByWallet(ctx context.Context, walletAddress string) (*core.User, error) {
	if walletAddress == "" {
		return nil, core.Errf(core.KindInvalidInput, "wallet address is required")
	}
	return s.users.FindByWalletAddress(ctx, walletAddress)
}

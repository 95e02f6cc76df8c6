package core

import (
	"strings"
	"time"
)

// User is an identity record. Accounts come in three shapes: credential
// (password hash set), wallet (wallet address set), or linked (both). The
// constructors below enforce that at least one credential is present, so a
// record with neither cannot be built.
type User struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string
	WalletAddress string
	Verified      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCredentialUser builds an email/password account. The account starts
// unverified and cannot sign in until the OTP flow completes.
func NewCredentialUser(id, username, email, passwordHash string, now time.Time) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || email == "" || passwordHash == "" {
		return nil, Errf(KindInvalidInput, "username, email and password are required")
	}
	return &User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewWalletUser builds a wallet-only account. Ownership of the wallet was
// already proven by signature, so the account is created verified. Email is
// optional for this shape.
func NewWalletUser(id, username, email, walletAddress string, now time.Time) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, Errf(KindInvalidInput, "username is required for registration")
	}
	if walletAddress == "" {
		return nil, Errf(KindInvalidInput, "wallet address is required")
	}
	return &User{
		ID:            id,
		Username:      username,
		Email:         email,
		WalletAddress: walletAddress,
		Verified:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// HasPassword reports whether the account can use the password login mode.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// HasWallet reports whether the account has a linked wallet.
func (u *User) HasWallet() bool {
	return u.WalletAddress != ""
}

// UserPatch is a partial update applied to a user record. Nil fields are
// left untouched.
type UserPatch struct {
	WalletAddress *string
	PasswordHash  *string
	Verified      *bool
}

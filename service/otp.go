package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"math/rand"
	"strings"

	"github.com/janus-id/janus/core"
)

const (
	otpPrefix = "otp:"
	otpDigits = 6
)

// generateOTP returns a uniformly random numeric code of the given length.
// Numeric codes are low entropy by construction, so the store TTL and
// single-use consumption carry the security weight, not the generator.
func generateOTP(digits int) string {
	bound := int64(1)
	for i := 0; i < digits; i++ {
		bound *= 10
	}
	return fmt.Sprintf("%0*d", digits, rand.Int63n(bound))
}

// IssueOTP generates a verification code for the user and emails it. Any
// previous code for the same username is replaced. A failed email send is
// logged but does not fail the operation; the user can request a resend.
func (s *AuthService) IssueOTP(ctx context.Context, username, email string) error {
	code := generateOTP(otpDigits)

	if err := s.store.Set(ctx, otpPrefix+username, code, s.otpTTL); err != nil {
		return core.Wrap(core.KindInternal, err, "store otp")
	}

	if err := s.notifier.SendOTPEmail(ctx, email, username, code); err != nil {
		s.logger.Warn("send otp email", "username", username, "error", err)
	}

	return nil
}

// VerifyOTP checks the submitted code, marks the user verified and sends
// the welcome email. Codes are single use: the winning verification deletes
// the entry atomically, so a replay of the same code fails with NotFound.
func (s *AuthService) VerifyOTP(ctx context.Context, username, code string) (*core.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || code == "" {
		return nil, core.Errf(core.KindInvalidInput, "username and otp are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	stored, ok, err := s.store.Get(ctx, otpPrefix+username)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, err, "load otp")
	}
	if !ok {
		return nil, core.Errf(core.KindNotFound, "otp expired or not found, request a new one")
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return nil, core.Errf(core.KindMismatch, "invalid otp")
	}

	deleted, err := s.store.CompareAndDelete(ctx, otpPrefix+username, stored)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, err, "consume otp")
	}
	if !deleted {
		return nil, core.Errf(core.KindNotFound, "otp expired or not found, request a new one")
	}

	verified := true
	user, err = s.users.Update(ctx, user.ID, core.UserPatch{Verified: &verified})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendWelcomeEmail(ctx, user.Email, user.Username); err != nil {
		s.logger.Warn("send welcome email", "username", user.Username, "error", err)
	}

	return user, nil
}

// ResendOTP issues a fresh code for the user, unconditionally replacing any
// live one. Resends are not rate limited.
func (s *AuthService) ResendOTP(ctx context.Context, username string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return core.Errf(core.KindInvalidInput, "username is required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.IssueOTP(ctx, user.Username, user.Email)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janus-id/janus/core"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := generateOTP(otpDigits)
		require.Len(t, code, otpDigits)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "otp must be numeric, got %q", code)
		}
	}
}

func TestVerifyOTPHappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.svc.SignUp(ctx, "bob", "bob@x.com", "secret1")
	require.NoError(t, err)
	assert.False(t, user.Verified)

	otp := env.notifier.lastOTP(t)
	assert.Equal(t, "bob@x.com", otp.Email)

	verified, err := env.svc.VerifyOTP(ctx, "bob", otp.Code)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	// Welcome email goes out on successful verification.
	require.Len(t, env.notifier.welcomes, 1)
	assert.Equal(t, "bob@x.com", env.notifier.welcomes[0].Email)
}

func TestVerifyOTPMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.SignUp(ctx, "bob", "bob@x.com", "secret1")
	require.NoError(t, err)
	otp := env.notifier.lastOTP(t)

	wrong := "000000"
	if wrong == otp.Code {
		wrong = "000001"
	}

	_, err = env.svc.VerifyOTP(ctx, "bob", wrong)
	require.Error(t, err)
	assert.Equal(t, core.KindMismatch, core.KindOf(err))

	// The right code still works after a failed guess.
	verified, err := env.svc.VerifyOTP(ctx, "bob", otp.Code)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
}

func TestVerifyOTPSingleUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.SignUp(ctx, "bob", "bob@x.com", "secret1")
	require.NoError(t, err)
	otp := env.notifier.lastOTP(t)

	_, err = env.svc.VerifyOTP(ctx, "bob", otp.Code)
	require.NoError(t, err)

	_, err = env.svc.VerifyOTP(ctx, "bob", otp.Code)
	require.Error(t, err)
	assert.Equal(t, core.KindNotFound, core.KindOf(err))
}

func TestVerifyOTPExpired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.SignUp(ctx, "bob", "bob@x.com", "secret1")
	require.NoError(t, err)
	otp := env.notifier.lastOTP(t)

	env.clock.Advance(DefaultOTPTTL + time.Second)

	_, err = env.svc.VerifyOTP(ctx, "bob", otp.Code)
	require.Error(t, err)
	assert.Equal(t, core.KindNotFound, core.KindOf(err))
}

func TestVerifyOTPUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.VerifyOTP(context.Background(), "ghost", "123456")
	require.Error(t, err)
	assert.Equal(t, core.KindNotFound, core.KindOf(err))
}

func TestResendOTPReplacesCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.SignUp(ctx, "bob", "bob@x.com", "secret1")
	require.NoError(t, err)
	first := env.notifier.lastOTP(t)

	require.NoError(t, env.svc.ResendOTP(ctx, "bob"))
	second := env.notifier.lastOTP(t)

	if first.Code != second.Code {
		// The old code is dead once a new one is issued.
		_, err = env.svc.VerifyOTP(ctx, "bob", first.Code)
		require.Error(t, err)
		assert.Equal(t, core.KindMismatch, core.KindOf(err))
	}

	verified, err := env.svc.VerifyOTP(ctx, "bob", second.Code)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
}

func TestResendOTPUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.ResendOTP(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, core.KindNotFound, core.KindOf(err))
}

func TestSignUpSucceedsWhenEmailSendFails(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.otpErr = errors.New("smtp down")
	ctx := context.Background()

	user, err := env.svc.SignUp(ctx, "bob", "bob@x.com", "secret1")
	require.NoError(t, err)
	assert.False(t, user.Verified)

	// The code was stored even though delivery failed, so a resend (with
	// mail restored) lets the user finish verification.
	env.notifier.otpErr = nil
	require.NoError(t, env.svc.ResendOTP(ctx, "bob"))
	otp := env.notifier.lastOTP(t)

	_, err = env.svc.VerifyOTP(ctx, "bob", otp.Code)
	require.NoError(t, err)
}

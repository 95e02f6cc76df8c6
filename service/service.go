package service

import (
	"log/slog"
	"time"

	"github.com/janus-id/janus/ports"
)

const (
	// DefaultNonceTTL is how long a wallet challenge nonce stays valid.
	DefaultNonceTTL = 5 * time.Minute

	// DefaultOTPTTL is how long an email verification code stays valid.
	DefaultOTPTTL = 5 * time.Minute
)

// AuthService implements the authentication core: wallet-signature login,
// email/password signup with OTP verification, and session issuance. It is
// stateless per request; all shared state lives in the ephemeral store and
// the user directory.
type AuthService struct {
	store     ports.Store
	users     ports.UserDirectory
	tokenizer ports.Tokenizer
	notifier  ports.Notifier
	logger    *slog.Logger

	nonceTTL time.Duration
	otpTTL   time.Duration

	now func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store ports.Store,
	users ports.UserDirectory,
	tokenizer ports.Tokenizer,
	notifier ports.Notifier,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:     store,
		users:     users,
		tokenizer: tokenizer,
		notifier:  notifier,
		logger:    logger,
		nonceTTL:  DefaultNonceTTL,
		otpTTL:    DefaultOTPTTL,
		now:       time.Now,
	}
}

// WithClock overrides the internal clock, used in tests.
func (s *AuthService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

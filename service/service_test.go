package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"sync"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/janus-id/janus/adapters/directory"
	"github.com/janus-id/janus/adapters/store"
	"github.com/janus-id/janus/adapters/tokenizer"
	"github.com/janus-id/janus/logging"
)

// testClock is a manually advanced clock shared by the service and the
// ephemeral store, so TTL expiry can be tested without sleeping.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Now()}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type sentOTP struct {
	Email    string
	Username string
	Code     string
}

type sentWelcome struct {
	Email    string
	Username string
}

// captureNotifier records notifications and can be told to fail, to check
// that delivery problems never fail the triggering request.
type captureNotifier struct {
	mu       sync.Mutex
	otps     []sentOTP
	welcomes []sentWelcome
	otpErr   error
}

func (n *captureNotifier) SendOTPEmail(_ context.Context, email, username, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.otpErr != nil {
		return n.otpErr
	}
	n.otps = append(n.otps, sentOTP{Email: email, Username: username, Code: code})
	return nil
}

func (n *captureNotifier) SendWelcomeEmail(_ context.Context, email, username string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, sentWelcome{Email: email, Username: username})
	return nil
}

func (n *captureNotifier) lastOTP(t *testing.T) sentOTP {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.otps, "no otp email was sent")
	return n.otps[len(n.otps)-1]
}

type testEnv struct {
	svc      *AuthService
	store    *store.MemoryStore
	users    *directory.MemoryDirectory
	notifier *captureNotifier
	clock    *testClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := newTestClock()

	kv := store.NewMemoryStore()
	kv.WithClock(clock.Now)

	users := directory.NewMemoryDirectory()
	notifier := &captureNotifier{}
	tk := tokenizer.NewJWTTokenizer([]byte("test-secret"))

	svc := NewAuthService(kv, users, tk, notifier, logging.Discard())
	svc.WithClock(clock.Now)

	return &testEnv{svc: svc, store: kv, users: users, notifier: notifier, clock: clock}
}

// testWallet is an Ed25519 keypair in the wire encoding clients use.
type testWallet struct {
	Address string
	priv    ed25519.PrivateKey
}

func newTestWallet(t *testing.T) *testWallet {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	return &testWallet{Address: base58.Encode(pub), priv: priv}
}

func (w *testWallet) Sign(message string) string {
	return base58.Encode(ed25519.Sign(w.priv, []byte(message)))
}

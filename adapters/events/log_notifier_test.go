package events

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifierWritesEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	n := NewLogNotifier(logger)

	ctx := context.Background()
	require.NoError(t, n.SendOTPEmail(ctx, "bob@x.com", "bob", "123456"))
	require.NoError(t, n.SendWelcomeEmail(ctx, "bob@x.com", "bob"))

	out := buf.String()
	assert.Contains(t, out, "otp email")
	assert.Contains(t, out, "123456")
	assert.Contains(t, out, "welcome email")
}

package ports

import "context"

// Notifier delivers out-of-band messages to users. Callers log failures and
// carry on; a broken mail pipeline must not fail the triggering request.
type Notifier interface {
	SendOTPEmail(ctx context.Context, email, username, code string) error
	SendWelcomeEmail(ctx context.Context, email, username string) error
}

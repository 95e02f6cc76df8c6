package events

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to the structured logger instead of
// delivering them. Used in development and tests.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a new logging notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendOTPEmail logs the OTP email instead of sending it.
func (n *LogNotifier) SendOTPEmail(ctx context.Context, email, username, code string) error {
	n.logger.Info("otp email", "email", email, "username", username, "code", code)
	return nil
}

// SendWelcomeEmail logs the welcome email instead of sending it.
func (n *LogNotifier) SendWelcomeEmail(ctx context.Context, email, username string) error {
	n.logger.Info("welcome email", "email", email, "username", username)
	return nil
}

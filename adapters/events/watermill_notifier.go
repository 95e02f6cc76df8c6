package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Topics for outbound email events. A delivery worker consumes these and
// renders and sends the actual email; template rendering and SMTP live
// outside this service.
const (
	TopicOTPEmail     = "janus.email.otp"
	TopicWelcomeEmail = "janus.email.welcome"
)

// OTPEmailEvent asks the mail worker to deliver a verification code.
type OTPEmailEvent struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Code     string `json:"code"`
}

// WelcomeEmailEvent asks the mail worker to deliver the welcome email.
type WelcomeEmailEvent struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// WatermillNotifier implements the Notifier interface by publishing email
// events to a message stream.
type WatermillNotifier struct {
	publisher message.Publisher
}

// NewWatermillNotifier creates a new Watermill-backed notifier.
func NewWatermillNotifier(publisher message.Publisher) *WatermillNotifier {
	return &WatermillNotifier{publisher: publisher}
}

// SendOTPEmail publishes an OTP email event.
func (n *WatermillNotifier) SendOTPEmail(ctx context.Context, email, username, code string) error {
	return n.publish(TopicOTPEmail, OTPEmailEvent{
		Email:    email,
		Username: username,
		Code:     code,
	})
}

// SendWelcomeEmail publishes a welcome email event.
func (n *WatermillNotifier) SendWelcomeEmail(ctx context.Context, email, username string) error {
	return n.publish(TopicWelcomeEmail, WelcomeEmailEvent{
		Email:    email,
		Username: username,
	})
}

func (n *WatermillNotifier) publish(topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := n.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}

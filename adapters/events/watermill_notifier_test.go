package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillNotifierPublishesOTPEmail(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx := context.Background()
	messages, err := pubSub.Subscribe(ctx, TopicOTPEmail)
	require.NoError(t, err)

	n := NewWatermillNotifier(pubSub)
	require.NoError(t, n.SendOTPEmail(ctx, "bob@x.com", "bob", "123456"))

	select {
	case msg := <-messages:
		var event OTPEmailEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, "bob@x.com", event.Email)
		assert.Equal(t, "bob", event.Username)
		assert.Equal(t, "123456", event.Code)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no otp email event published")
	}
}

func TestWatermillNotifierPublishesWelcomeEmail(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx := context.Background()
	messages, err := pubSub.Subscribe(ctx, TopicWelcomeEmail)
	require.NoError(t, err)

	n := NewWatermillNotifier(pubSub)
	require.NoError(t, n.SendWelcomeEmail(ctx, "bob@x.com", "bob"))

	select {
	case msg := <-messages:
		var event WelcomeEmailEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, "bob@x.com", event.Email)
		assert.Equal(t, "bob", event.Username)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no welcome email event published")
	}
}

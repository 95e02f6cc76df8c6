// Package events provides notifier backends for outbound email.
package events

import "github.com/janus-id/janus/ports"

var (
	_ ports.Notifier = (*WatermillNotifier)(nil)
	_ ports.Notifier = (*LogNotifier)(nil)
)

package notify

import "context"

// Notifier defines the interface for fire-and-forget user notifications.
// Failures are logged by callers and never abort the work that triggered
// the notification.
type Notifier interface {
	Send(ctx context.Context, email, subject, body string) error
}

// NoOpNotifier is a notifier that does nothing.
type NoOpNotifier struct{}

// Send does nothing.
func (n *NoOpNotifier) Send(ctx context.Context, email, subject, body string) error {
	return nil
}

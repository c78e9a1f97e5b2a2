package notify

import "context"

// Notifier delivers a short text to a phone number. Implementations may fail;
// callers treat delivery as best-effort.
type Notifier interface {
	Send(ctx context.Context, phoneNumber, text string) error
}

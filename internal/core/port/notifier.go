package port

import "context"

// Notifier delivers human-readable messages to users, best effort. Both
// operations return as soon as the message is enqueued; delivery failures
// are logged and discarded, never reported to the caller.
type Notifier interface {
	Notify(ctx context.Context, telegramID int64, text string)
	Broadcast(ctx context.Context, text string)
}

package memory

import (
	"context"
	"sync"

	"github.com/bornholm/taskhub/internal/core/port"
)

type Message struct {
	TelegramID int64
	Text       string
}

// Notifier records messages instead of delivering them.
type Notifier struct {
	mutex    sync.Mutex
	messages []Message
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

var _ port.Notifier = &Notifier{}

// Notify implements port.Notifier.
func (n *Notifier) Notify(ctx context.Context, telegramID int64, text string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.messages = append(n.messages, Message{TelegramID: telegramID, Text: text})
}

// Broadcast implements port.Notifier.
func (n *Notifier) Broadcast(ctx context.Context, text string) {
	n.Notify(ctx, 0, text)
}

// Messages returns a snapshot of everything recorded so far.
func (n *Notifier) Messages() []Message {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	return append([]Message{}, n.messages...)
}

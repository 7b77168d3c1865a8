package telegram

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/bornholm/taskhub/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Sender delivers a single message to a Telegram chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type message struct {
	telegramID int64
	text       string
}

// Notifier is a best-effort port.Notifier backed by a bounded queue and a
// small pool of delivery workers. A full queue or a failed send is counted
// and logged, never surfaced to the caller.
type Notifier struct {
	sender  Sender
	users   port.UserStore
	queue   chan message
	workers int

	sendTimeout time.Duration
}

func NewNotifier(sender Sender, users port.UserStore) *Notifier {
	return &Notifier{
		sender:      sender,
		users:       users,
		queue:       make(chan message, 256),
		workers:     4,
		sendTimeout: 10 * time.Second,
	}
}

var _ port.Notifier = &Notifier{}

// Notify implements port.Notifier.
func (n *Notifier) Notify(ctx context.Context, telegramID int64, text string) {
	select {
	case n.queue <- message{telegramID: telegramID, text: text}:
	default:
		metrics.Notifications.With(prometheus.Labels{metrics.LabelResult: metrics.ResultDropped}).Inc()
		slog.WarnContext(ctx, "notification queue full, dropping message", slog.Int64("telegramID", telegramID))
	}
}

// Broadcast implements port.Notifier. Recipients are enumerated in the
// background so the triggering request never waits on the user listing;
// each recipient is enqueued independently.
func (n *Notifier) Broadcast(ctx context.Context, text string) {
	go func() {
		ctx := context.Background()

		users, err := n.users.QueryUsers(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "could not enumerate broadcast recipients", slog.Any("error", errors.WithStack(err)))
			return
		}

		for _, u := range users {
			n.Notify(ctx, u.TelegramID, text)
		}
	}()
}

// Run consumes the queue until the context is canceled.
func (n *Notifier) Run(ctx context.Context) error {
	for range n.workers {
		go n.work(ctx)
	}

	<-ctx.Done()

	return errors.WithStack(ctx.Err())
}

func (n *Notifier) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-n.queue:
			sendCtx, cancel := context.WithTimeout(ctx, n.sendTimeout)

			if err := n.sender.SendMessage(sendCtx, msg.telegramID, msg.text); err != nil {
				metrics.Notifications.With(prometheus.Labels{metrics.LabelResult: metrics.ResultFailed}).Inc()
				slog.WarnContext(ctx, "could not deliver notification", slog.Int64("telegramID", msg.telegramID), slog.Any("error", errors.WithStack(err)))
			} else {
				metrics.Notifications.With(prometheus.Labels{metrics.LabelResult: metrics.ResultSent}).Inc()
			}

			cancel()
		}
	}
}

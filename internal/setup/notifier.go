package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/taskhub/internal/config"
	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/bornholm/taskhub/internal/metrics"
	"github.com/bornholm/taskhub/internal/telegram"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var getNotifierFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.Notifier, error) {
	bot, err := getBotFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	notifier := telegram.NewNotifier(bot, store)

	go func() {
		notifierCtx := context.Background()
		backoff := time.Second
		for {
			start := time.Now()
			if err := notifier.Run(notifierCtx); err != nil {
				slog.ErrorContext(notifierCtx, "error while running notifier", slog.Any("error", errors.WithStack(err)))
			}
			time.Sleep(backoff)
			if time.Since(start) > backoff/2 {
				backoff = time.Second
			} else {
				backoff *= 2
			}
		}
	}()

	// Collect task metrics
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		ctx := context.Background()
		for {
			tasks, err := store.QueryTasks(ctx, port.QueryTasksOptions{})
			if err != nil {
				slog.ErrorContext(ctx, "could not list tasks", slog.Any("error", errors.WithStack(err)))
				<-ticker.C
				continue
			}

			stats := map[string]float64{}
			for _, t := range tasks {
				stats[string(t.Status)] += 1
			}

			for status, total := range stats {
				metrics.Tasks.With(prometheus.Labels{
					metrics.LabelStatus: status,
				}).Set(total)
			}

			<-ticker.C
		}
	}()

	return notifier, nil
})

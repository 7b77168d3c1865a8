package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/taskhub/internal/config"
	"github.com/bornholm/taskhub/internal/telegram"
	"github.com/pkg/errors"
)

var getBotFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*telegram.Bot, error) {
	directory, err := getDirectoryFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	bot, err := telegram.NewBot(conf.Telegram.BotToken, directory, conf.Telegram.WebAppURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	go func() {
		botCtx := context.Background()
		backoff := time.Second
		for {
			start := time.Now()
			if err := bot.Run(botCtx); err != nil {
				slog.ErrorContext(botCtx, "error while running bot", slog.Any("error", errors.WithStack(err)))
			}
			time.Sleep(backoff)
			if time.Since(start) > backoff/2 {
				backoff = time.Second
			} else {
				backoff *= 2
			}
		}
	}()

	return bot, nil
})

package telegram

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bornholm/taskhub/internal/core/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pkg/errors"
)

// Bot is the messaging front door: it answers /start with a button
// launching the web app, and doubles as the notifier's message sender.
type Bot struct {
	bot       *bot.Bot
	directory *service.Directory
	webAppURL string
}

func NewBot(token string, directory *service.Directory, webAppURL string) (*Bot, error) {
	b := &Bot{
		directory: directory,
		webAppURL: webAppURL,
	}

	tgBot, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	tgBot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, b.handleStart)

	b.bot = tgBot

	return b, nil
}

var _ Sender = &Bot{}

// Run starts long polling until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.bot.Start(ctx)
	return nil
}

// SendMessage implements Sender.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := b.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (b *Bot) handleStart(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From
	fullName := strings.TrimSpace(from.FirstName + " " + from.LastName)

	if _, err := b.directory.ResolveOrCreate(ctx, from.ID, fullName); err != nil {
		slog.ErrorContext(ctx, "could not resolve user", slog.Any("error", errors.WithStack(err)))
		return
	}

	_, err := tgBot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "Task Manager:",
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{
					{
						Text:   "Open App",
						WebApp: &models.WebAppInfo{URL: b.webAppURL},
					},
				},
			},
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "could not send start reply", slog.Any("error", errors.WithStack(err)))
	}
}

package setup

import (
	"context"

	"github.com/bornholm/taskhub/internal/config"
	"github.com/bornholm/taskhub/internal/http/handler/api"
	"github.com/pkg/errors"
)

func getAPIHandlerFromConfig(ctx context.Context, conf *config.Config) (*api.Handler, error) {
	directory, err := getDirectoryFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	lifecycle, err := getLifecycleFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create lifecycle service from config")
	}

	announcer, err := getAnnouncerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create announcer service from config")
	}

	handler := api.NewHandler(directory, lifecycle, announcer, conf.Telegram.BotToken)

	return handler, nil
}

package setup

import (
	"context"

	"github.com/bornholm/taskhub/internal/config"
	"github.com/bornholm/taskhub/internal/core/service"
	"github.com/pkg/errors"
)

var getDirectoryFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.Directory, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewDirectory(store, conf.Telegram.OwnerID), nil
})

var getLifecycleFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.Lifecycle, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	notifier, err := getNotifierFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewLifecycle(store, notifier), nil
})

var getAnnouncerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.Announcer, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	notifier, err := getNotifierFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewAnnouncer(store, notifier), nil
})

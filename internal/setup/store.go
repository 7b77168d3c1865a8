package setup

import (
	"context"

	gormAdapter "github.com/bornholm/taskhub/internal/adapter/gorm"
	"github.com/bornholm/taskhub/internal/config"
	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/pkg/errors"
)

var getStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.Store, error) {
	db, err := getGormDatabaseFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return gormAdapter.NewStore(db), nil
})

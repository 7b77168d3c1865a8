package serve

import (
	"log/slog"

	"github.com/bornholm/taskhub/internal/config"
	"github.com/bornholm/taskhub/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server and the bot poller",
		Action: func(ctx *cli.Context) error {
			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			server, err := setup.NewHTTPServerFromConfig(ctx.Context, conf)
			if err != nil {
				return errors.Wrap(err, "could not setup http server")
			}

			slog.InfoContext(ctx.Context, "starting server", slog.Any("address", conf.HTTP.Address))

			if err := server.Run(ctx.Context); err != nil {
				return errors.Wrap(err, "could not run server")
			}

			return nil
		},
	}
}

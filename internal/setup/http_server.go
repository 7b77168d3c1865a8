package setup

import (
	"context"

	"github.com/bornholm/taskhub/internal/config"
	"github.com/bornholm/taskhub/internal/http"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	api, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api handler from config")
	}

	// Building the API handler also starts the bot poller and the
	// notification workers.

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithMount("/api/", api),
		http.WithMount("/metrics/", promhttp.Handler()),
	}

	server := http.NewServer(options...)

	return server, nil
}

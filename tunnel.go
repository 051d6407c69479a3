package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

var errNgrokAuthRequired = errors.New("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN or NGROK_AUTH_TOKEN)")

func ngrokFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "ngrok",
			Usage:   "also serve through an ngrok tunnel",
			Sources: cli.EnvVars("NGROK_ENABLED"),
		},
		&cli.StringFlag{
			Name:    "ngrok-auth",
			Usage:   "ngrok auth token",
			Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "ngrok-domain",
			Usage:   "custom ngrok domain",
			Sources: cli.EnvVars("NGROK_DOMAIN"),
		},
	}
}

// serveTunnel serves handler through an ngrok tunnel until ctx is done.
func serveTunnel(ctx context.Context, ns ngrokSettings, handler http.Handler) error {
	if ns.AuthToken == "" {
		return errNgrokAuthRequired
	}

	var opts []ngrokConfig.HTTPEndpointOption
	if ns.Domain != "" {
		opts = append(opts, ngrokConfig.WithDomain(ns.Domain))
		log.Info().Str("domain", ns.Domain).Msg("using custom ngrok domain")
	}

	log.Info().Msg("starting ngrok tunnel")
	tun, err := ngrok.Listen(ctx, ngrokConfig.HTTPEndpoint(opts...), ngrok.WithAuthtoken(ns.AuthToken))
	if err != nil {
		return fmt.Errorf("starting ngrok tunnel: %w", err)
	}
	stop := context.AfterFunc(ctx, func() {
		if err := tun.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close ngrok tunnel")
		}
	})
	defer stop()

	url := tun.URL()
	log.Info().Msgf("ngrok tunnel established: %s", url)
	log.Info().Msgf("games (ngrok): %s/jeux", url)
	log.Info().Msgf("spectators (ngrok): %s/ws?partie=<id>", url)
	log.Info().Msgf("MCP endpoint (ngrok): %s/mcp", url)

	if err := http.Serve(tun, handler); err != nil && ctx.Err() == nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ngrok server: %w", err)
	}
	log.Info().Msg("ngrok tunnel closed")
	return nil
}

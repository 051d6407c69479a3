// Command quoridor plays Quoridor against a match server.
//
// Without a sub-command it creates a game on the match server for IDUL and
// plays it, interactively or with the automatic player (-a), showing the
// board in the terminal or in a window (-x). It prints the winner's name
// when the game ends.
//
// Sub-commands:
//   - serve: run a match server whose opponent is the automatic player
//   - local: play against the automatic player without a network
//   - mcp: serve the MCP tools on stdio for an AI agent playing as IDUL
//   - watch: follow a game hosted by a quoridor server as a spectator
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "quoridor"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	loadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("quoridor failed")
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      AppName,
		Usage:     "play Quoridor against a match server",
		Version:   Version,
		ArgsUsage: "IDUL",
		Flags: append(globalFlags(),
			&cli.BoolFlag{
				Name:    "automatique",
				Aliases: []string{"a"},
				Usage:   "let the automatic player choose the moves",
			},
			&cli.BoolFlag{
				Name:    "graphique",
				Aliases: []string{"x"},
				Usage:   "show the board in a window",
			},
		),
		Before: setupLogging,
		Action: runPlay,
		Commands: []*cli.Command{
			serveCommand(),
			localCommand(),
			mcpCommand(),
			watchCommand(),
		},
	}
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cmd.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return ctx, nil
}

// announce prints the winner on stdout.
func announce(cmd *cli.Command, winner string) error {
	_, err := fmt.Fprintln(cmd.Root().Writer, winner)
	return err
}

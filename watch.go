package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/match"
	"github.com/wricardo/quoridor/render/text"
	"github.com/wricardo/quoridor/render/window"
	"github.com/wricardo/quoridor/transport/remote"
)

var errGameIDRequired = errors.New("game id is required")

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "follow a game hosted by a quoridor server as a spectator",
		ArgsUsage: "IDUL GAME_ID",
		Action:    runWatch,
	}
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	idul, id := cmd.Args().Get(0), cmd.Args().Get(1)
	if idul == "" {
		return errIDULRequired
	}
	if id == "" {
		return errGameIDRequired
	}
	s, err := settingsFrom(cmd)
	if err != nil {
		return err
	}
	secret, err := s.secretFor(idul)
	if err != nil {
		return err
	}
	client := remote.NewClient(s.ServerURL, idul, secret)

	if !cmd.Root().Bool("graphique") {
		return watchGame(ctx, client, id, text.Renderer{W: cmd.Root().Writer})
	}

	win := window.New()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- watchGame(ctx, client, id, win)
		win.Close()
	}()

	if err := win.Run(fmt.Sprintf("Quoridor - %s", id)); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchGame renders every position of game id until it ends.
func watchGame(ctx context.Context, client *remote.Client, id string, r match.Renderer) error {
	_, state, err := client.GetGame(ctx, id)
	if err != nil {
		return fmt.Errorf("game %s: %w", id, err)
	}
	if err := r.Render(state); err != nil {
		return err
	}

	var last engine.State
	err = client.Watch(ctx, id, func(s engine.State) {
		last = s
		if err := r.Render(s); err != nil {
			log.Warn().Err(err).Msg("render failed")
		}
	})
	if err != nil {
		return err
	}
	if e, err := engine.New(last); err == nil {
		if w, over := e.Winner(); over {
			log.Info().Str("game", id).Str("winner", w).Msg("game over")
		}
	}
	return nil
}

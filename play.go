package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/quoridor/game/config"
	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/match"
	"github.com/wricardo/quoridor/game/player"
	"github.com/wricardo/quoridor/game/service"
	"github.com/wricardo/quoridor/game/session"
	"github.com/wricardo/quoridor/render/text"
	"github.com/wricardo/quoridor/render/window"
	"github.com/wricardo/quoridor/transport/remote"
)

var (
	errIDULRequired = errors.New("IDUL is required")
	errWindowClosed = errors.New("window closed before the game ended")
)

// runPlay creates a game on the match server and plays it.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	idul := cmd.Args().First()
	if idul == "" {
		return errIDULRequired
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
	id, state, err := client.CreateGame(ctx)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	log.Info().Str("game", id).Str("server", s.ServerURL).Msg("game created")

	return playGame(ctx, cmd, id, state, client)
}

func localCommand() *cli.Command {
	return &cli.Command{
		Name:      "local",
		Usage:     "play against the automatic player without a network",
		ArgsUsage: "[NAME]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "opening",
				Usage: "opening to start from",
			},
		},
		Action: runLocal,
	}
}

// runLocal hosts the game in-process and plays it through the same loop as
// a remote game.
func runLocal(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		name = "joueur"
	}
	s, err := settingsFrom(cmd)
	if err != nil {
		return err
	}

	svc, err := newService(s, session.NewManager())
	if err != nil {
		return err
	}
	info, err := svc.CreateGame(ctx, name, cmd.String("opening"))
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	return playGame(ctx, cmd, info.ID, info.State, service.Opponent{Service: svc, Owner: name})
}

// newService builds a game service over the openings directory, or over the
// canonical opening alone when the directory does not exist.
func newService(s settings, sessions service.SessionManager) (service.GameService, error) {
	dir := s.OpeningsDir
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Debug().Str("dir", dir).Msg("no openings directory, using the standard opening")
		dir = ""
	}
	openings, err := config.NewManager(dir)
	if err != nil {
		return nil, fmt.Errorf("loading openings: %w", err)
	}
	if s.Default != "" {
		if err := openings.SetDefault(s.Default); err != nil {
			return nil, fmt.Errorf("default opening: %w", err)
		}
		log.Info().Str("opening", s.Default).Msg("default opening set")
	}
	return service.NewGameService(sessions, openings), nil
}

// playGame runs the match loop for player 0 of state, choosing the player
// and renderer from the command's flags.
func playGame(ctx context.Context, cmd *cli.Command, id string, state engine.State, opponent match.Remote) error {
	eng, err := engine.New(state)
	if err != nil {
		return fmt.Errorf("game %s: %w", id, err)
	}

	var p player.Player = player.NewPrompter(os.Stdin, os.Stdout)
	if cmd.Bool("automatique") {
		p = player.Auto{}
	}

	runner := &match.Runner{
		GameID:   id,
		Engine:   eng,
		Player:   p,
		Remote:   opponent,
		Renderer: text.Renderer{W: os.Stdout},
	}

	if !cmd.Bool("graphique") {
		winner, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		return announce(cmd, winner)
	}

	win := window.New()
	runner.Renderer = win

	type outcome struct {
		winner string
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		winner, err := runner.Run(ctx)
		done <- outcome{winner, err}
		win.Close()
	}()

	if err := win.Run(fmt.Sprintf("Quoridor - %s", id)); err != nil {
		return fmt.Errorf("window: %w", err)
	}

	select {
	case o := <-done:
		if o.err != nil {
			return o.err
		}
		return announce(cmd, o.winner)
	default:
		return errWindowClosed
	}
}

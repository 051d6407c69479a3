// Package match drives one game between the local player and a remote
// opponent until someone wins.
package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/player"
)

// Remote plays the opponent's side: it receives the local player's move and
// answers with the opponent's, or with an *engine.GameOverError.
type Remote interface {
	PlayMove(ctx context.Context, id string, m engine.Move) (engine.Move, error)
}

// Renderer displays a state. It is called after every applied move.
type Renderer interface {
	Render(engine.State) error
}

// Runner plays player 0 of Engine through Player and relays moves to Remote,
// which plays player 1.
type Runner struct {
	GameID   string
	Engine   engine.Engine
	Player   player.Player
	Remote   Remote
	Renderer Renderer
}

// Run plays until the game is over and returns the winner's name. Moves
// received from Remote are replayed through ApplyMove, so a reply the local
// rules refuse stops the game with that rule error.
func (r *Runner) Run(ctx context.Context) (string, error) {
	s := r.Engine.Snapshot()
	local, opponent := s.Players[0].Name, s.Players[1].Name

	for {
		if err := r.Renderer.Render(r.Engine.Snapshot()); err != nil {
			return "", fmt.Errorf("rendering: %w", err)
		}
		if winner, over := r.Engine.Winner(); over {
			return winner, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		m, err := r.Player.Play(r.Engine, local)
		if err != nil {
			return "", fmt.Errorf("choosing a move for %s: %w", local, err)
		}
		log.Debug().Str("game", r.GameID).Str("player", local).Msgf("played %s", m)

		reply, err := r.Remote.PlayMove(ctx, r.GameID, m)
		var over *engine.GameOverError
		if errors.As(err, &over) {
			log.Info().Str("game", r.GameID).Msgf("game over, %s won", over.Winner)
			if err := r.Renderer.Render(r.Engine.Snapshot()); err != nil {
				return "", fmt.Errorf("rendering: %w", err)
			}
			return over.Winner, nil
		}
		if err != nil {
			return "", fmt.Errorf("sending %s: %w", m, err)
		}

		if _, err := r.Engine.ApplyMove(opponent, reply.Kind, reply.Target); err != nil {
			return "", fmt.Errorf("replaying %s's move %s: %w", opponent, reply, err)
		}
		log.Debug().Str("game", r.GameID).Str("player", opponent).Msgf("played %s", reply)
	}
}

package service

import (
	"context"

	"github.com/wricardo/quoridor/game/engine"
)

// Opponent plays against the service's robot on behalf of one owner. It
// lets a local game use the same loop as a game against a match server.
type Opponent struct {
	Service GameService
	Owner   string
}

// PlayMove sends the owner's move and returns the robot's answer, or an
// *engine.GameOverError once the game is won.
func (o Opponent) PlayMove(ctx context.Context, gameID string, m engine.Move) (engine.Move, error) {
	res, err := o.Service.PlayMove(ctx, o.Owner, gameID, m)
	if err != nil {
		return engine.Move{}, err
	}
	if res.Finished {
		return engine.Move{}, &engine.GameOverError{Winner: res.Winner}
	}
	return *res.Reply, nil
}

package player

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/quoridor/game/engine"
)

// Auto is the greedy automatic player. It never looks ahead.
type Auto struct{}

var blockingKinds = []engine.MoveKind{engine.KindWallHorizontal, engine.KindWallVertical}

// Play chooses a move for the named player and applies it.
func (Auto) Play(e engine.Engine, name string) (engine.Move, error) {
	if winner, over := e.Winner(); over {
		return engine.Move{}, &engine.GameOverError{Winner: winner}
	}
	i, err := e.Index(name)
	if err != nil {
		return engine.Move{}, err
	}
	state := e.Snapshot()
	opponent := state.Players[1-i]

	own, err := e.ShortestPath(name)
	if err != nil {
		return engine.Move{}, err
	}
	theirs, err := e.ShortestPath(opponent.Name)
	if err != nil {
		return engine.Move{}, err
	}

	if stepsToGoal(theirs) == 1 && state.Players[i].Walls > 0 {
		for _, kind := range blockingKinds {
			m, err := e.ApplyMove(name, kind, opponent.Position)
			if err == nil {
				log.Debug().Str("player", name).Msgf("blocking %s with %s", opponent.Name, m)
				return m, nil
			}
			if !wallRejected(err) {
				return engine.Move{}, err
			}
			log.Debug().Str("player", name).Err(err).Msgf("cannot block with %s", kind)
		}
	}

	if len(own) < 2 || !own[1].OnBoard() {
		return engine.Move{}, fmt.Errorf("%w: %s has no move towards its goal", engine.ErrNoPath, name)
	}
	return e.ApplyMove(name, engine.KindMove, own[1])
}

// stepsToGoal returns the number of pawn moves on a path that ends at a goal
// node.
func stepsToGoal(path []engine.Cell) int {
	return len(path) - 2
}

func wallRejected(err error) bool {
	return errors.Is(err, engine.ErrInvalidPosition) ||
		errors.Is(err, engine.ErrWallPositionInUse) ||
		errors.Is(err, engine.ErrIllegalWallPlacement)
}

package engine

import (
	"errors"
	"fmt"
)

// Rule errors returned by ApplyMove. They are expected, recoverable
// conditions; callers match them with errors.Is.
var (
	ErrInvalidPosition      = errors.New("invalid position")
	ErrUnknownPlayer        = errors.New("unknown player")
	ErrNoWallsRemaining     = errors.New("no walls remaining")
	ErrWallPositionInUse    = errors.New("wall position already in use")
	ErrIllegalMove          = errors.New("illegal move")
	ErrIllegalWallPlacement = errors.New("illegal wall placement")
	ErrIllegalMoveKind      = errors.New("illegal move kind")
	ErrGameAlreadyOver      = errors.New("game already over")
)

var (
	// ErrInvalidState is returned by New for a state that could not have
	// been reached in play.
	ErrInvalidState = errors.New("invalid game state")
	ErrNoPath       = errors.New("no path to goal")
)

var codes = []struct {
	code string
	err  error
}{
	{"invalid_position", ErrInvalidPosition},
	{"unknown_player", ErrUnknownPlayer},
	{"no_walls_remaining", ErrNoWallsRemaining},
	{"wall_position_in_use", ErrWallPositionInUse},
	{"illegal_move", ErrIllegalMove},
	{"illegal_wall_placement", ErrIllegalWallPlacement},
	{"illegal_move_kind", ErrIllegalMoveKind},
	{"game_already_over", ErrGameAlreadyOver},
	{"invalid_state", ErrInvalidState},
}

// Code returns the stable wire code of a rule error, or "" when err is not
// one.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

// ErrorForCode returns the rule error for a wire code, or nil when the code
// is unknown.
func ErrorForCode(code string) error {
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}

// IsRuleError reports whether err is one of the rule errors above.
func IsRuleError(err error) bool {
	return Code(err) != ""
}

// GameOverError reports that a game finished, and who won it.
type GameOverError struct {
	Winner string
}

func (e *GameOverError) Error() string {
	return fmt.Sprintf("game over, winner is %s", e.Winner)
}

func (e *GameOverError) Unwrap() error {
	return ErrGameAlreadyOver
}

package service

import (
	"time"

	"github.com/wricardo/quoridor/game/engine"
)

// GameInfo provides information about a game
type GameInfo struct {
	ID             string       `json:"id"`
	Owner          string       `json:"owner"`
	Opening        string       `json:"opening"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	State          engine.State `json:"state"`
	Winner         string       `json:"winner,omitempty"`
}

// MoveResult contains the outcome of a played move. Reply is the robot's
// answer, nil when the owner's move ended the game.
type MoveResult struct {
	Reply    *engine.Move `json:"reply,omitempty"`
	Finished bool         `json:"finished"`
	Winner   string       `json:"winner,omitempty"`
	State    engine.State `json:"state"`
}

// Opening is a named starting position. Its player names are placeholders
// replaced when a game is created from it.
type Opening struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	State       engine.State `json:"état"`
}

// StateFor returns the opening position with the given player names.
func (o *Opening) StateFor(first, second string) engine.State {
	s := o.State
	s.Players[0].Name = first
	s.Players[1].Name = second
	return s
}

// OpeningInfo provides information about an opening
type OpeningInfo struct {
	Filename    string `json:"filename"`
	OpeningID   string `json:"opening_id"` // The identifier to use for game creation
	Name        string `json:"name"`
	Description string `json:"description"`
	WallsPlaced int    `json:"walls_placed"`
}

package engine

import (
	"encoding/json"
	"fmt"
)

type wireWalls struct {
	Horizontal []Cell `json:"horizontaux"`
	Vertical   []Cell `json:"verticaux"`
}

type wireState struct {
	Turn    int       `json:"tour"`
	Players []Player  `json:"joueurs"`
	Walls   wireWalls `json:"murs"`
}

// MarshalJSON encodes the state in the match server format:
//
//	{"tour": 1, "joueurs": [{"nom": ..., "murs": 10, "position": [5, 1]}, ...],
//	 "murs": {"horizontaux": [[x, y], ...], "verticaux": [...]}}
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireState{
		Turn:    s.Turn,
		Players: s.Players[:],
		Walls: wireWalls{
			Horizontal: s.Walls.List(Horizontal),
			Vertical:   s.Walls.List(Vertical),
		},
	})
}

// UnmarshalJSON decodes a state from the match server format. Only the shape
// is checked here; use New or ValidateState for the game rules.
func (s *State) UnmarshalJSON(data []byte) error {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if len(w.Players) != 2 {
		return fmt.Errorf("%w: expected 2 players, got %d", ErrInvalidState, len(w.Players))
	}
	walls, err := NewWalls(w.Walls.Horizontal, w.Walls.Vertical)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	*s = State{
		Turn:    w.Turn,
		Players: [2]Player{w.Players[0], w.Players[1]},
		Walls:   walls,
	}
	return nil
}

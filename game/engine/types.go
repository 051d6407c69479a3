package engine

import (
	"encoding/json"
	"fmt"
)

const (
	// BoardSize is the side length of the board.
	BoardSize = 9
	// MaxWalls is the number of walls each player starts with.
	MaxWalls = 10
	// StartingTurn is the turn counter value of a new game.
	StartingTurn = 1
)

// Cell represents an x,y board coordinate, 1-based.
type Cell struct {
	X int
	Y int
}

// Virtual goal nodes of the movement graph. They sit outside the board so
// they can never be confused with a real cell.
var (
	GoalRow9 = Cell{X: 0, Y: BoardSize + 1}
	GoalRow1 = Cell{X: 0, Y: 0}
)

// OnBoard reports whether the cell lies on the 9x9 board.
func (c Cell) OnBoard() bool {
	return c.X >= 1 && c.X <= BoardSize && c.Y >= 1 && c.Y <= BoardSize
}

// Add returns the cell offset by dx, dy.
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

func (c Cell) String() string {
	switch c {
	case GoalRow9:
		return "goal(9)"
	case GoalRow1:
		return "goal(1)"
	}
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// MarshalJSON encodes the cell as [x, y].
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

// UnmarshalJSON decodes a cell from [x, y].
func (c *Cell) UnmarshalJSON(data []byte) error {
	var xy []int
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("cell must be an [x, y] pair: %w", err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("cell must be an [x, y] pair, got %d values", len(xy))
	}
	c.X, c.Y = xy[0], xy[1]
	return nil
}

// MoveKind is the kind of a move, using the wire codes of the match protocol.
type MoveKind string

const (
	KindMove           MoveKind = "D"
	KindWallHorizontal MoveKind = "MH"
	KindWallVertical   MoveKind = "MV"
)

// Orientation returns the wall orientation placed by a wall move kind.
func (k MoveKind) Orientation() (Orientation, bool) {
	switch k {
	case KindWallHorizontal:
		return Horizontal, true
	case KindWallVertical:
		return Vertical, true
	}
	return 0, false
}

// Move is a move as applied by the engine and exchanged with peers.
type Move struct {
	Kind   MoveKind `json:"coup"`
	Target Cell     `json:"position"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s", m.Kind, m.Target)
}

// Player is one of the two participants of a game.
type Player struct {
	Name     string `json:"nom"`
	Walls    int    `json:"murs"`
	Position Cell   `json:"position"`
}

// GoalNode returns the virtual goal node for the player at index i.
func GoalNode(i int) Cell {
	if i == 0 {
		return GoalRow9
	}
	return GoalRow1
}

// GoalRow returns the row the player at index i must reach.
func GoalRow(i int) int {
	if i == 0 {
		return BoardSize
	}
	return 1
}

// State is the complete game state. It is a plain value: copying it never
// aliases another state.
type State struct {
	Turn    int
	Players [2]Player
	Walls   Walls
}

// Positions returns the pawn cells in player order.
func (s State) Positions() [2]Cell {
	return [2]Cell{s.Players[0].Position, s.Players[1].Position}
}

// NewState returns the canonical opening: pawns centred on their starting
// rows, all walls in hand, turn 1.
func NewState(first, second string) State {
	return State{
		Turn: StartingTurn,
		Players: [2]Player{
			{Name: first, Walls: MaxWalls, Position: Cell{X: 5, Y: 1}},
			{Name: second, Walls: MaxWalls, Position: Cell{X: 5, Y: BoardSize}},
		},
	}
}

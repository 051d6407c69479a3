package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	Snapshot() State
	Winner() (string, bool)
	Index(player string) (int, error)

	// Moves
	ApplyMove(player string, kind MoveKind, target Cell) (Move, error)
	LegalMoves(player string) ([]Cell, error)

	// Movement graph
	Graph() *Graph
	ShortestPath(player string) ([]Cell, error)

	// Clone returns an independent engine seeded with the same state, for
	// trying a move without committing it.
	Clone() Engine
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access.
type GameEngine struct {
	state State
}

// New creates an engine from an initial state. The state is copied, so the
// caller's value is never aliased.
func New(state State) (*GameEngine, error) {
	if err := ValidateState(state); err != nil {
		return nil, err
	}
	return &GameEngine{state: state}, nil
}

// NewGame creates an engine for the canonical opening.
func NewGame(first, second string) (*GameEngine, error) {
	return New(NewState(first, second))
}

// ValidateState checks that a state could have been reached in play.
func ValidateState(s State) error {
	if s.Turn < StartingTurn {
		return fmt.Errorf("%w: turn %d", ErrInvalidState, s.Turn)
	}
	for i, p := range s.Players {
		if p.Name == "" {
			return fmt.Errorf("%w: player %d has no name", ErrInvalidState, i)
		}
		if !p.Position.OnBoard() {
			return fmt.Errorf("%w: player %s is off the board at %s", ErrInvalidState, p.Name, p.Position)
		}
		if p.Walls < 0 || p.Walls > MaxWalls {
			return fmt.Errorf("%w: player %s has %d walls", ErrInvalidState, p.Name, p.Walls)
		}
	}
	if s.Players[0].Name == s.Players[1].Name {
		return fmt.Errorf("%w: both players are named %s", ErrInvalidState, s.Players[0].Name)
	}
	if s.Players[0].Position == s.Players[1].Position {
		return fmt.Errorf("%w: both pawns on %s", ErrInvalidState, s.Players[0].Position)
	}
	placed := 2*MaxWalls - s.Players[0].Walls - s.Players[1].Walls
	if n := s.Walls.Count(); n != placed {
		return fmt.Errorf("%w: %d walls on the board but %d played", ErrInvalidState, n, placed)
	}
	g := BuildGraph(s.Positions(), s.Walls)
	for i, p := range s.Players {
		if !g.HasPath(p.Position, GoalNode(i)) {
			return fmt.Errorf("%w: player %s cannot reach row %d", ErrInvalidState, p.Name, GoalRow(i))
		}
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (e *GameEngine) Snapshot() State {
	return e.state
}

// Clone returns an independent copy of the engine.
func (e *GameEngine) Clone() Engine {
	return &GameEngine{state: e.state}
}

// Winner returns the name of the player standing on its goal row, if any.
func (e *GameEngine) Winner() (string, bool) {
	switch {
	case e.state.Players[0].Position.Y == GoalRow(0):
		return e.state.Players[0].Name, true
	case e.state.Players[1].Position.Y == GoalRow(1):
		return e.state.Players[1].Name, true
	}
	return "", false
}

// Index returns the player index of the named player.
func (e *GameEngine) Index(player string) (int, error) {
	for i, p := range e.state.Players {
		if p.Name == player {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
}

// Graph builds the movement graph of the current state.
func (e *GameEngine) Graph() *Graph {
	return BuildGraph(e.state.Positions(), e.state.Walls)
}

// ShortestPath returns a shortest path from the player's pawn to its goal
// node. The last element is the goal node itself.
func (e *GameEngine) ShortestPath(player string) ([]Cell, error) {
	i, err := e.Index(player)
	if err != nil {
		return nil, err
	}
	path := e.Graph().ShortestPath(e.state.Players[i].Position, GoalNode(i))
	if path == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoPath, player)
	}
	return path, nil
}

// LegalMoves returns the cells the player's pawn may move to.
func (e *GameEngine) LegalMoves(player string) ([]Cell, error) {
	i, err := e.Index(player)
	if err != nil {
		return nil, err
	}
	var out []Cell
	for _, c := range e.Graph().Successors(e.state.Players[i].Position) {
		if c.OnBoard() {
			out = append(out, c)
		}
	}
	return out, nil
}

// ApplyMove validates a move against the current state and applies it. The
// state is left untouched when an error is returned. The applied move is
// returned unchanged so callers can forward it.
func (e *GameEngine) ApplyMove(player string, kind MoveKind, target Cell) (Move, error) {
	if w, over := e.Winner(); over {
		return Move{}, &GameOverError{Winner: w}
	}
	i, err := e.Index(player)
	if err != nil {
		return Move{}, err
	}

	switch kind {
	case KindMove:
		err = e.movePawn(i, target)
	case KindWallHorizontal, KindWallVertical:
		o, _ := kind.Orientation()
		err = e.placeWall(i, Wall{Anchor: target, Orientation: o})
	default:
		err = fmt.Errorf("%w: %q", ErrIllegalMoveKind, kind)
	}
	if err != nil {
		return Move{}, err
	}

	if i == 1 {
		e.state.Turn++
	}
	return Move{Kind: kind, Target: target}, nil
}

func (e *GameEngine) movePawn(i int, target Cell) error {
	if !target.OnBoard() {
		return fmt.Errorf("%w: %s is off the board", ErrInvalidPosition, target)
	}
	from := e.state.Players[i].Position
	if !e.Graph().HasEdge(from, target) {
		return fmt.Errorf("%w: %s cannot move from %s to %s", ErrIllegalMove, e.state.Players[i].Name, from, target)
	}
	e.state.Players[i].Position = target
	return nil
}

func (e *GameEngine) placeWall(i int, wall Wall) error {
	if !ValidAnchor(wall.Anchor) {
		return fmt.Errorf("%w: %s does not fit on the board", ErrInvalidPosition, wall)
	}
	if e.state.Players[i].Walls == 0 {
		return fmt.Errorf("%w: %s has placed all walls", ErrNoWallsRemaining, e.state.Players[i].Name)
	}
	if err := e.state.Walls.check(wall); err != nil {
		return err
	}

	walls := e.state.Walls
	walls.add(wall)
	g := BuildGraph(e.state.Positions(), walls)
	for j, p := range e.state.Players {
		if !g.HasPath(p.Position, GoalNode(j)) {
			return fmt.Errorf("%w: %s would cut %s off from row %d", ErrIllegalWallPlacement, wall, p.Name, GoalRow(j))
		}
	}

	e.state.Walls = walls
	e.state.Players[i].Walls--
	return nil
}

// Package engine implements the rules of Quoridor on the standard 9x9 board.
//
// Two pawns start on opposite rows: player 0 at (5,1) heading for row 9,
// player 1 at (5,9) heading for row 1. On each turn a player either moves
// its pawn or places one of its ten walls. A wall may never cut a player off
// from its goal row.
//
// Core Types:
//
// State is a plain value holding the players, the placed walls and the turn
// counter; copying it is enough to take a snapshot. Graph is the movement
// graph derived from a state by BuildGraph: its successor relation is the
// only source of truth for pawn moves, jumps included, and its two virtual
// goal nodes (GoalRow9, GoalRow1) make reachability a plain graph query.
// The Engine interface, implemented by GameEngine, validates and applies
// moves through ApplyMove.
//
// Usage:
//
//	e, err := engine.NewGame("alice", "robot")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if _, err := e.ApplyMove("alice", engine.KindMove, engine.Cell{X: 5, Y: 2}); err != nil {
//		// errors.Is(err, engine.ErrIllegalMove) and friends
//	}
//
//	if name, ok := e.Winner(); ok {
//		fmt.Println(name)
//	}
//
// Rule errors are sentinels (ErrIllegalMove, ErrWallPositionInUse, ...)
// wrapped with context; Code and ErrorForCode translate them to and from the
// codes used on the wire. GameEngine does no locking.
package engine

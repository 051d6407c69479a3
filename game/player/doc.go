// Package player provides the two ways a move gets chosen for a player.
//
// Auto is a greedy heuristic: it walls off an opponent that is one move
// from winning and otherwise steps along its own shortest path. Prompter
// asks a human for a move on a text stream and only returns moves the rules
// accept. Both implement Player, and neither touches the game state except
// through Engine.ApplyMove.
package player

import "github.com/wricardo/quoridor/game/engine"

// Player picks a move for the named player and applies it to e.
type Player interface {
	Play(e engine.Engine, name string) (engine.Move, error)
}

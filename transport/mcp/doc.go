// Package mcp exposes a Quoridor player to AI agents over the Model Context
// Protocol.
//
// Client is a thin proxy: every tool call becomes one or two match server
// calls made through a MatchServer, normally a *remote.Client authenticated
// as the agent's player. The agent is always player 1 of its games.
//
// Tools:
//   - create_game: start a game and show the opening board
//   - list_games: list the player's games
//   - game_state: show the board of a game
//   - analyze_position: legal pawn moves and shortest paths of both players
//   - play_move: play D, MH or MV at (x, y) and show the opponent's answer
//
// Rule violations are returned as tool errors carrying the engine's rule
// code, so the agent can correct its move and retry.
//
// Usage:
//
//	client := mcp.NewClient(remote.NewClient(url, idul, secret))
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		return err
//	}
package mcp

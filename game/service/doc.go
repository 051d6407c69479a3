// Package service provides the business logic layer of the match server.
//
// The service package implements:
//   - Games owned by one player and played against the robot
//   - Opening positions loaded by name
//   - Move validation through the rule engine
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles game storage, retrieval, and lifecycle.
// OpeningStore loads the named starting positions.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the rule engine. The owner is always player 0; the robot, driven by the
// automatic player, is player 1 and answers every accepted move. Each
// session is locked while its engine is in use, so concurrent requests on
// one game are serialized.
//
// Usage:
//
//	sessions := session.NewManager()
//	openings, _ := config.NewManager("openings")
//	games := service.NewGameService(sessions, openings)
//
//	info, err := games.CreateGame(ctx, "alice", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := games.PlayMove(ctx, "alice", info.ID, engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 2}})
package service

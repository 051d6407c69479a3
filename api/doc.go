// Package api provides the HTTP handlers of the Quoridor match server.
//
// The api package implements:
//   - Game creation, listing, lookup and deletion for the caller
//   - Move submission, answered by the server's automatic player
//   - Opening listing
//   - WebSocket upgrade for spectators
//
// Endpoints:
//
// Games (HTTP basic auth, the user name is the player's IDUL):
//   - POST /jeux[?ouverture=NAME] - Create a game, optionally from an opening
//   - GET /jeux - List the caller's games
//   - GET /jeux/{id} - Get a game's state
//   - PUT /jeux/{id} - Play a move
//   - DELETE /jeux/{id} - Abandon a game
//
// Openings:
//   - GET /ouvertures - List the available openings
//
// Spectators:
//   - GET /ws?partie={id} - Receive every new position of a game
//
// Health:
//   - GET /health - Liveness probe, no authentication
//
// Request/Response Format:
//
// Games are returned as {"id": ..., "état": STATE} where STATE is
//
//	{
//	  "tour": 1,
//	  "joueurs": [{"nom": "idul", "murs": 10, "position": [5, 1]}, ...],
//	  "murs": {"horizontaux": [[x, y], ...], "verticaux": [[x, y], ...]}
//	}
//
// A move is sent as {"coup": "D|MH|MV", "position": [x, y]} and answered
// with {"partie": "en cours", "coup": ..., "position": ...} carrying the
// opponent's reply, or {"partie": "terminée", "gagnant": NAME}.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	server := api.NewServer(gameService, hub, map[string]string{"idul": "secret"})
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status code: 401 for bad
// credentials, 404 for unknown games or openings, 406 for rule violations
// and 500 otherwise. Rule violations carry the engine's error code:
//
//	{
//	  "message": "illegal move: alice cannot move from (5,1) to (5,3)",
//	  "code": "illegal_move"
//	}
package api

// Package remote talks to a Quoridor match server over HTTP.
//
// The protocol is a small JSON API authenticated with HTTP basic auth
// (player id and secret):
//
//	POST   /jeux       create a game, the caller is player 0
//	GET    /jeux       list the caller's games
//	GET    /jeux/{id}  fetch a game
//	PUT    /jeux/{id}  play {"coup": "D", "position": [x, y]}
//	DELETE /jeux/{id}  abandon a game
//
// A PUT answers with the opponent's move, or with {"partie": "terminée",
// "gagnant": name} once the game is over; Client reports the latter as an
// *engine.GameOverError. Failed calls map onto ErrPermission (401),
// ErrNotFound (404), ErrRuleViolation (406) and ErrTransport (anything
// else). A 406 that carries a rule code also matches the engine error with
// errors.Is, so a move refused by the server is refused for the same reason
// it would be locally.
//
// The api package serves the same types.
package remote

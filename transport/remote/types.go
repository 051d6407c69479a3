package remote

import "github.com/wricardo/quoridor/game/engine"

// Values of MoveResponse.Status.
const (
	StatusInProgress = "en cours"
	StatusFinished   = "terminée"
)

// GameResponse is returned when a game is created or fetched.
type GameResponse struct {
	ID    string       `json:"id"`
	State engine.State `json:"état"`
}

// GameList is returned by GET /jeux.
type GameList struct {
	Games []GameResponse `json:"parties"`
}

// MoveRequest is the body of PUT /jeux/{id}.
type MoveRequest = engine.Move

// MoveResponse answers a played move with the opponent's reply, or with the
// winner when the game is over.
type MoveResponse struct {
	Status   string          `json:"partie"`
	Kind     engine.MoveKind `json:"coup,omitempty"`
	Position *engine.Cell    `json:"position,omitempty"`
	Winner   string          `json:"gagnant,omitempty"`
}

// ErrorResponse is the body of every failed call. Code is the engine rule
// code when the failure is a rule violation.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/quoridor/game/engine"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrOpeningNotFound = errors.New("opening not found")
)

// RobotName is the name of the server-side opponent, always player 1.
const RobotName = "robot"

// GameService defines all game-related operations. Every game belongs to
// the player that created it; other players see it as not found.
type GameService interface {
	// Game Management
	CreateGame(ctx context.Context, owner, opening string) (*GameInfo, error)
	GetGame(ctx context.Context, owner, gameID string) (*GameInfo, error)
	ListGames(ctx context.Context, owner string) ([]*GameInfo, error)
	DeleteGame(ctx context.Context, owner, gameID string) error

	// Game Operations
	PlayMove(ctx context.Context, owner, gameID string, move engine.Move) (*MoveResult, error)

	// Openings
	ListOpenings(ctx context.Context) ([]*OpeningInfo, error)
}

// SessionManager defines game storage operations
type SessionManager interface {
	Create(owner, opening string, state engine.State) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// OpeningStore handles opening position loading
type OpeningStore interface {
	LoadOpening(name string) (*Opening, error)
	ListOpenings() ([]*OpeningInfo, error)
	GetDefault() *Opening
}

// Session is one game in progress. Lock it around every use of Engine.
type Session struct {
	sync.Mutex

	ID             string
	Owner          string
	Opening        string
	Engine         *engine.GameEngine
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/player"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	openings OpeningStore
	robot    player.Player
}

// NewGameService creates a new game service instance. The robot opponent
// is the automatic player.
func NewGameService(sessions SessionManager, openings OpeningStore) GameService {
	return NewGameServiceWithRobot(sessions, openings, player.Auto{})
}

// NewGameServiceWithRobot creates a game service whose opponent is robot.
func NewGameServiceWithRobot(sessions SessionManager, openings OpeningStore, robot player.Player) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		openings: openings,
		robot:    robot,
	}
}

// CreateGame creates a new game for owner from the named opening, or from
// the default opening when name is empty.
func (s *gameServiceImpl) CreateGame(ctx context.Context, owner, opening string) (*GameInfo, error) {
	o := s.openings.GetDefault()
	if opening != "" {
		var err error
		o, err = s.openings.LoadOpening(opening)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrOpeningNotFound, opening, err)
		}
	}

	sess, err := s.sessions.Create(owner, opening, o.StateFor(owner, RobotName))
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	log.Info().Str("game", sess.ID).Str("owner", owner).Str("opening", o.Name).Msg("game created")

	sess.Lock()
	defer sess.Unlock()
	return gameInfo(sess), nil
}

// GetGame retrieves game information
func (s *gameServiceImpl) GetGame(ctx context.Context, owner, gameID string) (*GameInfo, error) {
	sess, err := s.session(owner, gameID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(gameID)

	sess.Lock()
	defer sess.Unlock()
	return gameInfo(sess), nil
}

// ListGames returns the owner's games, oldest first
func (s *gameServiceImpl) ListGames(ctx context.Context, owner string) ([]*GameInfo, error) {
	var result []*GameInfo
	for _, sess := range s.sessions.List() {
		if sess.Owner != owner {
			continue
		}
		sess.Lock()
		result = append(result, gameInfo(sess))
		sess.Unlock()
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// DeleteGame removes a game
func (s *gameServiceImpl) DeleteGame(ctx context.Context, owner, gameID string) error {
	if _, err := s.session(owner, gameID); err != nil {
		return err
	}
	return s.sessions.Delete(gameID)
}

// PlayMove applies the owner's move and lets the robot answer. Rule
// errors are returned as is, leaving the game untouched.
func (s *gameServiceImpl) PlayMove(ctx context.Context, owner, gameID string, move engine.Move) (*MoveResult, error) {
	sess, err := s.session(owner, gameID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(gameID)

	sess.Lock()
	defer sess.Unlock()

	if _, err := sess.Engine.ApplyMove(owner, move.Kind, move.Target); err != nil {
		log.Debug().Str("game", gameID).Err(err).Msgf("%s rejected", move)
		return nil, err
	}
	if winner, over := sess.Engine.Winner(); over {
		return finished(sess, nil, winner), nil
	}

	reply, err := s.robot.Play(sess.Engine, RobotName)
	if err != nil {
		return nil, fmt.Errorf("robot failed to play: %w", err)
	}
	log.Debug().Str("game", gameID).Msgf("robot answered %s to %s", reply, move)
	if winner, over := sess.Engine.Winner(); over {
		return finished(sess, &reply, winner), nil
	}

	return &MoveResult{Reply: &reply, State: sess.Engine.Snapshot()}, nil
}

// ListOpenings returns the available openings
func (s *gameServiceImpl) ListOpenings(ctx context.Context) ([]*OpeningInfo, error) {
	return s.openings.ListOpenings()
}

func (s *gameServiceImpl) session(owner, gameID string) (*Session, error) {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if sess.Owner != owner {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return sess, nil
}

func finished(sess *Session, reply *engine.Move, winner string) *MoveResult {
	log.Info().Str("game", sess.ID).Msgf("game over, %s won", winner)
	return &MoveResult{Reply: reply, Finished: true, Winner: winner, State: sess.Engine.Snapshot()}
}

func gameInfo(sess *Session) *GameInfo {
	info := &GameInfo{
		ID:             sess.ID,
		Owner:          sess.Owner,
		Opening:        sess.Opening,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          sess.Engine.Snapshot(),
	}
	if winner, over := sess.Engine.Winner(); over {
		info.Winner = winner
	}
	return info
}

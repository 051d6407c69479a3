package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/quoridor/game/engine"
)

// DefaultURL is the public match server.
const DefaultURL = "https://pax.ulaval.ca/quoridor/api/a25"

var (
	ErrPermission    = errors.New("permission denied")
	ErrNotFound      = errors.New("game not found")
	ErrRuleViolation = errors.New("rule violation")
	ErrTransport     = errors.New("match server unavailable")
)

// Client is an authenticated match server client for one player.
type Client struct {
	baseURL    string
	player     string
	secret     string
	httpClient *http.Client
}

// NewClient creates a client for baseURL, authenticated as player.
func NewClient(baseURL, player, secret string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		player:     player,
		secret:     secret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Player returns the id the client authenticates as.
func (c *Client) Player() string {
	return c.player
}

// CreateGame starts a new game and returns its id and opening state.
func (c *Client) CreateGame(ctx context.Context) (string, engine.State, error) {
	var resp GameResponse
	if err := c.apiCall(ctx, http.MethodPost, "/jeux", nil, &resp); err != nil {
		return "", engine.State{}, err
	}
	return resp.ID, resp.State, nil
}

// GetGame fetches the current state of a game.
func (c *Client) GetGame(ctx context.Context, id string) (string, engine.State, error) {
	var resp GameResponse
	if err := c.apiCall(ctx, http.MethodGet, "/jeux/"+id, nil, &resp); err != nil {
		return "", engine.State{}, err
	}
	return resp.ID, resp.State, nil
}

// ListGames returns the player's games.
func (c *Client) ListGames(ctx context.Context) ([]GameResponse, error) {
	var resp GameList
	if err := c.apiCall(ctx, http.MethodGet, "/jeux", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Games, nil
}

// DeleteGame abandons a game.
func (c *Client) DeleteGame(ctx context.Context, id string) error {
	return c.apiCall(ctx, http.MethodDelete, "/jeux/"+id, nil, nil)
}

// PlayMove sends the player's move and returns the opponent's reply. When
// the game ends it returns an *engine.GameOverError naming the winner.
func (c *Client) PlayMove(ctx context.Context, id string, m engine.Move) (engine.Move, error) {
	var resp MoveResponse
	if err := c.apiCall(ctx, http.MethodPut, "/jeux/"+id, MoveRequest(m), &resp); err != nil {
		return engine.Move{}, err
	}
	return resp.Move()
}

// Move converts the response into the opponent's move or a game over
// error.
func (r MoveResponse) Move() (engine.Move, error) {
	if r.Status == StatusFinished {
		return engine.Move{}, &engine.GameOverError{Winner: r.Winner}
	}
	if r.Position == nil || r.Kind == "" {
		return engine.Move{}, fmt.Errorf("%w: reply carries no move", ErrTransport)
	}
	return engine.Move{Kind: r.Kind, Target: *r.Position}, nil
}

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.player, c.secret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("url", url).Msg("match server call")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: decoding reply: %w", ErrTransport, err)
		}
	}
	return nil
}

func statusError(resp *http.Response) error {
	var errResp ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	msg := errResp.Message
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrPermission, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusNotAcceptable:
		if rule := engine.ErrorForCode(errResp.Code); rule != nil {
			return fmt.Errorf("%w: %w: %s", ErrRuleViolation, rule, msg)
		}
		return fmt.Errorf("%w: %s", ErrRuleViolation, msg)
	}
	return fmt.Errorf("%w: %d %s", ErrTransport, resp.StatusCode, msg)
}

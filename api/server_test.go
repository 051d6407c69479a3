package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/quoridor/game/config"
	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/service"
	"github.com/wricardo/quoridor/game/session"
	"github.com/wricardo/quoridor/transport/remote"
	"github.com/wricardo/quoridor/transport/websocket"
)

var testAccounts = map[string]string{
	"alice": "alice-secret",
	"bob":   "bob-secret",
}

// MockGameService implements service.GameService for testing
type MockGameService struct {
	service.GameService
	PlayMoveFunc func(ctx context.Context, owner, gameID string, move engine.Move) (*service.MoveResult, error)
}

func (m *MockGameService) PlayMove(ctx context.Context, owner, gameID string, move engine.Move) (*service.MoveResult, error) {
	return m.PlayMoveFunc(ctx, owner, gameID, move)
}

func setupTestServer(t *testing.T) (*httptest.Server, *websocket.Hub) {
	t.Helper()
	openings, err := config.NewManager(t.TempDir())
	require.NoError(t, err)
	svc := service.NewGameService(session.NewManager(), openings)

	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	ts := httptest.NewServer(NewServer(svc, hub, testAccounts))
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return ts, hub
}

func TestHealth(t *testing.T) {
	ts, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthentication(t *testing.T) {
	ts, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := remote.NewClient(ts.URL, "alice", "wrong").CreateGame(ctx)
	assert.ErrorIs(t, err, remote.ErrPermission)

	_, _, err = remote.NewClient(ts.URL, "mallory", "x").CreateGame(ctx)
	assert.ErrorIs(t, err, remote.ErrPermission)

	resp, err := http.Get(ts.URL + "/jeux")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("WWW-Authenticate"))
}

func TestOpenServerAcceptsAnyPlayer(t *testing.T) {
	openings, err := config.NewManager(t.TempDir())
	require.NoError(t, err)
	svc := service.NewGameService(session.NewManager(), openings)
	ts := httptest.NewServer(NewServer(svc, nil, nil))
	defer ts.Close()

	_, state, err := remote.NewClient(ts.URL, "carol", "").CreateGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "carol", state.Players[0].Name)
}

func TestGameLifecycle(t *testing.T) {
	ts, _ := setupTestServer(t)
	ctx := context.Background()
	client := remote.NewClient(ts.URL, "alice", "alice-secret")

	id, state, err := client.CreateGame(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, engine.NewState("alice", service.RobotName), state)

	gotID, got, err := client.GetGame(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, state, got)

	games, err := client.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, id, games[0].ID)

	reply, err := client.PlayMove(ctx, id, engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 2}})
	require.NoError(t, err)
	assert.Equal(t, engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 8}}, reply)

	_, got, err = client.GetGame(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Turn)
	assert.Equal(t, engine.Cell{X: 5, Y: 2}, got.Players[0].Position)

	require.NoError(t, client.DeleteGame(ctx, id))
	_, _, err = client.GetGame(ctx, id)
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestOwnership(t *testing.T) {
	ts, _ := setupTestServer(t)
	ctx := context.Background()
	alice := remote.NewClient(ts.URL, "alice", "alice-secret")
	bob := remote.NewClient(ts.URL, "bob", "bob-secret")

	id, _, err := alice.CreateGame(ctx)
	require.NoError(t, err)

	_, _, err = bob.GetGame(ctx, id)
	assert.ErrorIs(t, err, remote.ErrNotFound)

	_, err = bob.PlayMove(ctx, id, engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 2}})
	assert.ErrorIs(t, err, remote.ErrNotFound)

	games, err := bob.ListGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestRuleViolations(t *testing.T) {
	ts, _ := setupTestServer(t)
	ctx := context.Background()
	client := remote.NewClient(ts.URL, "alice", "alice-secret")

	id, _, err := client.CreateGame(ctx)
	require.NoError(t, err)

	tests := []struct {
		name string
		move engine.Move
		want error
	}{
		{"pawn too far", engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 3}}, engine.ErrIllegalMove},
		{"off the board", engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 0, Y: 1}}, engine.ErrInvalidPosition},
		{"wall anchor out of range", engine.Move{Kind: engine.KindWallVertical, Target: engine.Cell{X: 9, Y: 1}}, engine.ErrInvalidPosition},
		{"unknown kind", engine.Move{Kind: "X", Target: engine.Cell{X: 5, Y: 2}}, engine.ErrIllegalMoveKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.PlayMove(ctx, id, tt.move)
			assert.ErrorIs(t, err, remote.ErrRuleViolation)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, state, err := client.GetGame(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, engine.NewState("alice", service.RobotName), state)
}

func TestWallInUse(t *testing.T) {
	ts, _ := setupTestServer(t)
	ctx := context.Background()
	client := remote.NewClient(ts.URL, "alice", "alice-secret")

	id, _, err := client.CreateGame(ctx)
	require.NoError(t, err)

	_, err = client.PlayMove(ctx, id, engine.Move{Kind: engine.KindWallHorizontal, Target: engine.Cell{X: 2, Y: 4}})
	require.NoError(t, err)

	_, err = client.PlayMove(ctx, id, engine.Move{Kind: engine.KindWallHorizontal, Target: engine.Cell{X: 3, Y: 4}})
	assert.ErrorIs(t, err, engine.ErrWallPositionInUse)
}

func TestBadBody(t *testing.T) {
	ts, _ := setupTestServer(t)
	ctx := context.Background()
	client := remote.NewClient(ts.URL, "alice", "alice-secret")

	id, _, err := client.CreateGame(ctx)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/jeux/"+id, bytes.NewBufferString(`{"coup": "D", "position": [5]}`))
	require.NoError(t, err)
	req.SetBasicAuth("alice", "alice-secret")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body remote.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Message)
}

func TestUnknownOpening(t *testing.T) {
	ts, _ := setupTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/jeux?ouverture=missing", nil)
	require.NoError(t, err)
	req.SetBasicAuth("alice", "alice-secret")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInternalError(t *testing.T) {
	mock := &MockGameService{
		PlayMoveFunc: func(ctx context.Context, owner, gameID string, move engine.Move) (*service.MoveResult, error) {
			return nil, errors.New("robot failed")
		},
	}
	ts := httptest.NewServer(NewServer(mock, nil, testAccounts))
	defer ts.Close()

	_, err := remote.NewClient(ts.URL, "alice", "alice-secret").
		PlayMove(context.Background(), "g1", engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 2}})
	assert.ErrorIs(t, err, remote.ErrTransport)
}

func TestMoveResponse(t *testing.T) {
	reply := engine.Move{Kind: engine.KindWallVertical, Target: engine.Cell{X: 3, Y: 4}}

	inProgress := moveResponse(&service.MoveResult{Reply: &reply})
	assert.Equal(t, remote.StatusInProgress, inProgress.Status)
	assert.Equal(t, engine.KindWallVertical, inProgress.Kind)
	require.NotNil(t, inProgress.Position)
	assert.Equal(t, engine.Cell{X: 3, Y: 4}, *inProgress.Position)

	over := moveResponse(&service.MoveResult{Reply: &reply, Finished: true, Winner: "robot"})
	assert.Equal(t, remote.StatusFinished, over.Status)
	assert.Equal(t, "robot", over.Winner)
	assert.Nil(t, over.Position)

	m, err := over.Move()
	var gameOver *engine.GameOverError
	require.ErrorAs(t, err, &gameOver)
	assert.Equal(t, "robot", gameOver.Winner)
	assert.Equal(t, engine.Move{}, m)
}

func TestSpectatorReceivesMoves(t *testing.T) {
	ts, hub := setupTestServer(t)
	ctx := context.Background()
	client := remote.NewClient(ts.URL, "alice", "alice-secret")

	id, _, err := client.CreateGame(ctx)
	require.NoError(t, err)

	header := http.Header{}
	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	req.SetBasicAuth("alice", "alice-secret")
	header.Set("Authorization", req.Header.Get("Authorization"))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?partie=" + id
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(id) == 1 }, time.Second, 5*time.Millisecond)

	_, err = client.PlayMove(ctx, id, engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 2}})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var message websocket.Message
	require.NoError(t, conn.ReadJSON(&message))
	assert.Equal(t, id, message.GameID)
	assert.Equal(t, websocket.EventStateUpdate, message.Event)
	require.NotNil(t, message.State)
	assert.Equal(t, engine.Cell{X: 5, Y: 8}, message.State.Players[1].Position)
}

func TestWebSocketRequiresGame(t *testing.T) {
	ts, _ := setupTestServer(t)

	header := http.Header{}
	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	req.SetBasicAuth("alice", "alice-secret")
	header.Set("Authorization", req.Header.Get("Authorization"))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?partie=missing"
	_, resp, err := gorillaws.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/transport/remote"
)

// fakeServer is an in-memory match server with a fixed opponent reply.
type fakeServer struct {
	state   engine.State
	reply   engine.Move
	playErr error
	played  []engine.Move
	deleted []string
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		state: engine.NewState("alice", "robot"),
		reply: engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 8}},
	}
}

func (f *fakeServer) Player() string { return "alice" }

func (f *fakeServer) CreateGame(ctx context.Context) (string, engine.State, error) {
	return "g1", f.state, nil
}

func (f *fakeServer) GetGame(ctx context.Context, id string) (string, engine.State, error) {
	if id != "g1" {
		return "", engine.State{}, fmt.Errorf("%w: %s", remote.ErrNotFound, id)
	}
	return id, f.state, nil
}

func (f *fakeServer) ListGames(ctx context.Context) ([]remote.GameResponse, error) {
	return []remote.GameResponse{{ID: "g1", State: f.state}}, nil
}

func (f *fakeServer) PlayMove(ctx context.Context, id string, m engine.Move) (engine.Move, error) {
	f.played = append(f.played, m)
	if f.playErr != nil {
		return engine.Move{}, f.playErr
	}
	return f.reply, nil
}

func (f *fakeServer) DeleteGame(ctx context.Context, id string) error {
	if id != "g1" {
		return fmt.Errorf("%w: %s", remote.ErrNotFound, id)
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return content.Text
}

func TestNewClient(t *testing.T) {
	client := NewClient(newFakeServer())

	require.NotNil(t, client.GetMCPServer())

	ctx := context.Background()
	client.GetMCPServer().HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`))
	response := client.GetMCPServer().HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))
	data, err := json.Marshal(response)
	require.NoError(t, err)
	for _, name := range []string{"create_game", "list_games", "delete_game", "game_state", "analyze_position", "play_move"} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}
}

func TestHandleCreateGame(t *testing.T) {
	client := NewClient(newFakeServer())

	result, err := client.handleCreateGame(context.Background(), callTool("create_game", nil))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Created game: g1")
	assert.Contains(t, text, "1=alice")
}

func TestHandleListGames(t *testing.T) {
	client := NewClient(newFakeServer())

	result, err := client.handleListGames(context.Background(), callTool("list_games", nil))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Games (1)")
	assert.Contains(t, text, "g1 (turn 1, alice at (5,1), robot at (5,9))")
}

func TestHandleDeleteGame(t *testing.T) {
	server := newFakeServer()
	client := NewClient(server)
	ctx := context.Background()

	result, err := client.handleDeleteGame(ctx, callTool("delete_game", map[string]interface{}{"game_id": "g1"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Deleted game: g1", resultText(t, result))
	assert.Equal(t, []string{"g1"}, server.deleted)

	result, err = client.handleDeleteGame(ctx, callTool("delete_game", map[string]interface{}{"game_id": "nope"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = client.handleDeleteGame(ctx, callTool("delete_game", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleGameState(t *testing.T) {
	client := NewClient(newFakeServer())
	ctx := context.Background()

	result, err := client.handleGameState(ctx, callTool("game_state", map[string]interface{}{"game_id": "g1"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.True(t, strings.HasPrefix(resultText(t, result), "Turn 1\nLegend:"))

	result, err = client.handleGameState(ctx, callTool("game_state", map[string]interface{}{"game_id": "nope"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = client.handleGameState(ctx, callTool("game_state", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleAnalyzePosition(t *testing.T) {
	client := NewClient(newFakeServer())

	result, err := client.handleAnalyzePosition(context.Background(), callTool("analyze_position", map[string]interface{}{"game_id": "g1"}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "alice (player 1) at (5,1), 10 walls left")
	assert.Contains(t, text, "legal moves: (4,1) (5,2) (6,1)")
	assert.Contains(t, text, "distance to row 9: 8, next step (5,2)")
	assert.Contains(t, text, "distance to row 1: 8, next step (5,8)")
}

func TestHandlePlayMove(t *testing.T) {
	ctx := context.Background()

	t.Run("opponent answers", func(t *testing.T) {
		fake := newFakeServer()
		client := NewClient(fake)

		result, err := client.handlePlayMove(ctx, callTool("play_move", map[string]interface{}{
			"game_id": "g1", "kind": "MH", "x": float64(4), "y": float64(7),
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), "Opponent answered D (5,8)")
		assert.Equal(t, []engine.Move{{Kind: engine.KindWallHorizontal, Target: engine.Cell{X: 4, Y: 7}}}, fake.played)
	})

	t.Run("game over", func(t *testing.T) {
		fake := newFakeServer()
		fake.playErr = &engine.GameOverError{Winner: "alice"}
		client := NewClient(fake)

		result, err := client.handlePlayMove(ctx, callTool("play_move", map[string]interface{}{
			"game_id": "g1", "kind": "D", "x": float64(5), "y": float64(9),
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), "Game over, alice won.")
	})

	t.Run("rule violation carries its code", func(t *testing.T) {
		fake := newFakeServer()
		fake.playErr = fmt.Errorf("%w: %w: nope", remote.ErrRuleViolation, engine.ErrIllegalMove)
		client := NewClient(fake)

		result, err := client.handlePlayMove(ctx, callTool("play_move", map[string]interface{}{
			"game_id": "g1", "kind": "D", "x": float64(5), "y": float64(3),
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "(illegal_move)")
	})

	t.Run("missing arguments", func(t *testing.T) {
		fake := newFakeServer()
		client := NewClient(fake)

		result, err := client.handlePlayMove(ctx, callTool("play_move", map[string]interface{}{
			"game_id": "g1", "kind": "D", "x": 2.5, "y": float64(3),
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Empty(t, fake.played)
	})
}

func TestAnalyzeRejectsInvalidState(t *testing.T) {
	state := engine.NewState("alice", "alice")
	_, err := analyze(state)
	assert.ErrorIs(t, err, engine.ErrInvalidState)
}

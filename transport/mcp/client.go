package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/render/text"
	"github.com/wricardo/quoridor/transport/remote"
)

// MatchServer is the part of the match server protocol the tools use.
// *remote.Client implements it.
type MatchServer interface {
	Player() string
	CreateGame(ctx context.Context) (string, engine.State, error)
	GetGame(ctx context.Context, id string) (string, engine.State, error)
	ListGames(ctx context.Context) ([]remote.GameResponse, error)
	PlayMove(ctx context.Context, id string, m engine.Move) (engine.Move, error)
	DeleteGame(ctx context.Context, id string) error
}

// Client is a thin MCP client that proxies to a match server
type Client struct {
	remote    MatchServer
	mcpServer *server.MCPServer
}

// NewClient creates a new MCP client playing through remote
func NewClient(remote MatchServer) *Client {
	c := &Client{remote: remote}
	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Quoridor",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Quoridor - MCP Interface

You play Quoridor as player 1 against the match server's opponent.

RULES:
- The board is 9x9, columns x and rows y both numbered 1 to 9.
- Player 1 starts on (5,1) and wins by reaching row 9; player 2 starts on (5,9) and wins on row 1.
- A turn is either a pawn move ("D") or a wall ("MH" horizontal, "MV" vertical), ten walls each.
- A horizontal wall at (x,y) blocks rows y and y+1 in columns x and x+1; a vertical wall at (x,y) blocks columns x and x+1 in rows y and y+1. Anchors range from 1 to 8.
- Walls may not overlap or cross, and may never cut a player off from its goal row.
- A pawn facing the other pawn jumps over it, or diagonally when a wall or the board edge is behind it.

AVAILABLE TOOLS:
- create_game: Start a new game
- list_games: List your games
- game_state: Show the board of a game
- delete_game: Abandon a game
- analyze_position: Legal pawn moves and shortest paths for both players
- play_move: Play a move and get the opponent's answer`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	gameID := map[string]interface{}{
		"type":        "string",
		"description": "Game ID",
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new game against the server's opponent",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List your games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_game",
		Description: "Abandon one of your games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameID},
			Required:   []string{"game_id"},
		},
	}, c.handleDeleteGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board of a game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameID},
			Required:   []string{"game_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "analyze_position",
		Description: "List legal pawn moves and shortest paths to goal for both players",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameID},
			Required:   []string{"game_id"},
		},
	}, c.handleAnalyzePosition)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "play_move",
		Description: "Play a pawn move or place a wall",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameID,
				"kind": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(engine.KindMove), string(engine.KindWallHorizontal), string(engine.KindWallVertical)},
					"description": "D moves the pawn, MH places a horizontal wall, MV a vertical wall",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Target column, or wall anchor column",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Target row, or wall anchor row",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you play this move",
				},
			},
			Required: []string{"game_id", "kind", "x", "y"},
		},
	}, c.handlePlayMove)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// number reads an integer argument, which JSON delivers as a float.
func number(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), v == float64(int(v))
	case int:
		return v, true
	}
	return 0, false
}

// Tool handlers

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, state, err := c.remote.CreateGame(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created game: %s\n\n%s", id, text.Format(state))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	games, err := c.remote.ListGames(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Games (%d):\n", len(games))
	for _, g := range games {
		fmt.Fprintf(&b, "- %s (turn %d, %s at %s, %s at %s)\n", g.ID, g.State.Turn,
			g.State.Players[0].Name, g.State.Players[0].Position,
			g.State.Players[1].Name, g.State.Players[1].Position)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleDeleteGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := arguments(request)["game_id"].(string)
	if id == "" {
		return mcp.NewToolResultError("game_id is required"), nil
	}

	if err := c.remote.DeleteGame(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted game: %s", id)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := arguments(request)["game_id"].(string)
	if id == "" {
		return mcp.NewToolResultError("game_id is required"), nil
	}

	_, state, err := c.remote.GetGame(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatState(state)), nil
}

func (c *Client) handleAnalyzePosition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := arguments(request)["game_id"].(string)
	if id == "" {
		return mcp.NewToolResultError("game_id is required"), nil
	}

	_, state, err := c.remote.GetGame(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	analysis, err := analyze(state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(analysis), nil
}

func (c *Client) handlePlayMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["game_id"].(string)
	kind, _ := args["kind"].(string)
	x, okX := number(args, "x")
	y, okY := number(args, "y")
	if id == "" || kind == "" || !okX || !okY {
		return mcp.NewToolResultError("game_id, kind, x and y are required"), nil
	}

	move := engine.Move{Kind: engine.MoveKind(kind), Target: engine.Cell{X: x, Y: y}}
	reply, err := c.remote.PlayMove(ctx, id, move)

	var over *engine.GameOverError
	switch {
	case errors.As(err, &over):
		return mcp.NewToolResultText(fmt.Sprintf("You played %s.\nGame over, %s won.", move, over.Winner)), nil
	case err != nil:
		msg := err.Error()
		if code := engine.Code(err); code != "" {
			msg = fmt.Sprintf("%s (%s)", msg, code)
		}
		return mcp.NewToolResultError(msg), nil
	}

	_, state, err := c.remote.GetGame(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("You played %s.\nOpponent answered %s.\n\n%s", move, reply, formatState(state))
	return mcp.NewToolResultText(result), nil
}

func formatState(state engine.State) string {
	return fmt.Sprintf("Turn %d\n%s", state.Turn, text.Format(state))
}

// analyze describes the legal pawn moves and shortest paths of both
// players.
func analyze(state engine.State) (string, error) {
	e, err := engine.New(state)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, p := range state.Players {
		moves, err := e.LegalMoves(p.Name)
		if err != nil {
			return "", err
		}
		path, err := e.ShortestPath(p.Name)
		if err != nil {
			return "", err
		}
		cells := make([]string, len(moves))
		for j, m := range moves {
			cells[j] = m.String()
		}
		fmt.Fprintf(&b, "%s (player %d) at %s, %d walls left\n", p.Name, i+1, p.Position, p.Walls)
		fmt.Fprintf(&b, "  legal moves: %s\n", strings.Join(cells, " "))
		fmt.Fprintf(&b, "  distance to row %d: %d, next step %s\n", engine.GoalRow(i), len(path)-2, path[1])
	}
	return b.String(), nil
}

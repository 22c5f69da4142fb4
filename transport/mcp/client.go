package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/boards"
	"github.com/Ceda-EI/snakes-and-ladders-bot/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Snakes and Ladders",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snakes and Ladders - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Reach cell 100 first. Each turn a player rolls a six-sided dice and moves
forward; ladders carry you up, snakes drag you down.

AVAILABLE TOOLS:
- new_game: Create a game in a room (the creator becomes the admin)
- join_game: Add a player to the roster
- leave_game: Remove a player from the roster
- begin_game: Start play (admin only)
- roll_dice: Throw the dice for a player on their turn
- skip_turn: Skip a player who idled past the timeout
- kill_game: Destroy the room's game (admin only)
- game_status: Room status, roster, and whose turn it is
- update_setting: Toggle a house rule (admin only)
- list_boards: List the board catalog
- game_rules: Get the complete game rules

NOTE: A roll is applied after a short animation delay; check game_status
after rolling to see the committed position.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	roomProp := map[string]interface{}{
		"type":        "string",
		"description": "Room ID (negative for group rooms)",
	}
	playerProp := map[string]interface{}{
		"type":        "string",
		"description": "Player ID",
	}

	// Game lifecycle
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Create a game in a room over a randomly chosen board. The creator becomes the admin.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id":   roomProp,
				"player_id": playerProp,
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the creator",
				},
			},
			Required: []string{"room_id", "player_id"},
		},
	}, c.handleNewGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "begin_game",
		Description: "Start the room's game. Admin only; requires at least one joined player.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id":   roomProp,
				"player_id": playerProp,
			},
			Required: []string{"room_id", "player_id"},
		},
	}, c.handleBeginGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "kill_game",
		Description: "Destroy the room's game. Admin only.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id":   roomProp,
				"player_id": playerProp,
			},
			Required: []string{"room_id", "player_id"},
		},
	}, c.handleKillGame)

	// Roster
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "join_game",
		Description: "Add a player to the room's roster. Allowed before and during play.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id":   roomProp,
				"player_id": playerProp,
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the player",
				},
			},
			Required: []string{"room_id", "player_id"},
		},
	}, c.handleJoinGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "leave_game",
		Description: "Remove a player from the room's roster.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id":   roomProp,
				"player_id": playerProp,
			},
			Required: []string{"room_id", "player_id"},
		},
	}, c.handleLeaveGame)

	// Play
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "roll_dice",
		Description: "Throw the dice for a player. Only valid on their turn; the move is applied after a short delay.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id":   roomProp,
				"player_id": playerProp,
			},
			Required: []string{"room_id", "player_id"},
		},
	}, c.handleRollDice)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "skip_turn",
		Description: "Skip the current turn-holder if they idled past the turn timeout.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": roomProp,
			},
			Required: []string{"room_id"},
		},
	}, c.handleSkipTurn)

	// State
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_status",
		Description: "Get the room's status: board, roster with positions, settings, and whose turn it is.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": roomProp,
			},
			Required: []string{"room_id"},
		},
	}, c.handleGameStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "update_setting",
		Description: "Toggle a house rule. Admin only. Keys: new_turn_on_six, delete_boards_on_redraw.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id":   roomProp,
				"player_id": playerProp,
				"key": map[string]interface{}{
					"type":        "string",
					"enum":        []string{service.SettingNewTurnOnSix, service.SettingDeleteBoards},
					"description": "Setting key",
				},
				"enabled": map[string]interface{}{
					"type":        "boolean",
					"description": "New value",
				},
			},
			Required: []string{"room_id", "player_id", "key", "enabled"},
		},
	}, c.handleUpdateSetting)

	// Boards
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List the board catalog",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListBoards)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get the complete game rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	playerID, _ := args["player_id"].(string)
	playerName, _ := args["player_name"].(string)

	body := map[string]string{
		"player_id":   playerID,
		"player_name": playerName,
	}

	var info service.GameInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/rooms/%s/game", roomID), body, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created game in room %s\nBoard: %s\nAdmin: %s\n\nPlayers can now join_game, then the admin begin_game.",
		info.RoomID, info.BoardName, info.AdminID)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBeginGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	playerID, _ := args["player_id"].(string)

	var view service.BoardView
	err := c.apiCall("POST", fmt.Sprintf("/api/rooms/%s/begin", roomID), map[string]string{"player_id": playerID}, &view)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Game started!\n\n" + formatBoardView(&view)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleKillGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	playerID, _ := args["player_id"].(string)

	err := c.apiCall("DELETE", fmt.Sprintf("/api/rooms/%s/game?player=%s", roomID, playerID), nil, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Game in room %s killed", roomID)), nil
}

func (c *Client) handleJoinGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	playerID, _ := args["player_id"].(string)
	playerName, _ := args["player_name"].(string)

	body := map[string]string{
		"player_id":   playerID,
		"player_name": playerName,
	}

	var info service.JoinInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/rooms/%s/players", roomID), body, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s joined as %s (%d player(s) in the game)",
		info.PlayerName, info.Color.Name, info.PlayerCount)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLeaveGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	playerID, _ := args["player_id"].(string)

	err := c.apiCall("DELETE", fmt.Sprintf("/api/rooms/%s/players/%s", roomID, playerID), nil, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Player %s left the game", playerID)), nil
}

func (c *Client) handleRollDice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	playerID, _ := args["player_id"].(string)

	var receipt service.RollReceipt
	err := c.apiCall("POST", fmt.Sprintf("/api/rooms/%s/roll", roomID), map[string]string{"player_id": playerID}, &receipt)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s rolled a %d. The move applies in %s; use game_status to see the committed position.",
		receipt.PlayerName, receipt.Steps, receipt.Delay)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSkipTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)

	var info service.SkipInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/rooms/%s/skip", roomID), map[string]string{}, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Skipped %s. It is now %s's turn.",
		info.SkippedPlayer.Name, info.NextPlayer.Name)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)

	var info service.StatusInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/rooms/%s", roomID), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStatus(&info)), nil
}

func (c *Client) handleUpdateSetting(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	playerID, _ := args["player_id"].(string)
	key, _ := args["key"].(string)
	enabled, _ := args["enabled"].(bool)

	body := map[string]interface{}{
		"player_id": playerID,
		"key":       key,
		"enabled":   enabled,
	}

	var settings map[string]bool
	err := c.apiCall("PUT", fmt.Sprintf("/api/rooms/%s/settings", roomID), body, &settings)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Settings:\n"
	for k, v := range settings {
		result += fmt.Sprintf("- %s: %v\n", k, v)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var infos []boards.BoardInfo
	err := c.apiCall("GET", "/api/boards", nil, &infos)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Boards:\n\n"
	for _, info := range infos {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Hazards: %d\n\n",
			info.Name, info.BoardID, info.Description, info.Hazards)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := `Snakes and Ladders - Complete Rules

GAME OBJECTIVE:
Be the first player to reach cell 100.

BOARD:
A 10x10 grid numbered 1 to 100 in boustrophedon order: cell 1 sits at the
bottom-left, the numbering runs right along the bottom row, then left along
the next row up, alternating to cell 100 at the top.

GAME FLOW:
1. new_game creates a game; the creator becomes the admin
2. Players join_game and enter the roster in turn order
3. The admin begin_game starts play
4. On your turn, roll_dice moves you forward by the dice value
5. First to land exactly on cell 100 wins; the game then ends

MOVEMENT RULES:
- Overshoot: if your roll would carry you past 100, you stay put (the
  turn still passes)
- Ladders: landing on a ladder's foot carries you up to its top
- Snakes: landing on a snake's head drags you down to its tail
- A ladder or snake is applied at most once per move, never chained

TURN RULES:
- Turn order is join order, rotating round-robin
- Players who join mid-game start at cell 0 and enter the rotation
- A player who leaves is removed; the rotation continues with the rest
- skip_turn removes the turn from a player who idled past the timeout

HOUSE RULES (update_setting, admin only):
- new_turn_on_six: rolling a six grants another turn
- delete_boards_on_redraw: the previous board image is removed when a
  fresh one is posted

ADMIN:
The game's creator is the admin. Only the admin can begin_game,
kill_game, and update_setting.`

	return mcp.NewToolResultText(rules), nil
}

// Formatting helpers

func formatStatus(info *service.StatusInfo) string {
	var b strings.Builder
	status := info.Status

	b.WriteString(fmt.Sprintf("Room: %s\nBoard: %s\n", status.RoomID, status.BoardName))
	if status.Started {
		b.WriteString("State: in progress\n")
	} else {
		b.WriteString("State: waiting for begin_game\n")
	}

	b.WriteString(fmt.Sprintf("\nPlayers (%d):\n", len(status.Players)))
	for _, p := range status.Players {
		marker := " "
		if status.Turn != nil && status.Turn.ID == p.ID {
			marker = "→"
		}
		b.WriteString(fmt.Sprintf("%s %s (%s) at cell %d\n", marker, p.Name, p.Color.Name, p.Position))
	}

	b.WriteString(fmt.Sprintf("\nSettings:\n- %s: %v\n- %s: %v\n",
		service.SettingNewTurnOnSix, status.Settings.NewTurnOnSix,
		service.SettingDeleteBoards, status.Settings.DeleteBoardsOnRedraw))

	if status.Turn != nil {
		b.WriteString(fmt.Sprintf("\nIt is %s's turn.", status.Turn.Name))
	}

	return b.String()
}

func formatBoardView(view *service.BoardView) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Board image: %s\n", view.BoardImage))
	if len(view.Placements) == 0 {
		b.WriteString("No tokens on the board yet.\n")
	} else {
		b.WriteString("Tokens:\n")
		for _, p := range view.Placements {
			b.WriteString(fmt.Sprintf("- %s (%s) on cell %d at (%d,%d)\n",
				p.PlayerName, p.Color.Name, p.Cell, p.Pixel.X, p.Pixel.Y))
		}
	}
	if view.Turn != nil {
		b.WriteString(fmt.Sprintf("It is %s's turn.\n", view.Turn.Name))
	}

	return b.String()
}

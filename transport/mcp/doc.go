// Package mcp provides a Model Context Protocol surface for the snakes and
// ladders service.
//
// The mcp package implements:
//   - An MCP client that proxies every tool call to the REST API
//   - Tool definitions for the full game lifecycle
//   - Text formatting of room status and board views for AI agents
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - new_game: Create a game in a room (the creator becomes the admin)
//   - join_game: Add a player to the roster
//   - leave_game: Remove a player from the roster
//   - begin_game: Start play (admin only)
//   - roll_dice: Throw the dice for the turn-holder
//   - skip_turn: Skip a player who idled past the turn timeout
//   - kill_game: Destroy the room's game (admin only)
//   - game_status: Room status, roster, and whose turn it is
//   - update_setting: Toggle a house rule (admin only)
//   - list_boards: List the board catalog
//   - game_rules: Get the complete game rules
//
// Proxy Design:
//
// The client holds no game state. Every tool handler issues an HTTP request
// against the REST API and formats the JSON response as text, so the MCP
// surface and the WebSocket/HTTP surfaces always agree.
//
// Deferred Rolls:
//
// roll_dice returns a receipt, not an outcome: the move is applied after a
// short animation delay on the server. Agents should call game_status after
// the delay to read the committed position.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp

// Package api provides HTTP REST API handlers for the snakes and ladders
// game server.
//
// The api package implements:
//   - RESTful endpoints for room game operations
//   - Board catalog listing
//   - WebSocket upgrade handling
//   - Health checking
//
// Endpoints:
//
// Game Lifecycle:
//   - POST /api/rooms/{id}/game - Create a game in the room
//   - DELETE /api/rooms/{id}/game?player={id} - Kill the game (admin)
//   - POST /api/rooms/{id}/begin - Start the game (admin)
//
// Roster:
//   - POST /api/rooms/{id}/players - Join the game
//   - DELETE /api/rooms/{id}/players/{playerId} - Leave the game
//
// Play:
//   - POST /api/rooms/{id}/roll - Throw the dice
//   - POST /api/rooms/{id}/skip - Skip an idle turn-holder
//
// State:
//   - GET /api/rooms/{id} - Room status and board view
//   - PUT /api/rooms/{id}/settings - Toggle a house rule (admin)
//   - GET /api/rooms/{id}/greeting - The /start reply for the room
//
// Boards:
//   - GET /api/boards - List the board catalog
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Commands identify the acting player
// in the body:
//
//	{
//	  "player_id": "u1",
//	  "player_name": "Alice"
//	}
//
// A roll returns 202 Accepted with a receipt; the applied move is delivered
// over the room's WebSocket connection as a "move" event once the roll
// delay elapses. A roll body carrying "forwarded": true marks a relayed
// roll; it is acknowledged but never staged.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "it is not your turn"
//	}
//
// 404 for unknown rooms or players, 409 for conflicting state (duplicate
// game, duplicate player, roll already pending), 403 for admin-gated
// commands and private rooms, 400 otherwise.
package api

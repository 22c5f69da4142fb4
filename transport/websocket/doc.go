// Package websocket provides WebSocket transport for the snakes and ladders
// game server.
//
// The websocket package implements:
//   - Real-time bidirectional communication
//   - Room-aware WebSocket connections
//   - Command dispatch to the game service
//   - Broadcast of committed moves to room members
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections, grouped by room. Each client connection is handled
// by a dedicated goroutine pair that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Frames are JSON-encoded:
//   - Incoming: {action: "roll", player_id: "u1"}
//   - Outgoing: {room_id: "-100123", event: "move", data: {...}}
//
// A roll is acknowledged with a "roll_staged" event; the applied move
// arrives later as a "move" event once the roll delay elapses, because the
// hub is registered as the service's MoveNotifier. A roll command carrying
// forwarded: true marks a relayed roll and is dropped without a reply.
//
// Room Integration:
//
// Clients specify their room via query parameter (?room=-100123) when
// establishing the connection. Events are broadcast only to clients in the
// same room; command errors go back to the issuing client alone.
//
// Usage:
//
//	hub := websocket.NewHub(gameService, logger)
//	svc.SetNotifier(hub)
//	go hub.Run()
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and send commands
// simultaneously without blocking each other.
package websocket

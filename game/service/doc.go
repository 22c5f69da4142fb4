// Package service provides the business logic layer for the snakes and
// ladders game server.
//
// The service package implements:
//   - Game lifecycle (create, begin, kill) with admin gating
//   - Roster management (join, leave) with palette color assignment
//   - Dice rolls with deferred application and win handling
//   - Timeout-based turn skipping
//   - Room status and board view production
//   - House-rule settings
//
// Core Interfaces:
//
// GameService is the command surface shared by every transport.
// MoveNotifier is the callback a transport registers to receive committed
// moves, since a roll resolves only after its animation delay.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the per-room sessions. A roll is staged on the session immediately,
// then committed through the TurnScheduler after the roll delay; the
// committed outcome is pushed to the MoveNotifier rather than returned to
// the caller. A win destroys the room's session, so the next /newgame in
// that room starts fresh.
//
// Usage:
//
//	registry := session.NewRegistry(logger)
//	catalog, _ := boards.NewManager("boards")
//	svc := service.NewGameService(registry, catalog, session.TimerScheduler{}, logger, service.Config{})
//	svc.SetNotifier(hub)
//
//	info, err := svc.NewGame(ctx, roomID, userID, userName)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	receipt, err := svc.Roll(ctx, roomID, userID, false)
package service

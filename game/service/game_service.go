package service

import (
	"context"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/boards"
	"github.com/Ceda-EI/snakes-and-ladders-bot/game/session"
)

// GameService defines the room commands exposed to every transport.
type GameService interface {
	// Game Lifecycle
	NewGame(ctx context.Context, roomID, creatorID, creatorName string) (*GameInfo, error)
	Begin(ctx context.Context, roomID, requesterID string) (*BoardView, error)
	Kill(ctx context.Context, roomID, requesterID string) error

	// Roster
	Join(ctx context.Context, roomID, playerID, playerName string) (*JoinInfo, error)
	Leave(ctx context.Context, roomID, playerID string) error

	// Play
	Roll(ctx context.Context, roomID, playerID string, isForwarded bool) (*RollReceipt, error)
	Skip(ctx context.Context, roomID string) (*SkipInfo, error)

	// State
	Status(ctx context.Context, roomID string) (*StatusInfo, error)
	UpdateSetting(ctx context.Context, roomID, requesterID, key string, enabled bool) (session.Settings, error)

	// Boards
	ListBoards(ctx context.Context) ([]*boards.BoardInfo, error)

	// Greeting returns the /start reply for a room.
	Greeting(ctx context.Context, roomID string) string

	// SetNotifier registers the transport callback for committed moves.
	SetNotifier(notifier MoveNotifier)
}

// MoveNotifier receives committed move outcomes. A transport registers one
// so deferred roll commits reach the room's clients.
type MoveNotifier interface {
	MoveCommitted(outcome *MoveOutcome)
}

// MoveNotifierFunc adapts a function to the MoveNotifier interface.
type MoveNotifierFunc func(outcome *MoveOutcome)

// MoveCommitted calls f(outcome).
func (f MoveNotifierFunc) MoveCommitted(outcome *MoveOutcome) {
	f(outcome)
}

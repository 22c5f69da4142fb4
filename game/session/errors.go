package session

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSessionExists   = errors.New("a game is already running in this room")
	ErrSessionNotFound = errors.New("no game in progress")
	ErrNotAdmin        = errors.New("only the game admin can do that")
	ErrGameNotStarted  = errors.New("the game has not started yet")
	ErrGameInProgress  = errors.New("the game has already started")
	ErrRollPending     = errors.New("a roll is already being applied")
	ErrStaleTicket     = errors.New("roll ticket is no longer valid")
)

// SkipCooldownError reports a forced skip attempted before the turn timeout
// elapsed, carrying the remaining wait.
type SkipCooldownError struct {
	Remaining time.Duration
}

func (e *SkipCooldownError) Error() string {
	return fmt.Sprintf("turn cannot be skipped yet, wait %s", e.Remaining.Round(time.Second))
}

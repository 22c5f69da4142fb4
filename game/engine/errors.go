package engine

import (
	"errors"
	"fmt"
)

var (
	ErrPlayerExists   = errors.New("player already in the game")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNotTurn        = errors.New("not this player's turn")
	ErrNoPlayers      = errors.New("no players in the game")
)

// OutOfRangeError reports a cell number outside [FirstCell, LastCell].
type OutOfRangeError struct {
	Cell int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("cell %d out of range [%d,%d]", e.Cell, FirstCell, LastCell)
}

package service

import "errors"

var (
	// ErrGroupOnly rejects game commands issued from a private chat.
	ErrGroupOnly = errors.New("games can only be played in group rooms")

	// ErrUnknownSetting rejects a settings key the room does not have.
	ErrUnknownSetting = errors.New("unknown setting")
)

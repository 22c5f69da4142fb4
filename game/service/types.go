package service

import (
	"time"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/engine"
	"github.com/Ceda-EI/snakes-and-ladders-bot/game/session"
	"github.com/Ceda-EI/snakes-and-ladders-bot/render"
)

// GameInfo describes a freshly created game.
type GameInfo struct {
	RoomID     string `json:"room_id"`
	BoardID    string `json:"board_id"`
	BoardName  string `json:"board_name"`
	BoardImage string `json:"board_image"`
	AdminID    string `json:"admin_id"`
}

// JoinInfo describes the roster slot a new player received.
type JoinInfo struct {
	PlayerID    string       `json:"player_id"`
	PlayerName  string       `json:"player_name"`
	Color       engine.Color `json:"color"`
	PlayerCount int          `json:"player_count"`
}

// BoardView is everything a transport needs to draw the board for a room:
// the base image reference, where each token sits, and whose turn it is.
type BoardView struct {
	BoardImage string             `json:"board_image"`
	Placements []render.Placement `json:"placements"`
	Turn       *engine.Player     `json:"turn,omitempty"`
}

// RollReceipt acknowledges a staged roll. The move itself is applied after
// Delay; the outcome is delivered through the MoveNotifier.
type RollReceipt struct {
	TicketID   string        `json:"ticket_id"`
	PlayerID   string        `json:"player_id"`
	PlayerName string        `json:"player_name"`
	Steps      int           `json:"steps"`
	Delay      time.Duration `json:"delay"`
}

// MoveOutcome is the committed result of a roll or a forced skip.
type MoveOutcome struct {
	RoomID          string         `json:"room_id"`
	Player          engine.Player  `json:"player"`
	Steps           int            `json:"steps"`
	FinalPosition   int            `json:"final_position"`
	HazardDirection int            `json:"hazard_direction"`
	NextPlayer      *engine.Player `json:"next_player,omitempty"`
	Won             bool           `json:"won"`
	Caption         string         `json:"caption"`
	Board           *BoardView     `json:"board"`
}

// SkipInfo describes a forced turn skip.
type SkipInfo struct {
	SkippedPlayer engine.Player `json:"skipped_player"`
	NextPlayer    engine.Player `json:"next_player"`
}

// StatusInfo is a room's full public state.
type StatusInfo struct {
	Status session.Status `json:"status"`
	Board  *BoardView     `json:"board"`
}

package session

import (
	"fmt"
	"time"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/engine"
)

// SessionPersistence defines the interface for persisting room sessions.
type SessionPersistence interface {
	// Save persists a session snapshot to storage
	Save(record *PersistedSession) error

	// Load retrieves a session snapshot from storage by room id
	Load(roomID string) (*PersistedSession, error)

	// Delete removes a session from storage
	Delete(roomID string) error

	// ListAll returns all persisted room ids
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(roomID string) bool
}

// PersistedSession is the durable layout of one room's game. It round-trips
// losslessly across process restarts.
type PersistedSession struct {
	RoomID               string              `json:"room_id"`
	BoardID              string              `json:"board_id"`
	BoardName            string              `json:"board_name"`
	BoardImage           string              `json:"board_image"`
	Hazards              []engine.HazardPair `json:"hazards"`
	Players              []engine.Player     `json:"players"`
	TurnIndex            int                 `json:"turn_index"`
	AdminID              string              `json:"admin_id"`
	Started              bool                `json:"started"`
	NewTurnOnSix         bool                `json:"new_turn_on_six"`
	DeleteBoardsOnRedraw bool                `json:"delete_boards_on_redraw"`
	LastMoveTimestamp    time.Time           `json:"last_move_timestamp"`
	LastBoardMessageRef  string              `json:"last_board_message_ref,omitempty"`
}

// Persisted snapshots the session into its durable layout.
func (s *Session) Persisted() *PersistedSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.engine.State()
	return &PersistedSession{
		RoomID:               s.roomID,
		BoardID:              s.boardID,
		BoardName:            s.board.Name,
		BoardImage:           s.board.Image,
		Hazards:              append([]engine.HazardPair(nil), s.board.Hazards...),
		Players:              state.Players,
		TurnIndex:            state.TurnIndex,
		AdminID:              s.adminID,
		Started:              s.started,
		NewTurnOnSix:         s.settings.NewTurnOnSix,
		DeleteBoardsOnRedraw: s.settings.DeleteBoardsOnRedraw,
		LastMoveTimestamp:    s.lastMove,
		LastBoardMessageRef:  s.lastBoardMsgRef,
	}
}

// FromPersisted reconstructs a live session from its durable layout.
func FromPersisted(record *PersistedSession) (*Session, error) {
	if record == nil {
		return nil, fmt.Errorf("record cannot be nil")
	}

	board := &engine.Board{
		Name:    record.BoardName,
		Image:   record.BoardImage,
		Hazards: record.Hazards,
	}

	sess, err := NewSession(record.RoomID, record.BoardID, board, record.AdminID, Settings{
		NewTurnOnSix:         record.NewTurnOnSix,
		DeleteBoardsOnRedraw: record.DeleteBoardsOnRedraw,
	})
	if err != nil {
		return nil, err
	}

	if err := sess.engine.Restore(engine.State{
		Players:        record.Players,
		TurnIndex:      record.TurnIndex,
		BonusTurnOnSix: record.NewTurnOnSix,
	}); err != nil {
		return nil, fmt.Errorf("failed to restore engine state: %w", err)
	}

	sess.started = record.Started
	sess.lastMove = record.LastMoveTimestamp
	sess.lastBoardMsgRef = record.LastBoardMessageRef
	return sess, nil
}

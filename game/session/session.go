package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/engine"
)

// Settings are the live, admin-mutable house rules of one room.
type Settings struct {
	// NewTurnOnSix grants the roller another turn after a six.
	NewTurnOnSix bool `json:"new_turn_on_six"`

	// DeleteBoardsOnRedraw removes the previously posted board image when a
	// fresh one is sent.
	DeleteBoardsOnRedraw bool `json:"delete_boards_on_redraw"`
}

// RollTicket captures a staged dice roll: who rolled, what they rolled, and
// a unique id checked again at commit time. At most one ticket is
// outstanding per room.
type RollTicket struct {
	ID       string
	PlayerID string
	Steps    int

	cancel func()
}

// Session is one room's game: the board engine plus room-level
// configuration. All mutations go through the session mutex, so two
// near-simultaneous events for the same room cannot interleave.
type Session struct {
	mu sync.Mutex

	roomID   string
	boardID  string
	board    *engine.Board
	engine   *engine.BoardEngine
	adminID  string
	started  bool
	settings Settings

	lastMove        time.Time
	lastBoardMsgRef string
	pending         *RollTicket
	destroyed       bool
	createdAt       time.Time

	now func() time.Time
}

// Status is a read-only snapshot of a session.
type Status struct {
	RoomID    string          `json:"room_id"`
	BoardID   string          `json:"board_id"`
	BoardName string          `json:"board_name"`
	AdminID   string          `json:"admin_id"`
	Started   bool            `json:"started"`
	Settings  Settings        `json:"settings"`
	Players   []engine.Player `json:"players"`
	Turn      *engine.Player  `json:"turn,omitempty"`
	LastMove  time.Time       `json:"last_move"`
}

// NewSession creates a session for a room over the given board. The creator
// becomes the admin.
func NewSession(roomID, boardID string, board *engine.Board, adminID string, settings Settings) (*Session, error) {
	eng, err := engine.NewEngine(board, settings.NewTurnOnSix)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	now := time.Now()
	return &Session{
		roomID:    roomID,
		boardID:   boardID,
		board:     board,
		engine:    eng,
		adminID:   adminID,
		settings:  settings,
		lastMove:  now,
		createdAt: now,
		now:       time.Now,
	}, nil
}

// RoomID returns the room this session belongs to.
func (s *Session) RoomID() string {
	return s.roomID
}

// Board returns the board definition in play.
func (s *Session) Board() *engine.Board {
	return s.board
}

// IsAdmin reports whether id is the recorded game admin.
func (s *Session) IsAdmin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id == s.adminID
}

// Join adds a player to the roster. Joining is allowed before and during
// active play.
func (s *Session) Join(id, name string) (engine.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return engine.Color{}, ErrSessionNotFound
	}
	return s.engine.AddPlayer(id, name)
}

// Leave removes a player from the roster, preserving turn continuity for
// the remaining players.
func (s *Session) Leave(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return ErrSessionNotFound
	}
	if s.pending != nil && s.pending.PlayerID == id {
		s.cancelPendingLocked()
	}
	return s.engine.RemovePlayer(id)
}

// Begin starts the game. Only the admin may begin, rolls before Begin are
// rejected, and beginning twice is an error.
func (s *Session) Begin(requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return ErrSessionNotFound
	}
	if requesterID != s.adminID {
		return ErrNotAdmin
	}
	if s.started {
		return ErrGameInProgress
	}
	if s.engine.PlayerCount() == 0 {
		return engine.ErrNoPlayers
	}

	s.started = true
	s.lastMove = s.now()
	return nil
}

// UpdateSettings applies an admin-gated settings change. A change to
// NewTurnOnSix propagates into the engine immediately.
func (s *Session) UpdateSettings(requesterID string, apply func(*Settings)) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return Settings{}, ErrSessionNotFound
	}
	if requesterID != s.adminID {
		return Settings{}, ErrNotAdmin
	}

	apply(&s.settings)
	s.engine.SetBonusTurnOnSix(s.settings.NewTurnOnSix)
	return s.settings, nil
}

// Settings returns the current house rules.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Status returns a snapshot of the session for status displays.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		RoomID:    s.roomID,
		BoardID:   s.boardID,
		BoardName: s.board.Name,
		AdminID:   s.adminID,
		Started:   s.started,
		Settings:  s.settings,
		Players:   s.engine.Players(),
		LastMove:  s.lastMove,
	}
	if turn, ok := s.engine.Turn(); ok {
		status.Turn = &turn
	}
	return status
}

// StageRoll validates a dice roll and records it as the room's outstanding
// ticket. The caller schedules CommitRoll for the returned ticket; until the
// commit resolves, every further roll is rejected.
func (s *Session) StageRoll(playerID string, steps int) (*RollTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return nil, ErrSessionNotFound
	}
	if !s.started {
		return nil, ErrGameNotStarted
	}
	if s.pending != nil {
		return nil, ErrRollPending
	}

	turn, ok := s.engine.Turn()
	if !ok {
		return nil, engine.ErrNoPlayers
	}
	if turn.ID != playerID {
		return nil, engine.ErrNotTurn
	}

	ticket := &RollTicket{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Steps:    steps,
	}
	s.pending = ticket
	return ticket, nil
}

// AttachCancel stores the scheduler's cancel handle on the outstanding
// ticket so a later Destroy can stop the deferred commit.
func (s *Session) AttachCancel(ticketID string, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil && s.pending.ID == ticketID {
		s.pending.cancel = cancel
	}
}

// CommitRoll applies a staged roll. It re-validates at execution time: the
// session must still be alive and started, and the ticket must still be the
// outstanding one. A stale ticket returns ErrStaleTicket and mutates
// nothing, which makes delayed or duplicate delivery safe.
func (s *Session) CommitRoll(ticketID string) (engine.MoveResult, engine.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed || !s.started || s.pending == nil || s.pending.ID != ticketID {
		return engine.MoveResult{}, engine.Player{}, ErrStaleTicket
	}

	ticket := s.pending
	s.pending = nil

	result, err := s.engine.Move(ticket.PlayerID, ticket.Steps, true)
	if err != nil {
		return engine.MoveResult{}, engine.Player{}, err
	}

	s.lastMove = s.now()

	player := engine.Player{}
	for _, p := range s.engine.Players() {
		if p.ID == ticket.PlayerID {
			player = p
			break
		}
	}
	return result, player, nil
}

// ForceSkip rotates the turn away from a player who idled past the timeout.
// Rotation only: no position change, no hazard, even when the skipped player
// rests on a hazard start.
func (s *Session) ForceSkip(timeout time.Duration) (engine.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return engine.Player{}, ErrSessionNotFound
	}
	if !s.started {
		return engine.Player{}, ErrGameNotStarted
	}

	elapsed := s.now().Sub(s.lastMove)
	if elapsed < timeout {
		return engine.Player{}, &SkipCooldownError{Remaining: timeout - elapsed}
	}

	if _, ok := s.engine.Turn(); !ok {
		return engine.Player{}, engine.ErrNoPlayers
	}

	if err := s.engine.AdvanceTurn(); err != nil {
		return engine.Player{}, err
	}
	s.lastMove = s.now()

	next, _ := s.engine.Turn()
	return next, nil
}

// LastMove returns the time of the last committed move or forced skip.
func (s *Session) LastMove() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMove
}

// BoardMessageRef returns the opaque handle of the last rendered board
// message, plus whether the previous one should be deleted on redraw.
func (s *Session) BoardMessageRef() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBoardMsgRef, s.settings.DeleteBoardsOnRedraw
}

// SetBoardMessageRef records the handle of a freshly posted board message.
func (s *Session) SetBoardMessageRef(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastBoardMsgRef = ref
}

// Destroy marks the session dead and cancels any outstanding deferred
// commit. Safe to call more than once.
func (s *Session) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.destroyed = true
	s.cancelPendingLocked()
}

func (s *Session) cancelPendingLocked() {
	if s.pending != nil {
		if s.pending.cancel != nil {
			s.pending.cancel()
		}
		s.pending = nil
	}
}

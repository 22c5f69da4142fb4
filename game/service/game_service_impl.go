package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/boards"
	"github.com/Ceda-EI/snakes-and-ladders-bot/game/engine"
	"github.com/Ceda-EI/snakes-and-ladders-bot/game/session"
	"github.com/Ceda-EI/snakes-and-ladders-bot/render"
)

const (
	// DefaultRollDelay is how long a staged roll waits before it is applied,
	// matching the client-side dice animation.
	DefaultRollDelay = 4 * time.Second

	// DefaultSkipTimeout is how long a turn-holder may idle before anyone can
	// skip them.
	DefaultSkipTimeout = 5 * time.Minute
)

// Recognized keys for UpdateSetting.
const (
	SettingNewTurnOnSix = "new_turn_on_six"
	SettingDeleteBoards = "delete_boards_on_redraw"
)

// Config carries the service's timing knobs. Zero values use the defaults.
type Config struct {
	RollDelay   time.Duration
	SkipTimeout time.Duration
}

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	registry  *session.Registry
	boards    *boards.Manager
	scheduler session.Scheduler
	notifier  MoveNotifier
	logger    *zap.Logger

	rollDelay   time.Duration
	skipTimeout time.Duration
	dice        func() int
}

// NewGameService creates a new game service instance
func NewGameService(registry *session.Registry, boardCatalog *boards.Manager, scheduler session.Scheduler, logger *zap.Logger, cfg Config) GameService {
	if cfg.RollDelay <= 0 {
		cfg.RollDelay = DefaultRollDelay
	}
	if cfg.SkipTimeout <= 0 {
		cfg.SkipTimeout = DefaultSkipTimeout
	}

	return &gameServiceImpl{
		registry:    registry,
		boards:      boardCatalog,
		scheduler:   scheduler,
		logger:      logger,
		rollDelay:   cfg.RollDelay,
		skipTimeout: cfg.SkipTimeout,
		dice:        func() int { return rand.Intn(engine.BonusRoll) + 1 },
	}
}

// SetNotifier registers the transport callback for committed moves.
func (s *gameServiceImpl) SetNotifier(notifier MoveNotifier) {
	s.notifier = notifier
}

// NewGame creates a game for a room over a randomly chosen board. The
// creator becomes the admin. Group rooms only.
func (s *gameServiceImpl) NewGame(ctx context.Context, roomID, creatorID, creatorName string) (*GameInfo, error) {
	if IsPrivateRoom(roomID) {
		return nil, ErrGroupOnly
	}

	boardID, board, err := s.boards.PickRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to pick board: %w", err)
	}

	sess, err := s.registry.Create(roomID, boardID, board, creatorID, session.Settings{})
	if err != nil {
		return nil, err
	}

	s.logger.Info("game created",
		zap.String("room", roomID),
		zap.String("board", boardID),
		zap.String("admin", creatorID))

	return &GameInfo{
		RoomID:     roomID,
		BoardID:    boardID,
		BoardName:  sess.Board().Name,
		BoardImage: sess.Board().Image,
		AdminID:    creatorID,
	}, nil
}

// Join adds a player to a room's roster.
func (s *gameServiceImpl) Join(ctx context.Context, roomID, playerID, playerName string) (*JoinInfo, error) {
	sess, err := s.registry.Get(roomID)
	if err != nil {
		return nil, err
	}

	color, err := sess.Join(playerID, playerName)
	if err != nil {
		return nil, err
	}
	s.saveSession(roomID)

	return &JoinInfo{
		PlayerID:    playerID,
		PlayerName:  playerName,
		Color:       color,
		PlayerCount: len(sess.Status().Players),
	}, nil
}

// Leave removes a player from a room's roster.
func (s *gameServiceImpl) Leave(ctx context.Context, roomID, playerID string) error {
	sess, err := s.registry.Get(roomID)
	if err != nil {
		return err
	}

	if err := sess.Leave(playerID); err != nil {
		return err
	}
	s.saveSession(roomID)
	return nil
}

// Begin starts a room's game and returns the initial board view.
func (s *gameServiceImpl) Begin(ctx context.Context, roomID, requesterID string) (*BoardView, error) {
	sess, err := s.registry.Get(roomID)
	if err != nil {
		return nil, err
	}

	if err := sess.Begin(requesterID); err != nil {
		return nil, err
	}
	s.saveSession(roomID)

	s.logger.Info("game started", zap.String("room", roomID))
	return s.boardView(sess)
}

// Kill destroys a room's game. Only the admin may kill.
func (s *gameServiceImpl) Kill(ctx context.Context, roomID, requesterID string) error {
	sess, err := s.registry.Get(roomID)
	if err != nil {
		return err
	}
	if !sess.IsAdmin(requesterID) {
		return session.ErrNotAdmin
	}

	s.registry.Destroy(roomID)
	s.logger.Info("game killed", zap.String("room", roomID), zap.String("by", requesterID))
	return nil
}

// Roll throws the dice for a player. The result is staged immediately and
// applied after the roll delay; the committed outcome reaches the transport
// through the MoveNotifier. Forwarded rolls are ignored outright.
func (s *gameServiceImpl) Roll(ctx context.Context, roomID, playerID string, isForwarded bool) (*RollReceipt, error) {
	if isForwarded {
		return nil, nil
	}

	sess, err := s.registry.Get(roomID)
	if err != nil {
		return nil, err
	}

	steps := s.dice()
	ticket, err := sess.StageRoll(playerID, steps)
	if err != nil {
		return nil, err
	}

	cancel := s.scheduler.Schedule(s.rollDelay, func() {
		s.commitRoll(sess, ticket.ID, steps)
	})
	sess.AttachCancel(ticket.ID, cancel)

	playerName := playerID
	for _, p := range sess.Status().Players {
		if p.ID == playerID {
			playerName = p.Name
			break
		}
	}

	return &RollReceipt{
		TicketID:   ticket.ID,
		PlayerID:   playerID,
		PlayerName: playerName,
		Steps:      steps,
		Delay:      s.rollDelay,
	}, nil
}

// commitRoll applies a staged roll once its delay elapses. A stale ticket is
// a silent no-op.
func (s *gameServiceImpl) commitRoll(sess *session.Session, ticketID string, steps int) {
	roomID := sess.RoomID()

	result, player, err := sess.CommitRoll(ticketID)
	if err != nil {
		if !errors.Is(err, session.ErrStaleTicket) {
			s.logger.Warn("roll commit failed",
				zap.String("room", roomID), zap.Error(err))
		}
		return
	}

	status := sess.Status()
	caption := render.MoveCaption{
		PlayerName:      player.Name,
		Steps:           steps,
		FinalPosition:   result.FinalPosition,
		HazardDirection: result.HazardDirection,
		Won:             result.Won,
	}
	if status.Turn != nil && !result.Won {
		caption.NextPlayerName = status.Turn.Name
	}

	view, err := s.boardView(sess)
	if err != nil {
		s.logger.Warn("failed to build board view",
			zap.String("room", roomID), zap.Error(err))
	}

	outcome := &MoveOutcome{
		RoomID:          roomID,
		Player:          player,
		Steps:           steps,
		FinalPosition:   result.FinalPosition,
		HazardDirection: result.HazardDirection,
		NextPlayer:      status.Turn,
		Won:             result.Won,
		Caption:         caption.Format(),
		Board:           view,
	}

	if result.Won {
		// The game ends with the win.
		s.registry.Destroy(roomID)
		s.logger.Info("game won",
			zap.String("room", roomID), zap.String("player", player.ID))
	} else {
		s.saveSession(roomID)
	}

	if s.notifier != nil {
		s.notifier.MoveCommitted(outcome)
	}
}

// Skip rotates the turn away from an idle player. Allowed only after the
// skip timeout has elapsed since the last move.
func (s *gameServiceImpl) Skip(ctx context.Context, roomID string) (*SkipInfo, error) {
	sess, err := s.registry.Get(roomID)
	if err != nil {
		return nil, err
	}

	skipped := engine.Player{}
	if turn := sess.Status().Turn; turn != nil {
		skipped = *turn
	}

	next, err := sess.ForceSkip(s.skipTimeout)
	if err != nil {
		return nil, err
	}
	s.saveSession(roomID)

	s.logger.Info("turn skipped",
		zap.String("room", roomID), zap.String("player", skipped.ID))
	return &SkipInfo{SkippedPlayer: skipped, NextPlayer: next}, nil
}

// Status returns a room's state and board view.
func (s *gameServiceImpl) Status(ctx context.Context, roomID string) (*StatusInfo, error) {
	sess, err := s.registry.Get(roomID)
	if err != nil {
		return nil, err
	}

	view, err := s.boardView(sess)
	if err != nil {
		return nil, err
	}

	return &StatusInfo{
		Status: sess.Status(),
		Board:  view,
	}, nil
}

// UpdateSetting toggles one of the room's house rules. Admin only.
func (s *gameServiceImpl) UpdateSetting(ctx context.Context, roomID, requesterID, key string, enabled bool) (session.Settings, error) {
	sess, err := s.registry.Get(roomID)
	if err != nil {
		return session.Settings{}, err
	}

	var apply func(*session.Settings)
	switch key {
	case SettingNewTurnOnSix:
		apply = func(st *session.Settings) { st.NewTurnOnSix = enabled }
	case SettingDeleteBoards:
		apply = func(st *session.Settings) { st.DeleteBoardsOnRedraw = enabled }
	default:
		return session.Settings{}, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	settings, err := sess.UpdateSettings(requesterID, apply)
	if err != nil {
		return session.Settings{}, err
	}
	s.saveSession(roomID)
	return settings, nil
}

// ListBoards returns the board catalog.
func (s *gameServiceImpl) ListBoards(ctx context.Context) ([]*boards.BoardInfo, error) {
	return s.boards.List()
}

// Greeting returns the /start reply. Private rooms are told games live in
// groups; group rooms get the command summary.
func (s *gameServiceImpl) Greeting(ctx context.Context, roomID string) string {
	if IsPrivateRoom(roomID) {
		return "Hi! I host snakes and ladders games, but only in group rooms. " +
			"Add me to a group and send /newgame there."
	}
	return "Hi! Send /newgame to set up a board, /join to enter, and /begin to " +
		"start playing. Roll the dice on your turn; first to 100 wins."
}

// boardView builds the current render payload for a session.
func (s *gameServiceImpl) boardView(sess *session.Session) (*BoardView, error) {
	status := sess.Status()

	placements, err := render.BuildPlacements(status.Players, engine.DefaultCellPixels)
	if err != nil {
		return nil, fmt.Errorf("failed to place tokens: %w", err)
	}

	return &BoardView{
		BoardImage: sess.Board().Image,
		Placements: placements,
		Turn:       status.Turn,
	}, nil
}

// saveSession persists a room after a mutation. Persistence failures are
// logged, not fatal.
func (s *gameServiceImpl) saveSession(roomID string) {
	if err := s.registry.Save(roomID); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		s.logger.Warn("failed to persist session",
			zap.String("room", roomID), zap.Error(err))
	}
}

// IsPrivateRoom reports whether a room id names a private chat. Numeric ids
// follow the chat convention of positive for direct chats and negative for
// groups; non-numeric ids are treated as group rooms.
func IsPrivateRoom(roomID string) bool {
	id, err := strconv.ParseInt(roomID, 10, 64)
	if err != nil {
		return false
	}
	return id > 0
}

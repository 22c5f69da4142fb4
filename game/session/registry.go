package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/engine"
)

// Registry is the process-wide map from room id to at most one live
// session. It owns session creation and destruction and guarantees the
// single-game-per-room rule.
type Registry struct {
	sessions    map[string]*Session
	persistence SessionPersistence
	logger      *zap.Logger
	mu          sync.RWMutex
}

// NewRegistry creates a session registry without persistence.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// NewRegistryWithPersistence creates a session registry that saves sessions
// through the given persistence layer.
func NewRegistryWithPersistence(persistence SessionPersistence, logger *zap.Logger) *Registry {
	return &Registry{
		sessions:    make(map[string]*Session),
		persistence: persistence,
		logger:      logger,
	}
}

// Create starts a new session for a room. It fails with ErrSessionExists
// when the room already hosts a live game.
func (r *Registry) Create(roomID, boardID string, board *engine.Board, adminID string, settings Settings) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[roomID]; exists {
		return nil, ErrSessionExists
	}

	sess, err := NewSession(roomID, boardID, board, adminID, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	r.sessions[roomID] = sess

	if r.persistence != nil {
		if err := r.persistence.Save(sess.Persisted()); err != nil {
			// Creation still succeeds without durability.
			r.logger.Warn("failed to persist new session",
				zap.String("room", roomID), zap.Error(err))
		}
	}

	return sess, nil
}

// Get retrieves the live session for a room, falling back to persistence
// when the process restarted since the game began.
func (r *Registry) Get(roomID string) (*Session, error) {
	r.mu.RLock()
	sess, exists := r.sessions[roomID]
	r.mu.RUnlock()

	if exists {
		return sess, nil
	}

	if r.persistence != nil && r.persistence.Exists(roomID) {
		record, err := r.persistence.Load(roomID)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}
		sess, err := FromPersisted(record)
		if err != nil {
			return nil, fmt.Errorf("failed to restore persisted session: %w", err)
		}

		r.mu.Lock()
		// Another goroutine may have restored the room first.
		if existing, exists := r.sessions[roomID]; exists {
			r.mu.Unlock()
			return existing, nil
		}
		r.sessions[roomID] = sess
		r.mu.Unlock()

		return sess, nil
	}

	return nil, ErrSessionNotFound
}

// Destroy removes a room's session, cancelling any outstanding deferred
// roll. Destroying an absent room is a no-op, so win handling and explicit
// kills can share it.
func (r *Registry) Destroy(roomID string) {
	r.mu.Lock()
	sess, exists := r.sessions[roomID]
	if exists {
		delete(r.sessions, roomID)
	}
	r.mu.Unlock()

	if exists {
		sess.Destroy()
	}

	if r.persistence != nil && r.persistence.Exists(roomID) {
		if err := r.persistence.Delete(roomID); err != nil && !errors.Is(err, ErrSessionNotFound) {
			r.logger.Warn("failed to delete persisted session",
				zap.String("room", roomID), zap.Error(err))
		}
	}
}

// List returns all live sessions.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		result = append(result, sess)
	}
	return result
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Save persists one room's current state.
func (r *Registry) Save(roomID string) error {
	if r.persistence == nil {
		return nil
	}

	r.mu.RLock()
	sess, exists := r.sessions[roomID]
	r.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	return r.persistence.Save(sess.Persisted())
}

// LoadPersisted restores every persisted session into memory, typically at
// startup.
func (r *Registry) LoadPersisted() error {
	if r.persistence == nil {
		return nil
	}

	roomIDs, err := r.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	loaded := 0
	for _, roomID := range roomIDs {
		r.mu.RLock()
		_, exists := r.sessions[roomID]
		r.mu.RUnlock()
		if exists {
			continue
		}

		record, err := r.persistence.Load(roomID)
		if err != nil {
			r.logger.Warn("failed to load persisted session",
				zap.String("room", roomID), zap.Error(err))
			continue
		}
		sess, err := FromPersisted(record)
		if err != nil {
			r.logger.Warn("failed to restore persisted session",
				zap.String("room", roomID), zap.Error(err))
			continue
		}

		r.mu.Lock()
		if _, exists := r.sessions[roomID]; !exists {
			r.sessions[roomID] = sess
			loaded++
		}
		r.mu.Unlock()
	}

	if loaded > 0 {
		r.logger.Info("restored persisted sessions", zap.Int("count", loaded))
	}

	return nil
}

// CleanupStale destroys sessions whose last move is older than maxAge and
// returns how many were removed.
func (r *Registry) CleanupStale(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	r.mu.RLock()
	var stale []string
	for roomID, sess := range r.sessions {
		if sess.LastMove().Before(cutoff) {
			stale = append(stale, roomID)
		}
	}
	r.mu.RUnlock()

	for _, roomID := range stale {
		r.Destroy(roomID)
		r.logger.Info("destroyed stale session", zap.String("room", roomID))
	}

	return len(stale)
}

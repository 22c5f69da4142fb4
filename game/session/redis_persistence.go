package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "sal:session:"

// RedisPersistence implements SessionPersistence on a Redis instance, one
// JSON value per room.
type RedisPersistence struct {
	rdb     *redis.Client
	timeout time.Duration
}

// NewRedisPersistence creates a Redis-backed session persistence layer and
// verifies connectivity.
func NewRedisPersistence(rdb *redis.Client) (*RedisPersistence, error) {
	rp := &RedisPersistence{
		rdb:     rdb,
		timeout: 5 * time.Second,
	}

	ctx, cancel := rp.opContext()
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rp, nil
}

// Save writes a session snapshot under the room's key.
func (rp *RedisPersistence) Save(record *PersistedSession) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	ctx, cancel := rp.opContext()
	defer cancel()
	if err := rp.rdb.Set(ctx, redisKeyPrefix+record.RoomID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Load reads a session snapshot from the room's key.
func (rp *RedisPersistence) Load(roomID string) (*PersistedSession, error) {
	ctx, cancel := rp.opContext()
	defer cancel()

	data, err := rp.rdb.Get(ctx, redisKeyPrefix+roomID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to retrieve session: %w", err)
	}

	var record PersistedSession
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &record, nil
}

// Delete removes the room's key.
func (rp *RedisPersistence) Delete(roomID string) error {
	ctx, cancel := rp.opContext()
	defer cancel()

	removed, err := rp.rdb.Del(ctx, redisKeyPrefix+roomID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if removed == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ListAll scans for every persisted room id.
func (rp *RedisPersistence) ListAll() ([]string, error) {
	ctx, cancel := rp.opContext()
	defer cancel()

	var roomIDs []string
	iter := rp.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		roomIDs = append(roomIDs, iter.Val()[len(redisKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}

	return roomIDs, nil
}

// Exists checks whether a room has a persisted session.
func (rp *RedisPersistence) Exists(roomID string) bool {
	ctx, cancel := rp.opContext()
	defer cancel()

	n, err := rp.rdb.Exists(ctx, redisKeyPrefix+roomID).Result()
	return err == nil && n > 0
}

func (rp *RedisPersistence) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), rp.timeout)
}

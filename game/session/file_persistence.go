package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePersistence implements SessionPersistence using JSON files, one per
// room, under a sessions directory.
type FilePersistence struct {
	sessionsDir string
}

// NewFilePersistence creates a file-based session persistence layer.
func NewFilePersistence(sessionsDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{sessionsDir: sessionsDir}, nil
}

// Save writes a session snapshot to its room file.
func (fp *FilePersistence) Save(record *PersistedSession) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := os.WriteFile(fp.filePath(record.RoomID), data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads a session snapshot from its room file.
func (fp *FilePersistence) Load(roomID string) (*PersistedSession, error) {
	data, err := os.ReadFile(fp.filePath(roomID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var record PersistedSession
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &record, nil
}

// Delete removes a room's session file. Deleting an absent file is an error
// so callers can distinguish cleanup from normal operation.
func (fp *FilePersistence) Delete(roomID string) error {
	if !fp.Exists(roomID) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.filePath(roomID)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns the room ids of all persisted sessions.
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var roomIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			roomIDs = append(roomIDs, decodeRoomID(strings.TrimSuffix(name, ".json")))
		}
	}

	return roomIDs, nil
}

// Exists checks whether a room has a persisted session.
func (fp *FilePersistence) Exists(roomID string) bool {
	_, err := os.Stat(fp.filePath(roomID))
	return err == nil
}

// filePath returns the session file for a room. Room ids come from the
// transport and may contain path separators, so they are encoded.
func (fp *FilePersistence) filePath(roomID string) string {
	return filepath.Join(fp.sessionsDir, encodeRoomID(roomID)+".json")
}

func encodeRoomID(roomID string) string {
	replacer := strings.NewReplacer("/", "%2F", "\\", "%5C")
	return replacer.Replace(roomID)
}

func decodeRoomID(name string) string {
	replacer := strings.NewReplacer("%2F", "/", "%5C", "\\")
	return replacer.Replace(name)
}

package boards

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/engine"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalidBoard  = errors.New("invalid board")
)

// BoardInfo summarizes a board definition for listings.
type BoardInfo struct {
	Filename    string `json:"filename"`
	BoardID     string `json:"board_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Hazards     int    `json:"hazards"`
}

// Manager loads and caches named board definitions from a directory of JSON
// files. When the directory holds no valid boards, the built-in classic
// board is the only entry.
type Manager struct {
	boardsDir string
	boards    map[string]*engine.Board
	mu        sync.RWMutex
}

// NewManager creates a board manager over the given directory. The directory
// may be empty; the classic fallback is always available.
func NewManager(boardsDir string) (*Manager, error) {
	if boardsDir != "" {
		if _, err := os.Stat(boardsDir); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat boards directory: %w", err)
		}
	}

	return &Manager{
		boardsDir: boardsDir,
		boards:    make(map[string]*engine.Board),
	}, nil
}

// Load returns the board with the given id (filename without extension).
func (m *Manager) Load(id string) (*engine.Board, error) {
	m.mu.RLock()
	if board, exists := m.boards[id]; exists {
		m.mu.RUnlock()
		return board, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if board, exists := m.boards[id]; exists {
		return board, nil
	}

	if id == ClassicBoardID {
		board := ClassicBoard()
		m.boards[id] = board
		return board, nil
	}

	filename := id
	if !strings.HasSuffix(filename, ".json") {
		filename = id + ".json"
	}

	board, err := engine.LoadBoard(filepath.Join(m.boardsDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}

	m.boards[id] = board
	return board, nil
}

// List returns information about every available board, the classic fallback
// included.
func (m *Manager) List() ([]*BoardInfo, error) {
	infos := []*BoardInfo{}

	classic := ClassicBoard()
	infos = append(infos, &BoardInfo{
		BoardID:     ClassicBoardID,
		Name:        classic.Name,
		Description: classic.Description,
		Hazards:     len(classic.Hazards),
	})

	if m.boardsDir == "" {
		return infos, nil
	}

	entries, err := os.ReadDir(m.boardsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return infos, nil
		}
		return nil, fmt.Errorf("failed to read boards directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		board, err := m.Load(id)
		if err != nil {
			// Skip invalid boards
			continue
		}

		infos = append(infos, &BoardInfo{
			Filename:    entry.Name(),
			BoardID:     id,
			Name:        board.Name,
			Description: board.Description,
			Hazards:     len(board.Hazards),
		})
	}

	return infos, nil
}

// PickRandom chooses a board at random for a new game and returns its id and
// definition.
func (m *Manager) PickRandom() (string, *engine.Board, error) {
	infos, err := m.List()
	if err != nil {
		return "", nil, err
	}

	info := infos[rand.Intn(len(infos))]
	board, err := m.Load(info.BoardID)
	if err != nil {
		return "", nil, err
	}
	return info.BoardID, board, nil
}

package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// HazardPair is one snake or ladder: a move landing on From continues to To.
// To > From is a ladder, To < From is a snake.
type HazardPair struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Board is a named board definition: the hazard table plus a reference to the
// base board image used for rendering.
type Board struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image"`
	Hazards     []HazardPair `json:"hazards"`
}

// ValidateBoard checks a board definition for correctness. Malformed hazard
// tables are rejected here, at load time, never at move time.
func ValidateBoard(board *Board) error {
	if board.Name == "" {
		return fmt.Errorf("board validation: name is required")
	}
	if board.Image == "" {
		return fmt.Errorf("board validation: image is required")
	}

	starts := make(map[int]bool, len(board.Hazards))
	for _, h := range board.Hazards {
		if h.From < FirstCell || h.From > LastCell {
			return fmt.Errorf("board validation: hazard start %d out of range [%d,%d]", h.From, FirstCell, LastCell)
		}
		if h.To < FirstCell || h.To > LastCell {
			return fmt.Errorf("board validation: hazard end %d out of range [%d,%d]", h.To, FirstCell, LastCell)
		}
		if h.From == h.To {
			return fmt.Errorf("board validation: hazard at %d maps to itself", h.From)
		}
		if starts[h.From] {
			return fmt.Errorf("board validation: duplicate hazard start %d", h.From)
		}
		starts[h.From] = true
	}

	return nil
}

// HazardTable converts the pair list into the lookup map used by the engine.
// The board must already be validated.
func (b *Board) HazardTable() map[int]int {
	table := make(map[int]int, len(b.Hazards))
	for _, h := range b.Hazards {
		table[h.From] = h.To
	}
	return table
}

// LoadBoard loads and validates a board definition from a JSON file.
func LoadBoard(filename string) (*Board, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("failed to parse board file: %w", err)
	}

	if err := ValidateBoard(&board); err != nil {
		return nil, err
	}

	return &board, nil
}

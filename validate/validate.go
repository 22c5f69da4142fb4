// Command validate provides a small CLI that validates board definition JSON
// files in the ../boards directory. It applies the same rules the engine
// enforces at load time:
//   - JSON structure and required fields (name, image)
//   - Hazard endpoints within the playable range (1..100)
//   - No duplicate hazard starts and no self-mapping hazards
//
// Chained hazards (a destination that starts another hazard) are legal — a
// move travels at most one hop, so the chain is never followed — but usually
// unintended, so they are reported as warnings. Valid boards also get summary
// statistics (snakes, ladders, longest of each).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Board mirrors the JSON schema for a board definition.
type Board struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Hazards     []HazardPair `json:"hazards"`
}

// HazardPair is one snake or ladder. To > From is a ladder, To < From a snake.
type HazardPair struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Hazard endpoints share the playable cell range. A ladder may end on the
// goal cell; landing on its foot wins the game.
const (
	firstCell = 1
	lastCell  = 100
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found. Warnings are legal but
// suspicious constructs and never fail validation.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
}

// validateBoard loads and validates a single board definition JSON file.
// It performs the engine's load-time checks, collects warnings for legal but
// suspicious hazards, and appends summary statistics when the board is valid.
func validateBoard(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if board.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}
	if board.Image == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: image")
	}

	starts := make(map[int]bool, len(board.Hazards))
	snakes := 0
	ladders := 0
	longestSnake := 0
	longestLadder := 0

	for i, h := range board.Hazards {
		if h.From < firstCell || h.From > lastCell {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Hazard %d: start %d out of range [%d,%d]", i+1, h.From, firstCell, lastCell))
			continue
		}
		if h.To < firstCell || h.To > lastCell {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Hazard %d: end %d out of range [%d,%d]", i+1, h.To, firstCell, lastCell))
			continue
		}
		if h.From == h.To {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Hazard %d: hazard at %d maps to itself", i+1, h.From))
			continue
		}
		if starts[h.From] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Hazard %d: duplicate start %d", i+1, h.From))
			continue
		}
		starts[h.From] = true

		if h.To > h.From {
			ladders++
			if length := h.To - h.From; length > longestLadder {
				longestLadder = length
			}
		} else {
			snakes++
			if length := h.From - h.To; length > longestSnake {
				longestSnake = length
			}
		}
	}

	// A destination that starts another hazard is never followed (one hop
	// per move), which may surprise the board author.
	for i, h := range board.Hazards {
		if starts[h.To] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Hazard %d: destination %d starts another hazard; the second hop is never taken", i+1, h.To))
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", board.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Image: %s", board.Image))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Snakes: %d (longest drop %d)", snakes, longestSnake))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Ladders: %d (longest climb %d)", ladders, longestLadder))
	}

	return result
}

// main scans ../boards for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	boardsDir := "../boards"
	if len(os.Args) > 1 {
		boardsDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(boardsDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding board files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateBoard(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}

		for _, warning := range result.Warnings {
			fmt.Println("  ⚠ " + warning)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All boards are valid!")
	} else {
		fmt.Println("❌ Some boards have errors")
		os.Exit(1)
	}
}

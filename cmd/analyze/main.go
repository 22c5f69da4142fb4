// Command analyze prints quick, human-readable heuristics about board
// definition files in the project's boards directory. It summarizes snake and
// ladder counts, net drift, hazard density per board row, and highlights
// boards that skew heavily toward snakes or ladders.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AnalysisBoard is a light struct for reading board files used by analysis.
type AnalysisBoard struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Hazards     []AnalysisHazard `json:"hazards"`
}

// AnalysisHazard is one snake or ladder endpoint pair.
type AnalysisHazard struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func main() {
	boardsDir := "boards"
	if len(os.Args) > 1 {
		boardsDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(boardsDir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No board files found in %s\n", boardsDir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeBoard(file)
	}
}

func analyzeBoard(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var board AnalysisBoard
	if err := json.Unmarshal(data, &board); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", board.Name)
	fmt.Printf("Image: %s\n", board.Image)
	fmt.Printf("Hazards: %d\n", len(board.Hazards))

	snakes := 0
	ladders := 0
	netDrift := 0
	longestSnake := AnalysisHazard{}
	longestLadder := AnalysisHazard{}

	// Hazard starts per board row. Row 0 covers cells 1-10, row 9 covers
	// cells 91-100.
	rowDensity := make([]int, 10)

	for _, h := range board.Hazards {
		netDrift += h.To - h.From
		if h.From >= 1 && h.From <= 100 {
			rowDensity[(h.From-1)/10]++
		}

		if h.To < h.From {
			snakes++
			if abs(h.To-h.From) > abs(longestSnake.To-longestSnake.From) {
				longestSnake = h
			}
		} else {
			ladders++
			if abs(h.To-h.From) > abs(longestLadder.To-longestLadder.From) {
				longestLadder = h
			}
		}
	}

	fmt.Printf("Snakes: %d\n", snakes)
	fmt.Printf("Ladders: %d\n", ladders)
	fmt.Printf("Net drift: %+d\n", netDrift)

	if snakes > 0 {
		fmt.Printf("Longest snake: %d -> %d (drop %d)\n", longestSnake.From, longestSnake.To, abs(longestSnake.To-longestSnake.From))
	}
	if ladders > 0 {
		fmt.Printf("Longest ladder: %d -> %d (climb %d)\n", longestLadder.From, longestLadder.To, longestLadder.To-longestLadder.From)
	}

	fmt.Println("Hazard starts per row (bottom to top):")
	for row, count := range rowDensity {
		fmt.Printf("  cells %3d-%3d: %s\n", row*10+1, row*10+10, strings.Repeat("#", count))
	}

	switch {
	case snakes > 2*ladders && ladders > 0:
		fmt.Println("Note: heavily snake-skewed board, expect long games")
	case ladders > 2*snakes && snakes > 0:
		fmt.Println("Note: heavily ladder-skewed board, expect short games")
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBoard(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "classic.json")
		data := `{
			"name": "Classic",
			"image": "classic.png",
			"hazards": [
				{"from": 16, "to": 6},
				{"from": 4, "to": 14}
			]
		}`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("Failed to write board file: %v", err)
		}

		board, err := LoadBoard(path)
		if err != nil {
			t.Fatalf("LoadBoard failed: %v", err)
		}
		if board.Name != "Classic" || len(board.Hazards) != 2 {
			t.Errorf("Unexpected board: %+v", board)
		}

		table := board.HazardTable()
		if table[16] != 6 || table[4] != 14 {
			t.Errorf("Unexpected hazard table: %v", table)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		os.WriteFile(path, []byte("{not json"), 0644)
		if _, err := LoadBoard(path); err == nil {
			t.Error("Expected error for invalid JSON, got none")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadBoard(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("Expected error for missing file, got none")
		}
	})

	t.Run("invalid hazard table", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		data := `{"name": "Bad", "image": "bad.png", "hazards": [{"from": 9, "to": 9}]}`
		os.WriteFile(path, []byte(data), 0644)
		if _, err := LoadBoard(path); err == nil {
			t.Error("Expected error for self-mapping hazard, got none")
		}
	})
}

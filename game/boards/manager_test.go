package boards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/engine"
)

func writeBoardFile(t *testing.T, dir, name, data string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write board file: %v", err)
	}
}

func TestManager_ClassicFallback(t *testing.T) {
	manager, err := NewManager("")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	board, err := manager.Load(ClassicBoardID)
	if err != nil {
		t.Fatalf("Load(classic) failed: %v", err)
	}
	if err := engine.ValidateBoard(board); err != nil {
		t.Errorf("Classic board failed validation: %v", err)
	}

	infos, err := manager.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 1 || infos[0].BoardID != ClassicBoardID {
		t.Errorf("Expected only the classic board, got %+v", infos)
	}
}

func TestManager_LoadsFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeBoardFile(t, dir, "mini.json",
		`{"name": "Mini", "image": "mini.png", "hazards": [{"from": 16, "to": 6}]}`)
	writeBoardFile(t, dir, "broken.json", `{"name": "", "image": ""}`)
	writeBoardFile(t, dir, "notes.txt", "not a board")

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	board, err := manager.Load("mini")
	if err != nil {
		t.Fatalf("Load(mini) failed: %v", err)
	}
	if board.Name != "Mini" {
		t.Errorf("Expected board Mini, got %q", board.Name)
	}

	// Invalid and non-JSON files are skipped from listings.
	infos, err := manager.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 2 {
		t.Errorf("Expected classic + mini, got %+v", infos)
	}
}

func TestManager_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeBoardFile(t, dir, "bad.json", `{"name": "Bad", "image": "b.png", "hazards": [{"from": 5, "to": 5}]}`)

	manager, _ := NewManager(dir)

	if _, err := manager.Load("missing"); err != ErrBoardNotFound {
		t.Errorf("Expected ErrBoardNotFound, got %v", err)
	}
	if _, err := manager.Load("bad"); err == nil {
		t.Error("Expected error for invalid board, got none")
	}
}

func TestManager_PickRandom(t *testing.T) {
	manager, _ := NewManager("")

	for i := 0; i < 5; i++ {
		id, board, err := manager.PickRandom()
		if err != nil {
			t.Fatalf("PickRandom failed: %v", err)
		}
		if id != ClassicBoardID || board == nil {
			t.Errorf("Expected the classic board, got id=%q", id)
		}
	}
}

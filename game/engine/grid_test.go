package engine

import (
	"errors"
	"testing"
)

func TestCellToGrid_SerpentineNumbering(t *testing.T) {
	tests := []struct {
		name string
		cell int
		row  int
		col  int
	}{
		{"bottom left", 1, 0, 0},
		{"bottom right", 10, 0, 9},
		{"second row starts right", 11, 1, 9},
		{"second row ends left", 20, 1, 0},
		{"third row starts left", 21, 2, 0},
		{"middle of fifth row", 45, 4, 4},
		{"top row start", 91, 9, 9},
		{"top left finish", 100, 9, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pos, err := CellToGrid(test.cell)
			if err != nil {
				t.Fatalf("CellToGrid(%d) returned error: %v", test.cell, err)
			}
			if pos.Row != test.row || pos.Col != test.col {
				t.Errorf("CellToGrid(%d): expected (%d,%d), got (%d,%d)",
					test.cell, test.row, test.col, pos.Row, pos.Col)
			}
		})
	}
}

func TestCellToGrid_CoversWholeGrid(t *testing.T) {
	seen := make(map[GridPos]int)
	for cell := FirstCell; cell <= LastCell; cell++ {
		pos, err := CellToGrid(cell)
		if err != nil {
			t.Fatalf("CellToGrid(%d) returned error: %v", cell, err)
		}
		if prev, dup := seen[pos]; dup {
			t.Errorf("cells %d and %d both map to (%d,%d)", prev, cell, pos.Row, pos.Col)
		}
		seen[pos] = cell
	}
	if len(seen) != LastCell {
		t.Errorf("expected %d distinct grid positions, got %d", LastCell, len(seen))
	}
}

func TestCellToGrid_OutOfRange(t *testing.T) {
	for _, cell := range []int{0, -1, 101, 1000} {
		_, err := CellToGrid(cell)
		if err == nil {
			t.Errorf("CellToGrid(%d): expected error, got none", cell)
			continue
		}
		var oor *OutOfRangeError
		if !errors.As(err, &oor) {
			t.Errorf("CellToGrid(%d): expected OutOfRangeError, got %v", cell, err)
		} else if oor.Cell != cell {
			t.Errorf("OutOfRangeError.Cell: expected %d, got %d", cell, oor.Cell)
		}
	}
}

func TestCellToPixel_FlipsVerticalAxis(t *testing.T) {
	tests := []struct {
		name string
		cell int
		x    int
		y    int
	}{
		{"cell 1 bottom left", 1, 0, 720},
		{"cell 10 bottom right", 10, 720, 720},
		{"cell 100 top left", 100, 0, 0},
		{"cell 91 top right", 91, 720, 0},
		{"cell 45 mid board", 45, 320, 400},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pos, err := CellToPixel(test.cell, DefaultCellPixels)
			if err != nil {
				t.Fatalf("CellToPixel(%d) returned error: %v", test.cell, err)
			}
			if pos.X != test.x || pos.Y != test.y {
				t.Errorf("CellToPixel(%d): expected (%d,%d), got (%d,%d)",
					test.cell, test.x, test.y, pos.X, pos.Y)
			}
		})
	}
}

func TestCellToPixel_OutOfRange(t *testing.T) {
	if _, err := CellToPixel(0, DefaultCellPixels); err == nil {
		t.Error("CellToPixel(0): expected error, got none")
	}
}

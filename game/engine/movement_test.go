package engine

import (
	"errors"
	"testing"
)

func TestMove_UnknownPlayer(t *testing.T) {
	eng := createTestEngine(t, false)
	eng.AddPlayer("a", "Alice")

	if _, err := eng.Move("ghost", 3, false); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("Expected ErrPlayerNotFound, got %v", err)
	}
}

func TestMove_BasicStep(t *testing.T) {
	eng := createTestEngine(t, false)
	eng.AddPlayer("a", "Alice")

	result, err := eng.Move("a", 3, true)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if result.FinalPosition != 3 {
		t.Errorf("Expected final position 3, got %d", result.FinalPosition)
	}
	if result.HazardDirection != 0 {
		t.Errorf("Expected hazard direction 0, got %d", result.HazardDirection)
	}
	if result.Won {
		t.Error("Expected no win")
	}
}

func TestMove_LadderAndSnake(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		steps     int
		final     int
		direction int
	}{
		{"ladder from 4", 0, 4, 14, 1},
		{"snake at 16", 10, 6, 6, -1},
		{"snake at 48", 44, 4, 26, -1},
		{"plain cell next to snake", 10, 5, 15, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			eng := createTestEngine(t, false)
			eng.AddPlayer("a", "Alice")
			if test.start > 0 {
				eng.Restore(State{Players: []Player{{ID: "a", Name: "Alice", Color: Palette[0], Position: test.start}}})
			}

			result, err := eng.Move("a", test.steps, true)
			if err != nil {
				t.Fatalf("Move failed: %v", err)
			}
			if result.FinalPosition != test.final {
				t.Errorf("Expected final position %d, got %d", test.final, result.FinalPosition)
			}
			if result.HazardDirection != test.direction {
				t.Errorf("Expected hazard direction %d, got %d", test.direction, result.HazardDirection)
			}
		})
	}
}

func TestMove_OvershootLeavesPlayerInPlace(t *testing.T) {
	eng := createTestEngine(t, false)
	eng.AddPlayer("a", "Alice")
	eng.AddPlayer("b", "Bob")
	eng.Restore(State{Players: []Player{
		{ID: "a", Name: "Alice", Color: Palette[0], Position: 95},
		{ID: "b", Name: "Bob", Color: Palette[1], Position: 0},
	}})

	result, err := eng.Move("a", 10, true)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if result.FinalPosition != 95 {
		t.Errorf("Expected position to stay at 95, got %d", result.FinalPosition)
	}
	if result.HazardDirection != 0 {
		t.Errorf("Expected hazard direction 0, got %d", result.HazardDirection)
	}

	// Rotation still advances on an overshoot.
	turn, _ := eng.Turn()
	if turn.ID != "b" {
		t.Errorf("Expected turn to pass to b, got %s", turn.ID)
	}
}

func TestMove_WinDetection(t *testing.T) {
	t.Run("direct roll", func(t *testing.T) {
		eng := createTestEngine(t, false)
		eng.AddPlayer("a", "Alice")
		eng.Restore(State{Players: []Player{{ID: "a", Name: "Alice", Color: Palette[0], Position: 97}}})

		result, err := eng.Move("a", 3, true)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if !result.Won || result.FinalPosition != 100 {
			t.Errorf("Expected win at 100, got %+v", result)
		}
	})

	t.Run("via ladder", func(t *testing.T) {
		eng := createTestEngine(t, false)
		eng.AddPlayer("a", "Alice")
		eng.Restore(State{Players: []Player{{ID: "a", Name: "Alice", Color: Palette[0], Position: 90}}})

		// 90 + 5 lands on the 95 -> 100 ladder.
		result, err := eng.Move("a", 5, true)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if !result.Won || result.FinalPosition != 100 || result.HazardDirection != 1 {
			t.Errorf("Expected ladder win at 100, got %+v", result)
		}
	})
}

func TestMove_TurnRotation(t *testing.T) {
	t.Run("round robin over join order", func(t *testing.T) {
		eng := createTestEngine(t, false)
		eng.AddPlayer("a", "A")
		eng.AddPlayer("b", "B")
		eng.AddPlayer("c", "C")

		for _, expected := range []string{"a", "b", "c", "a"} {
			turn, _ := eng.Turn()
			if turn.ID != expected {
				t.Fatalf("Expected turn-holder %s, got %s", expected, turn.ID)
			}
			eng.Move(turn.ID, 1, true)
		}
	})

	t.Run("six keeps turn when bonus enabled", func(t *testing.T) {
		eng := createTestEngine(t, true)
		eng.AddPlayer("a", "A")
		eng.AddPlayer("b", "B")

		eng.Move("a", 6, true)
		turn, _ := eng.Turn()
		if turn.ID != "a" {
			t.Errorf("Expected a to keep the turn after rolling six, got %s", turn.ID)
		}
	})

	t.Run("six rotates when bonus disabled", func(t *testing.T) {
		eng := createTestEngine(t, false)
		eng.AddPlayer("a", "A")
		eng.AddPlayer("b", "B")

		eng.Move("a", 6, true)
		turn, _ := eng.Turn()
		if turn.ID != "b" {
			t.Errorf("Expected turn to pass to b, got %s", turn.ID)
		}
	})

	t.Run("bonus depends on raw roll not hazard", func(t *testing.T) {
		// Rolling a six onto the snake at 16 still keeps the turn.
		eng := createTestEngine(t, true)
		eng.AddPlayer("a", "A")
		eng.AddPlayer("b", "B")
		eng.Restore(State{
			Players: []Player{
				{ID: "a", Name: "A", Color: Palette[0], Position: 10},
				{ID: "b", Name: "B", Color: Palette[1], Position: 0},
			},
			BonusTurnOnSix: true,
		})

		result, err := eng.Move("a", 6, true)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.FinalPosition != 6 || result.HazardDirection != -1 {
			t.Errorf("Expected snake to 6, got %+v", result)
		}
		turn, _ := eng.Turn()
		if turn.ID != "a" {
			t.Errorf("Expected a to keep the turn, got %s", turn.ID)
		}
	})
}

func TestMove_CheckTurnRejectsOutOfTurn(t *testing.T) {
	eng := createTestEngine(t, false)
	eng.AddPlayer("a", "A")
	eng.AddPlayer("b", "B")

	before := eng.State()

	if _, err := eng.Move("b", 4, true); !errors.Is(err, ErrNotTurn) {
		t.Fatalf("Expected ErrNotTurn, got %v", err)
	}

	// Nothing may change on a rejected move.
	after := eng.State()
	if after.TurnIndex != before.TurnIndex {
		t.Errorf("Turn index changed on rejected move: %d -> %d", before.TurnIndex, after.TurnIndex)
	}
	for i := range after.Players {
		if after.Players[i].Position != before.Players[i].Position {
			t.Errorf("Player %s moved on rejected move", after.Players[i].ID)
		}
	}
}

func TestMove_CheckTurnDisabled(t *testing.T) {
	eng := createTestEngine(t, false)
	eng.AddPlayer("a", "A")
	eng.AddPlayer("b", "B")

	result, err := eng.Move("b", 2, false)
	if err != nil {
		t.Fatalf("Move with checkTurn=false failed: %v", err)
	}
	if result.FinalPosition != 2 {
		t.Errorf("Expected position 2, got %d", result.FinalPosition)
	}
}

func TestMove_ConcreteScenario(t *testing.T) {
	// Hazards {16:6, 48:26}; A at 10 joins, then B at 0; A rolls 6 onto the
	// snake, B rolls 4, turn returns to A.
	board := &Board{
		Name:  "Scenario",
		Image: "scenario.png",
		Hazards: []HazardPair{
			{From: 16, To: 6},
			{From: 48, To: 26},
		},
	}
	eng, err := NewEngine(board, false)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	eng.AddPlayer("A", "Alice")
	eng.AddPlayer("B", "Bob")
	eng.Restore(State{Players: []Player{
		{ID: "A", Name: "Alice", Color: Palette[0], Position: 10},
		{ID: "B", Name: "Bob", Color: Palette[1], Position: 0},
	}})

	result, err := eng.Move("A", 6, true)
	if err != nil {
		t.Fatalf("A's move failed: %v", err)
	}
	if result.FinalPosition != 6 || result.HazardDirection != -1 {
		t.Errorf("A: expected (6,-1), got (%d,%d)", result.FinalPosition, result.HazardDirection)
	}
	if turn, _ := eng.Turn(); turn.ID != "B" {
		t.Fatalf("Expected turn to pass to B, got %s", turn.ID)
	}

	result, err = eng.Move("B", 4, true)
	if err != nil {
		t.Fatalf("B's move failed: %v", err)
	}
	if result.FinalPosition != 4 || result.HazardDirection != 0 {
		t.Errorf("B: expected (4,0), got (%d,%d)", result.FinalPosition, result.HazardDirection)
	}
	if turn, _ := eng.Turn(); turn.ID != "A" {
		t.Errorf("Expected turn to return to A, got %s", turn.ID)
	}
}

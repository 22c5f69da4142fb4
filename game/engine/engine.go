package engine

import "fmt"

// BoardEngine is the game state machine for one board: the player roster in
// turn order, the turn pointer, and the hazard table.
type BoardEngine struct {
	hazards        map[int]int
	players        []Player
	turnIndex      int
	bonusTurnOnSix bool
}

// NewEngine creates an engine for a validated board definition.
func NewEngine(board *Board, bonusTurnOnSix bool) (*BoardEngine, error) {
	if board == nil {
		return nil, fmt.Errorf("board cannot be nil")
	}
	if err := ValidateBoard(board); err != nil {
		return nil, err
	}

	return &BoardEngine{
		hazards:        board.HazardTable(),
		players:        []Player{},
		bonusTurnOnSix: bonusTurnOnSix,
	}, nil
}

// AddPlayer appends a player to the roster at position 0 and returns the
// color assigned by join order. Join order is turn order.
func (e *BoardEngine) AddPlayer(id, name string) (Color, error) {
	if _, ok := e.indexOf(id); ok {
		return Color{}, ErrPlayerExists
	}

	color := Palette[len(e.players)%len(Palette)]
	e.players = append(e.players, Player{
		ID:       id,
		Name:     name,
		Color:    color,
		Position: 0,
	})

	return color, nil
}

// RemovePlayer drops a player from the roster and renumbers the turn pointer
// so rotation continues with the player who now occupies the removed slot.
func (e *BoardEngine) RemovePlayer(id string) error {
	idx, ok := e.indexOf(id)
	if !ok {
		return ErrPlayerNotFound
	}

	e.players = append(e.players[:idx], e.players[idx+1:]...)

	if len(e.players) == 0 {
		e.turnIndex = 0
		return nil
	}
	if idx < e.turnIndex {
		e.turnIndex--
	}
	// Removing the last-slot player while it held the turn wraps to the start.
	if e.turnIndex >= len(e.players) {
		e.turnIndex = 0
	}

	return nil
}

// Turn returns a copy of the current turn-holder. The second return value is
// false when the roster is empty.
func (e *BoardEngine) Turn() (Player, bool) {
	if len(e.players) == 0 {
		return Player{}, false
	}
	return e.players[e.turnIndex], true
}

// AdvanceTurn rotates the turn pointer to the next player without moving
// anyone. Positions and hazards are untouched; a player resting on a hazard
// start stays there.
func (e *BoardEngine) AdvanceTurn() error {
	if len(e.players) == 0 {
		return ErrNoPlayers
	}
	e.turnIndex = (e.turnIndex + 1) % len(e.players)
	return nil
}

// Players returns a copy of the roster in turn order.
func (e *BoardEngine) Players() []Player {
	out := make([]Player, len(e.players))
	copy(out, e.players)
	return out
}

// PlayerCount returns the number of players in the roster.
func (e *BoardEngine) PlayerCount() int {
	return len(e.players)
}

// SetBonusTurnOnSix toggles the bonus-turn house rule. The change applies to
// the next move.
func (e *BoardEngine) SetBonusTurnOnSix(enabled bool) {
	e.bonusTurnOnSix = enabled
}

// BonusTurnOnSix reports whether the bonus-turn house rule is active.
func (e *BoardEngine) BonusTurnOnSix() bool {
	return e.bonusTurnOnSix
}

// State returns a value snapshot of the roster and turn pointer for
// persistence.
func (e *BoardEngine) State() State {
	return State{
		Players:        e.Players(),
		TurnIndex:      e.turnIndex,
		BonusTurnOnSix: e.bonusTurnOnSix,
	}
}

// Restore replaces the engine's roster and turn pointer with a persisted
// snapshot, validating its invariants first.
func (e *BoardEngine) Restore(state State) error {
	seen := make(map[string]bool, len(state.Players))
	for _, p := range state.Players {
		if p.ID == "" {
			return fmt.Errorf("restore: player with empty id")
		}
		if seen[p.ID] {
			return fmt.Errorf("restore: duplicate player id %q", p.ID)
		}
		if p.Position < 0 || p.Position > LastCell {
			return fmt.Errorf("restore: player %q position %d out of range", p.ID, p.Position)
		}
		seen[p.ID] = true
	}
	if len(state.Players) > 0 && (state.TurnIndex < 0 || state.TurnIndex >= len(state.Players)) {
		return fmt.Errorf("restore: turn index %d out of range for %d players", state.TurnIndex, len(state.Players))
	}

	e.players = make([]Player, len(state.Players))
	copy(e.players, state.Players)
	e.turnIndex = state.TurnIndex
	if len(e.players) == 0 {
		e.turnIndex = 0
	}
	e.bonusTurnOnSix = state.BonusTurnOnSix

	return nil
}

// indexOf finds a player's roster index by id.
func (e *BoardEngine) indexOf(id string) (int, bool) {
	for i, p := range e.players {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}

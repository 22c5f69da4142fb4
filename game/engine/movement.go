package engine

// MoveResult describes the outcome of a dice move.
type MoveResult struct {
	// FinalPosition is the player's position after the move, including any
	// snake or ladder travelled.
	FinalPosition int `json:"final_position"`

	// HazardDirection is +1 when the move landed on a ladder, -1 when it
	// landed on a snake, 0 otherwise.
	HazardDirection int `json:"hazard_direction"`

	// Won is true when the player reached the last cell.
	Won bool `json:"won"`
}

// Move advances a player by the given number of steps. A candidate position
// beyond the last cell leaves the player where they were; a candidate on a
// hazard start travels the snake or ladder, a single hop only. The turn then
// rotates to the next player unless the roll was a six and the bonus-turn
// rule is enabled.
//
// With checkTurn set, the move is rejected with ErrNotTurn unless id is the
// current turn-holder. Failed moves mutate nothing.
func (e *BoardEngine) Move(id string, steps int, checkTurn bool) (MoveResult, error) {
	idx, ok := e.indexOf(id)
	if !ok {
		return MoveResult{}, ErrPlayerNotFound
	}
	if checkTurn && idx != e.turnIndex {
		return MoveResult{}, ErrNotTurn
	}

	player := &e.players[idx]
	final := player.Position
	direction := 0

	candidate := player.Position + steps
	if candidate <= LastCell {
		if end, ok := e.hazards[candidate]; ok {
			final = end
			if end > candidate {
				direction = 1
			} else {
				direction = -1
			}
		} else {
			final = candidate
		}
		player.Position = final
	}

	if !(steps == BonusRoll && e.bonusTurnOnSix) {
		e.turnIndex = (e.turnIndex + 1) % len(e.players)
	}

	return MoveResult{
		FinalPosition:   final,
		HazardDirection: direction,
		Won:             final == LastCell,
	}, nil
}

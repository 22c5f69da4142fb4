// Package engine provides the core game logic for snakes and ladders.
//
// The engine package implements the game mechanics including:
//   - Boustrophedon cell-to-grid and cell-to-pixel mapping
//   - Player roster with round-robin color assignment
//   - Dice movement with snakes, ladders, and the overshoot rule
//   - Turn rotation with the bonus-turn-on-six house rule
//   - Board definition loading and validation
//
// Core Types:
//
// BoardEngine is the state machine for a single game: it owns the player
// roster (insertion order is turn order), the turn pointer, and the hazard
// table. Board describes a named board definition loaded from JSON, holding
// the snake/ladder pairs and the base image reference.
//
// Usage:
//
//	board, err := engine.LoadBoard("boards/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng, err := engine.NewEngine(board, false)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	color, _ := eng.AddPlayer("42", "Alice")
//	result, err := eng.Move("42", 6, true)
//
// Game Rules:
//
// Players advance by dice rolls across a 10x10 serpentine board. Landing on
// a ladder start climbs to its end, landing on a snake head slides down.
// A roll that would pass cell 100 does not move the player. The first player
// to land exactly on cell 100 wins; win handling belongs to the caller.
package engine

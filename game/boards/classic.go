package boards

import "github.com/Ceda-EI/snakes-and-ladders-bot/game/engine"

// ClassicBoardID identifies the built-in fallback board.
const ClassicBoardID = "classic"

// ClassicBoard returns the traditional board layout: nine ladders, ten
// snakes, no overlapping starts.
func ClassicBoard() *engine.Board {
	return &engine.Board{
		Name:        "Classic",
		Description: "The traditional snakes and ladders layout",
		Image:       "classic.png",
		Hazards: []engine.HazardPair{
			// Ladders
			{From: 1, To: 38},
			{From: 4, To: 14},
			{From: 9, To: 31},
			{From: 21, To: 42},
			{From: 28, To: 84},
			{From: 36, To: 44},
			{From: 51, To: 67},
			{From: 71, To: 91},
			{From: 80, To: 100},
			// Snakes
			{From: 16, To: 6},
			{From: 47, To: 26},
			{From: 49, To: 11},
			{From: 56, To: 53},
			{From: 62, To: 19},
			{From: 64, To: 60},
			{From: 87, To: 24},
			{From: 93, To: 73},
			{From: 95, To: 75},
			{From: 98, To: 78},
		},
	}
}

// Package render derives drawing instructions from game state: the pixel
// placement of each player token on the board image and the data block that
// drives result captions. Compositing the final image is left to the
// presentation layer.
package render

import (
	"fmt"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/engine"
)

// Placement positions one player token on the board image. Tokens are half a
// cell wide; when several players share a cell each token takes one quadrant
// so all stay visible.
type Placement struct {
	PlayerID   string          `json:"player_id"`
	PlayerName string          `json:"player_name"`
	Color      engine.Color    `json:"color"`
	Cell       int             `json:"cell"`
	Pixel      engine.PixelPos `json:"pixel"`
	Size       int             `json:"size"`
}

// MoveCaption is the data block describing a committed move, handed to the
// presentation layer alongside the board image.
type MoveCaption struct {
	PlayerName      string `json:"player_name"`
	Steps           int    `json:"steps"`
	FinalPosition   int    `json:"final_position"`
	HazardDirection int    `json:"hazard_direction"`
	NextPlayerName  string `json:"next_player_name,omitempty"`
	Won             bool   `json:"won"`
}

// BuildPlacements computes token positions for every player who has entered
// the board. Players still at position 0 have no token.
func BuildPlacements(players []engine.Player, cellPixels int) ([]Placement, error) {
	size := cellPixels / 2

	// Quadrant offsets within a cell, filled in join order.
	offsets := []engine.PixelPos{
		{X: 0, Y: 0},
		{X: size, Y: 0},
		{X: 0, Y: size},
		{X: size, Y: size},
	}

	occupied := make(map[int]int)
	placements := make([]Placement, 0, len(players))

	for _, p := range players {
		if p.Position < engine.FirstCell {
			continue
		}

		base, err := engine.CellToPixel(p.Position, cellPixels)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.ID, err)
		}

		slot := occupied[p.Position] % len(offsets)
		occupied[p.Position]++

		placements = append(placements, Placement{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Color:      p.Color,
			Cell:       p.Position,
			Pixel: engine.PixelPos{
				X: base.X + offsets[slot].X,
				Y: base.Y + offsets[slot].Y,
			},
			Size: size,
		})
	}

	return placements, nil
}

// Format renders the caption data into the default user-facing string.
func (c MoveCaption) Format() string {
	var text string
	switch {
	case c.Won:
		text = fmt.Sprintf("%s rolled %d and reached %d. %s wins!",
			c.PlayerName, c.Steps, c.FinalPosition, c.PlayerName)
	case c.HazardDirection > 0:
		text = fmt.Sprintf("%s rolled %d, climbed a ladder to %d.",
			c.PlayerName, c.Steps, c.FinalPosition)
	case c.HazardDirection < 0:
		text = fmt.Sprintf("%s rolled %d, slid down a snake to %d.",
			c.PlayerName, c.Steps, c.FinalPosition)
	default:
		text = fmt.Sprintf("%s rolled %d, now at %d.",
			c.PlayerName, c.Steps, c.FinalPosition)
	}

	if !c.Won && c.NextPlayerName != "" {
		text += fmt.Sprintf(" Next up: %s.", c.NextPlayerName)
	}
	return text
}

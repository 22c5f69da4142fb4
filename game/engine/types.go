package engine

// Board geometry and roster constants.
const (
	// FirstCell and LastCell bound the playable cells. Position 0 means a
	// player has not entered the board yet.
	FirstCell = 1
	LastCell  = 100

	// GridSize is the number of rows and columns on the board image.
	GridSize = 10

	// DefaultCellPixels is the edge length of one cell on the standard
	// 800x800 board image.
	DefaultCellPixels = 80

	// BonusRoll is the dice value that grants another turn when the
	// bonus-turn house rule is enabled.
	BonusRoll = 6
)

// Color identifies a player token color. Colors are assigned round-robin by
// join order; the palette wraps after six players, so a seventh player shares
// the first player's color.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Palette is the fixed, ordered set of token colors.
var Palette = []Color{
	{Name: "red", Hex: "#e53935"},
	{Name: "green", Hex: "#43a047"},
	{Name: "blue", Hex: "#1e88e5"},
	{Name: "yellow", Hex: "#fdd835"},
	{Name: "magenta", Hex: "#d81b60"},
	{Name: "cyan", Hex: "#00acc1"},
}

// Player is one entrant in a game. Position is 0 before the first move and
// in [1,100] afterwards.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    Color  `json:"color"`
	Position int    `json:"position"`
}

// GridPos is a 0-indexed (row, col) cell on the 10x10 grid. Row 0 is the
// bottom row of the visual board.
type GridPos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PixelPos is a pixel coordinate on the board image, origin top-left.
type PixelPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// State is a value snapshot of the mutable engine state, used for
// persistence. Restoring a State reconstructs an equivalent engine.
type State struct {
	Players        []Player `json:"players"`
	TurnIndex      int      `json:"turn_index"`
	BonusTurnOnSix bool     `json:"bonus_turn_on_six"`
}

package engine

// CellToGrid maps a cell number to its (row, col) grid position following the
// standard boustrophedon numbering: row 0 holds cells 1..10 left to right,
// row 1 holds cells 11..20 right to left, and so on up to row 9.
func CellToGrid(cell int) (GridPos, error) {
	if cell < FirstCell || cell > LastCell {
		return GridPos{}, &OutOfRangeError{Cell: cell}
	}

	row := (cell - 1) / GridSize
	offset := (cell - 1) % GridSize

	col := offset
	if row%2 == 1 {
		col = GridSize - 1 - offset
	}

	return GridPos{Row: row, Col: col}, nil
}

// CellToPixel maps a cell number to the top-left pixel of its square on a
// board image whose cells are cellPixels wide. Row 9 is drawn at the top of
// the image, so the vertical axis is flipped relative to the grid row.
func CellToPixel(cell, cellPixels int) (PixelPos, error) {
	pos, err := CellToGrid(cell)
	if err != nil {
		return PixelPos{}, err
	}

	return PixelPos{
		X: pos.Col * cellPixels,
		Y: (GridSize - 1 - pos.Row) * cellPixels,
	}, nil
}

package core

// PositionOf maps a grid cell to its linear position in raster order.
// Callers are responsible for bounds-checking col and row.
func PositionOf(col, row, cols int) int {
	return row*cols + col
}

// CellOf maps a linear position back to its (col, row) cell.
// Callers are responsible for bounds-checking index.
func CellOf(index, cols int) (col, row int) {
	return index % cols, index / cols
}

// Grid describes the dimensions of a tile grid.
type Grid struct {
	Cols int
	Rows int
}

// NewGrid creates a grid with the given dimensions.
func NewGrid(cols, rows int) Grid {
	return Grid{Cols: cols, Rows: rows}
}

// Size returns the number of cells in the grid.
func (g Grid) Size() int {
	return g.Cols * g.Rows
}

// InBounds reports whether the cell lies inside the grid.
func (g Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// Contains reports whether pos is a valid linear position.
func (g Grid) Contains(pos int) bool {
	return pos >= 0 && pos < g.Size()
}

// Position is PositionOf bound to this grid's column count.
func (g Grid) Position(col, row int) int {
	return PositionOf(col, row, g.Cols)
}

// Cell is CellOf bound to this grid's column count.
func (g Grid) Cell(pos int) (col, row int) {
	return CellOf(pos, g.Cols)
}

// Move returns the position reached by stepping (dc, dr) from pos,
// clamped to the grid edges.
func (g Grid) Move(pos, dc, dr int) int {
	col, row := g.Cell(pos)
	col = Clamp(col+dc, 0, g.Cols-1)
	row = Clamp(row+dr, 0, g.Rows-1)
	return g.Position(col, row)
}

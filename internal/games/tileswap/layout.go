package tileswap

import "github.com/vovakirdan/tileswap/internal/core"

const (
	hudHeight    = 3 // Title, status and spacer rows above the board
	footerHeight = 2 // Spacer and controls row below the board
	minTileW     = 2 // Narrowest tile in cells
	minTileH     = 1 // Shortest tile in cells
)

// Layout maps board positions to screen cells. Each cell shows two image
// pixels stacked vertically, so a tile of TileW x TileH cells is
// TileW x 2*TileH pixels.
type Layout struct {
	X, Y   int // Top-left cell of the first tile
	TileW  int
	TileH  int
	Gutter int
	Grid   core.Grid
}

// NewLayout fits grid into a screenW x screenH terminal. The board is kept
// close to square in pixel space and centred. ok is false when the terminal
// cannot hold the smallest usable tiles.
func NewLayout(grid core.Grid, screenW, screenH, gutter int) (Layout, bool) {
	if grid.Cols <= 0 || grid.Rows <= 0 {
		return Layout{}, false
	}
	if gutter < 0 {
		gutter = 0
	}

	availW := screenW - 2*gutter
	availH := screenH - hudHeight - footerHeight - 2*gutter

	maxTileW := (availW - (grid.Cols-1)*gutter) / grid.Cols
	maxTileH := (availH - (grid.Rows-1)*gutter) / grid.Rows
	if maxTileW < minTileW || maxTileH < minTileH {
		return Layout{}, false
	}

	// Square board in pixels: cols*tileW == rows*2*tileH.
	side := core.Min(grid.Cols*maxTileW, grid.Rows*2*maxTileH)
	tileW := core.Max(side/grid.Cols, minTileW)
	tileH := core.Max(side/(2*grid.Rows), minTileH)

	l := Layout{TileW: tileW, TileH: tileH, Gutter: gutter, Grid: grid}
	w, h := l.Size()
	l.X = (screenW - w) / 2
	l.Y = hudHeight + (availH+2*gutter-h)/2
	return l, true
}

// Size returns the board footprint in cells, gutters between tiles included.
func (l Layout) Size() (w, h int) {
	w = l.Grid.Cols*l.TileW + (l.Grid.Cols-1)*l.Gutter
	h = l.Grid.Rows*l.TileH + (l.Grid.Rows-1)*l.Gutter
	return w, h
}

// Bounds returns the board rectangle in cells.
func (l Layout) Bounds() core.Rect {
	w, h := l.Size()
	return core.NewRect(l.X, l.Y, w, h)
}

// TileRect returns the cells covered by the tile at pos.
func (l Layout) TileRect(pos int) core.Rect {
	col, row := l.Grid.Cell(pos)
	return core.NewRect(
		l.X+col*(l.TileW+l.Gutter),
		l.Y+row*(l.TileH+l.Gutter),
		l.TileW,
		l.TileH,
	)
}

// FrameRect returns the outline drawn around the tile at pos. With gutters
// the frame sits in them; without, it overlays the tile edge.
func (l Layout) FrameRect(pos int) core.Rect {
	r := l.TileRect(pos)
	if l.Gutter == 0 {
		return r
	}
	return r.Inset(-1)
}

// PositionAt maps a screen cell to the board position under it. Gutters and
// cells outside the board report false.
func (l Layout) PositionAt(x, y int) (int, bool) {
	if l.TileW <= 0 || l.TileH <= 0 || !l.Bounds().Contains(x, y) {
		return 0, false
	}

	dx, dy := x-l.X, y-l.Y
	strideX, strideY := l.TileW+l.Gutter, l.TileH+l.Gutter
	col, row := dx/strideX, dy/strideY
	if dx%strideX >= l.TileW || dy%strideY >= l.TileH {
		return 0, false
	}
	if !l.Grid.InBounds(col, row) {
		return 0, false
	}
	return l.Grid.Position(col, row), true
}

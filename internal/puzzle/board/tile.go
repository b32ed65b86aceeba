package board

import "github.com/vovakirdan/tileswap/internal/core"

// Tile is one cut piece of the source image.
type Tile struct {
	Source  core.Rect // Pixel region in the source image, fixed per level
	Correct int       // Position the tile belongs at when solved, fixed for life
	Current int       // Position the tile sits at now
}

// Home reports whether the tile sits at its solved position.
func (t Tile) Home() bool {
	return t.Current == t.Correct
}

// SliceRects cuts a width x height image into cols x rows source regions in
// raster order. Tile sizes are floored, so a remainder strip on the right and
// bottom edges is never shown.
func SliceRects(cols, rows, width, height int) []core.Rect {
	if cols <= 0 || rows <= 0 {
		return nil
	}

	tileW := width / cols
	tileH := height / rows

	rects := make([]core.Rect, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rects = append(rects, core.NewRect(c*tileW, r*tileH, tileW, tileH))
		}
	}
	return rects
}

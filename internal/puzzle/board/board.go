// Package board implements the tile-state engine for the swap puzzle.
//
// A Board owns the placement of every tile and keeps it a valid permutation
// of [0, n) across swaps, shuffles and force-solves. Storage may be either
// position-indexed (slot i holds the tile at position i) or tagged (tiles in
// any order, each carrying its position); the engine detects the shape before
// every operation and behaves identically on both.
//
// The engine is single-owner: it performs no locking and every operation runs
// to completion before returning.
package board

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileswap/internal/core"
)

var (
	// ErrInvalidDimensions is returned for grids with no cells.
	ErrInvalidDimensions = errors.New("board: invalid dimensions")

	// ErrInvalidPermutation is returned when supplied tiles do not cover
	// every position and every correct index exactly once.
	ErrInvalidPermutation = errors.New("board: tiles do not form a permutation")

	// ErrIntegrity reports a board whose placement is no longer a permutation.
	// It should never occur under correct construction.
	ErrIntegrity = errors.New("board: permutation integrity fault")
)

// Rand is the randomness source used by Shuffle. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger used for integrity warnings.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// Board is the authoritative tile placement for one level.
type Board struct {
	grid   core.Grid
	tiles  []*Tile // storage; a nil slot marks a lost tile
	solved bool
	logger *log.Logger
}

// New cuts a width x height image into a cols x rows board in raster order
// (Correct == Current == index). The result is position-indexed and not yet
// shuffled.
func New(cols, rows, width, height int, opts ...Option) (*Board, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}

	b := newBoard(core.NewGrid(cols, rows), opts)
	for i, rect := range SliceRects(cols, rows, width, height) {
		b.tiles = append(b.tiles, &Tile{Source: rect, Correct: i, Current: i})
	}
	return b, nil
}

// FromTiles builds a board that keeps the caller's storage order as-is.
// Tiles listed out of position order yield tagged storage.
func FromTiles(cols, rows int, tiles []Tile, opts ...Option) (*Board, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}

	b := newBoard(core.NewGrid(cols, rows), opts)
	for _, t := range tiles {
		tile := t
		b.tiles = append(b.tiles, &tile)
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPermutation, err)
	}
	return b, nil
}

func newBoard(grid core.Grid, opts []Option) *Board {
	b := &Board{
		grid:   grid,
		tiles:  make([]*Tile, 0, grid.Size()),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// empty reports whether there is nothing to operate on.
// A nil *Board counts as empty so callers may hold "no board loaded" as nil.
func (b *Board) empty() bool {
	return b == nil || len(b.tiles) == 0
}

// Grid returns the board dimensions.
func (b *Board) Grid() core.Grid {
	if b == nil {
		return core.Grid{}
	}
	return b.grid
}

// Len returns the number of positions on the board.
func (b *Board) Len() int {
	if b == nil {
		return 0
	}
	return b.grid.Size()
}

// Indexed reports whether storage is currently position-indexed.
func (b *Board) Indexed() bool {
	if b.empty() {
		return false
	}
	return b.positionIndexed()
}

// Solved reports whether the board has been flipped to the solved state by
// a swap, shuffle or ForceSolve. A freshly cut board is not in play and
// reports false.
func (b *Board) Solved() bool {
	return b != nil && b.solved
}

// TileAt returns the tile currently at pos. It reports false for an empty
// board, an out-of-range position, or a position no tile claims.
func (b *Board) TileAt(pos int) (Tile, bool) {
	if b.empty() || !b.grid.Contains(pos) {
		return Tile{}, false
	}
	t := b.shape().at(pos)
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// Swap exchanges the tiles at positions posA and posB. It returns true when this
// swap moved the board into the solved state; that is the solved signal.
// Swapping a position with itself, an out-of-range position or an empty
// board does nothing.
func (b *Board) Swap(posA, posB int) bool {
	if b.empty() || posA == posB || !b.grid.Contains(posA) || !b.grid.Contains(posB) {
		return false
	}
	if !b.shape().swap(posA, posB) {
		return false
	}
	return b.settle()
}

// Shuffle applies a uniformly random permutation drawn from rng. Position p
// receives the tile whose Correct index is order[p]. It returns true when the
// shuffle landed on the solved arrangement, exactly like a solving swap.
func (b *Board) Shuffle(rng Rand) bool {
	if b.empty() {
		return false
	}
	b.shape().place(Permutation(b.grid.Size(), rng))
	b.solved = false
	return b.settle()
}

// ForceSolve moves every tile to its correct position without randomness
// and marks the board solved.
func (b *Board) ForceSolve() {
	if b.empty() {
		return
	}
	b.shape().solve()
	b.solved = true
}

// IsSolved reports whether every position holds the tile that belongs there.
// Tagged storage costs O(n^2).
func (b *Board) IsSolved() bool {
	if b.empty() {
		return false
	}
	s := b.shape()
	for pos := 0; pos < b.grid.Size(); pos++ {
		t := s.at(pos)
		if t == nil || t.Correct != pos {
			return false
		}
	}
	return true
}

// settle re-evaluates the solved state and reports a false->true transition.
func (b *Board) settle() bool {
	now := b.IsSolved()
	flipped := now && !b.solved
	b.solved = now
	return flipped
}

// Arrangement returns the Correct index of the tile at each position,
// with -1 where no tile is found.
func (b *Board) Arrangement() []int {
	if b.empty() {
		return nil
	}
	s := b.shape()
	out := make([]int, b.grid.Size())
	for pos := range out {
		out[pos] = -1
		if t := s.at(pos); t != nil {
			out[pos] = t.Correct
		}
	}
	return out
}

// Misplaced counts positions whose tile does not belong there.
func (b *Board) Misplaced() int {
	count := 0
	for pos, correct := range b.Arrangement() {
		if correct != pos {
			count++
		}
	}
	return count
}

// Tiles returns a copy of the stored tiles in storage order.
// Lost slots are skipped.
func (b *Board) Tiles() []Tile {
	if b.empty() {
		return nil
	}
	out := make([]Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		if t != nil {
			out = append(out, *t)
		}
	}
	return out
}

// Validate checks the permutation invariant: n tiles whose Current values and
// Correct values each cover [0, n) exactly once.
func (b *Board) Validate() error {
	if b == nil {
		return nil
	}

	n := b.grid.Size()
	if len(b.tiles) != n {
		return fmt.Errorf("%w: %d tiles for %d positions", ErrIntegrity, len(b.tiles), n)
	}

	seenCurrent := make([]bool, n)
	seenCorrect := make([]bool, n)
	for slot, t := range b.tiles {
		if t == nil {
			return fmt.Errorf("%w: slot %d is empty", ErrIntegrity, slot)
		}
		if t.Current < 0 || t.Current >= n || seenCurrent[t.Current] {
			return fmt.Errorf("%w: position %d duplicated or out of range", ErrIntegrity, t.Current)
		}
		if t.Correct < 0 || t.Correct >= n || seenCorrect[t.Correct] {
			return fmt.Errorf("%w: correct index %d duplicated or out of range", ErrIntegrity, t.Correct)
		}
		seenCurrent[t.Current] = true
		seenCorrect[t.Correct] = true
	}
	return nil
}

// Permutation returns a uniformly random permutation of [0, n) using the
// Fisher-Yates shuffle.
func Permutation(n int, rng Rand) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

package board

import "sort"

// storage is the shape-specific half of the engine. The Board picks an
// implementation from the data on every call; nothing records which shape
// is active, so the two can never drift apart.
type storage interface {
	// at returns the tile currently at pos, or nil if none is found.
	at(pos int) *Tile
	// swap exchanges the tiles at positions a and b.
	swap(a, b int) bool
	// place moves the tile whose Correct == order[p] to position p.
	place(order []int)
	// solve puts every tile at its Correct position.
	solve()
}

// indexed storage: slot i always holds the tile with Current == i.
type indexed struct{ b *Board }

// tagged storage: tiles in any order, each carrying its own Current.
type tagged struct{ b *Board }

// shape runs the detection predicate over the current data.
func (b *Board) shape() storage {
	if b.positionIndexed() {
		return indexed{b}
	}
	return tagged{b}
}

// positionIndexed reports whether storage is in position-indexed form:
// exactly n slots, each holding the tile whose Current equals the slot.
func (b *Board) positionIndexed() bool {
	if len(b.tiles) == 0 || len(b.tiles) != b.grid.Size() {
		return false
	}
	for i, t := range b.tiles {
		if t == nil || t.Current != i {
			return false
		}
	}
	return true
}

// byCorrect finds the tile with the given Correct index by scanning storage.
func (b *Board) byCorrect(correct int) *Tile {
	for _, t := range b.tiles {
		if t != nil && t.Correct == correct {
			return t
		}
	}
	return nil
}

func (s indexed) at(pos int) *Tile {
	return s.b.tiles[pos]
}

func (s indexed) swap(a, b int) bool {
	tiles := s.b.tiles
	tiles[a], tiles[b] = tiles[b], tiles[a]
	tiles[a].Current = a
	tiles[b].Current = b
	return true
}

func (s indexed) place(order []int) {
	next := make([]*Tile, len(order))
	for p, correct := range order {
		t := s.b.byCorrect(correct)
		if t == nil {
			s.b.logger.Warn("shuffle: missing tile", "correct", correct, "position", p, "storage", "indexed")
			continue
		}
		moved := *t
		moved.Current = p
		next[p] = &moved
	}
	s.b.tiles = next
}

func (s indexed) solve() {
	tiles := s.b.tiles
	sort.Slice(tiles, func(i, j int) bool {
		return tiles[i].Correct < tiles[j].Correct
	})
	for i, t := range tiles {
		t.Current = i
	}
}

func (s tagged) at(pos int) *Tile {
	for _, t := range s.b.tiles {
		if t != nil && t.Current == pos {
			return t
		}
	}
	return nil
}

func (s tagged) swap(a, b int) bool {
	ta, tb := s.at(a), s.at(b)
	if ta == nil || tb == nil {
		s.b.logger.Warn("swap: missing tile", "a", a, "b", b, "storage", "tagged")
		return false
	}
	ta.Current, tb.Current = tb.Current, ta.Current
	return true
}

func (s tagged) place(order []int) {
	for p, correct := range order {
		t := s.b.byCorrect(correct)
		if t == nil {
			s.b.logger.Warn("shuffle: missing tile", "correct", correct, "position", p, "storage", "tagged")
			continue
		}
		t.Current = p
	}
}

func (s tagged) solve() {
	for _, t := range s.b.tiles {
		if t != nil {
			t.Current = t.Correct
		}
	}
}

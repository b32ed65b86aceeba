package session

import (
	"github.com/vovakirdan/tileswap/internal/core"
	"github.com/vovakirdan/tileswap/internal/puzzle/board"
	"github.com/vovakirdan/tileswap/internal/puzzle/countdown"
)

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Index returns the current level index.
func (s *Session) Index() int { return s.index }

// Levels returns the campaign length.
func (s *Session) Levels() int { return len(s.levels) }

// Level returns the current level, if the index is inside the campaign.
func (s *Session) Level() (Level, bool) {
	if s.index < 0 || s.index >= len(s.levels) {
		return Level{}, false
	}
	return s.levels[s.index], true
}

// Ticket returns the outstanding load ticket, or 0 when nothing is loading.
func (s *Session) Ticket() Ticket {
	if s.phase != PhaseLoading {
		return 0
	}
	return s.ticket
}

// Grid returns the board dimensions, zero while no board is loaded.
func (s *Session) Grid() core.Grid { return s.board.Grid() }

// TileAt returns the tile shown at pos.
func (s *Session) TileAt(pos int) (board.Tile, bool) { return s.board.TileAt(pos) }

// Selection returns the selected position, if any.
func (s *Session) Selection() (int, bool) {
	return s.selection, s.selection != noSelection
}

// Arrangement returns the correct index of the tile at each position.
func (s *Session) Arrangement() []int { return s.board.Arrangement() }

// Misplaced returns how many tiles are not home.
func (s *Session) Misplaced() int { return s.board.Misplaced() }

// Moves returns successful swaps on the current level.
func (s *Session) Moves() int { return s.moves }

// LevelPoints returns the points the current level awarded.
func (s *Session) LevelPoints() int { return s.levelPoints }

// Score returns the campaign total.
func (s *Session) Score() int { return s.score }

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int { return s.timer.Remaining() }

// Elapsed returns the seconds played on the current level.
func (s *Session) Elapsed() int { return s.timer.Elapsed() }

// Untimed reports whether the current level has no time limit.
func (s *Session) Untimed() bool { return s.timer.Untimed() }

// TimerHandle returns the live countdown handle, 0 when the clock is not
// running.
func (s *Session) TimerHandle() countdown.Handle { return s.timer.Handle() }

// Validate checks the board permutation. A session without a board is valid.
func (s *Session) Validate() error { return s.board.Validate() }

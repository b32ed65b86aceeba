// Package session owns one play-through of a level campaign: the current
// board, its countdown, the tap selection and the level cursor.
//
// A Session is single-owner. The platform calls it from one goroutine and
// delivers image-load completions and one-second pulses as tokens
// (Ticket, countdown.Handle) so late deliveries from a torn-down level are
// recognised and dropped.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileswap/internal/puzzle/board"
	"github.com/vovakirdan/tileswap/internal/puzzle/countdown"
)

var (
	// ErrCampaignComplete is returned when loading past the last level.
	ErrCampaignComplete = errors.New("session: all levels complete")
	// ErrNoLevels is returned by Load when the campaign is empty.
	ErrNoLevels = errors.New("session: no levels")
	// ErrStaleTicket rejects a load completion for a superseded load.
	ErrStaleTicket = errors.New("session: stale load ticket")
	// ErrInvalidLevel is returned for negative level indices.
	ErrInvalidLevel = errors.New("session: invalid level index")
	// ErrNotFinished is returned by Next before the level is over.
	ErrNotFinished = errors.New("session: level not finished")
)

// Level is what the session needs to know about one campaign entry.
type Level struct {
	ID      int
	Name    string
	Cols    int
	Rows    int
	Seconds int // time limit; non-positive means untimed
}

// Tiles returns the number of board positions.
func (l Level) Tiles() int {
	return l.Cols * l.Rows
}

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePlaying
	PhaseSolved
	PhaseRevealed
	PhaseExpired
	PhaseComplete
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhaseSolved:
		return "solved"
	case PhaseRevealed:
		return "revealed"
	case PhaseExpired:
		return "expired"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Ticket identifies one level load. The zero Ticket is never issued.
type Ticket uint64

// Scoring sets how many points a solved level is worth.
type Scoring struct {
	PerSecond int // per second left on the clock
	PerTile   int // per board position
}

// DefaultScoring is used when no Scoring option is given.
var DefaultScoring = Scoring{PerSecond: 10, PerTile: 5}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The board inherits it.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSink sets the event sink.
func WithSink(sink Sink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithRand sets the shuffle randomness.
func WithRand(rng board.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithScoring overrides DefaultScoring.
func WithScoring(sc Scoring) Option {
	return func(s *Session) {
		s.scoring = sc
	}
}

const noSelection = -1

// Session is the single owner of the puzzle state.
type Session struct {
	levels  []Level
	rng     board.Rand
	logger  *log.Logger
	sink    Sink
	scoring Scoring

	index  int
	phase  Phase
	ticket Ticket

	board     *board.Board
	timer     *countdown.Timer
	selection int

	moves       int
	levelPoints int
	score       int
}

// New creates an idle session over levels.
func New(levels []Level, opts ...Option) *Session {
	s := &Session{
		levels:    append([]Level(nil), levels...),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    log.New(io.Discard),
		sink:      discardSink{},
		scoring:   DefaultScoring,
		timer:     countdown.New(),
		selection: noSelection,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load tears down the current level and starts loading level idx. The
// returned ticket must be passed to Ready once the level image is
// available. Loading past the last level completes the campaign.
func (s *Session) Load(idx int) (Ticket, error) {
	if idx < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, idx)
	}
	if len(s.levels) == 0 {
		return 0, ErrNoLevels
	}

	s.teardown()
	s.index = idx

	if idx >= len(s.levels) {
		s.phase = PhaseComplete
		s.logger.Debug("campaign complete", "levels", len(s.levels), "score", s.score)
		s.emit(Event{Kind: EventCampaignComplete, Index: idx, Score: s.score})
		return 0, ErrCampaignComplete
	}

	s.phase = PhaseLoading
	s.ticket++
	s.logger.Debug("loading level", "index", idx, "name", s.levels[idx].Name, "ticket", s.ticket)
	return s.ticket, nil
}

// teardown stops the timer and drops the board and selection.
func (s *Session) teardown() {
	s.timer.Stop()
	s.board = nil
	s.selection = noSelection
	s.moves = 0
	s.levelPoints = 0
}

// Ready completes the load identified by t with an image of w x h pixels:
// the board is cut, the countdown starts and the tiles are shuffled.
func (s *Session) Ready(t Ticket, w, h int) error {
	if s.phase != PhaseLoading || t != s.ticket {
		return ErrStaleTicket
	}

	lvl := s.levels[s.index]
	b, err := board.New(lvl.Cols, lvl.Rows, w, h, board.WithLogger(s.logger))
	if err != nil {
		s.phase = PhaseIdle
		return fmt.Errorf("session: level %d: %w", lvl.ID, err)
	}

	s.board = b
	s.timer.Start(lvl.Seconds)
	s.phase = PhasePlaying
	s.emit(s.event(EventLevelReady, 0))

	if b.Shuffle(s.rng) {
		s.solve()
	}
	return nil
}

// Tap applies the two-tap protocol at pos: the first tap selects, tapping
// the selection again clears it, and tapping another position swaps the two
// and clears the selection. Taps outside Playing or outside the grid are
// ignored.
func (s *Session) Tap(pos int) {
	if s.phase != PhasePlaying || !s.board.Grid().Contains(pos) {
		return
	}

	switch {
	case s.selection == noSelection:
		s.selection = pos
	case s.selection == pos:
		s.selection = noSelection
	default:
		from := s.selection
		s.selection = noSelection
		s.moves++
		if s.board.Swap(from, pos) {
			s.solve()
		}
	}
}

// Shuffle re-randomises the board while playing. It reports whether a
// shuffle happened.
func (s *Session) Shuffle() bool {
	if s.phase != PhasePlaying {
		return false
	}
	s.selection = noSelection
	if s.board.Shuffle(s.rng) {
		s.solve()
	}
	return true
}

// Reveal force-solves the board. The level ends without points.
func (s *Session) Reveal() bool {
	if s.phase != PhasePlaying {
		return false
	}
	s.board.ForceSolve()
	s.timer.Solve()
	s.selection = noSelection
	s.phase = PhaseRevealed
	s.logger.Debug("level revealed", "index", s.index, "moves", s.moves)
	s.emit(s.event(EventRevealed, 0))
	return true
}

// Next loads the following level once the current one is solved or revealed.
func (s *Session) Next() (Ticket, error) {
	if s.phase != PhaseSolved && s.phase != PhaseRevealed {
		return 0, ErrNotFinished
	}
	return s.Load(s.index + 1)
}

// Restart begins a fresh run with a zero score: from the current level, or
// from the first level once the campaign is complete.
func (s *Session) Restart() (Ticket, error) {
	s.score = 0
	if s.phase == PhaseComplete {
		return s.Load(0)
	}
	return s.Load(s.index)
}

// Tick delivers one second of the countdown run identified by h.
// Pulses from an earlier run are ignored.
func (s *Session) Tick(h countdown.Handle) countdown.TickResult {
	res := s.timer.Tick(h)
	if res.Expired && s.phase == PhasePlaying {
		s.phase = PhaseExpired
		s.selection = noSelection
		s.logger.Debug("level expired", "index", s.index, "moves", s.moves)
		s.emit(s.event(EventExpired, 0))
	}
	return res
}

// solve is the single solved path for swaps and shuffles.
func (s *Session) solve() {
	s.timer.Solve()
	s.selection = noSelection
	s.phase = PhaseSolved

	points := s.timer.Remaining()*s.scoring.PerSecond + s.board.Len()*s.scoring.PerTile
	s.levelPoints = points
	s.score += points

	s.logger.Debug("level solved", "index", s.index, "moves", s.moves, "points", points)
	s.emit(s.event(EventSolved, points))
}

func (s *Session) event(kind EventKind, points int) Event {
	return Event{
		Kind:      kind,
		Index:     s.index,
		Level:     s.levels[s.index],
		Moves:     s.moves,
		Remaining: s.timer.Remaining(),
		Elapsed:   s.timer.Elapsed(),
		Points:    points,
		Score:     s.score,
	}
}

func (s *Session) emit(e Event) {
	s.sink.Notify(e)
}

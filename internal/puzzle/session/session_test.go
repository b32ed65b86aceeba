package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tileswap/internal/puzzle/board"
	"github.com/vovakirdan/tileswap/internal/puzzle/countdown"
)

// identityRand makes every shuffle land on the solved arrangement.
type identityRand struct{}

func (identityRand) Intn(n int) int { return n - 1 }

// swapFirstRand produces the order [1, 0, 2, 3, ...]: only positions 0 and 1
// are exchanged.
type swapFirstRand struct{}

func (swapFirstRand) Intn(n int) int {
	if n == 2 {
		return 0
	}
	return n - 1
}

var campaign = []Level{
	{ID: 1, Name: "First", Cols: 3, Rows: 3, Seconds: 5},
	{ID: 2, Name: "Second", Cols: 4, Rows: 3, Seconds: 60},
}

func newSession(t *testing.T, rng board.Rand) (*Session, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	s := New(campaign, WithSink(rec), WithRand(rng), WithScoring(Scoring{PerSecond: 10, PerTile: 1}))
	return s, rec
}

// start loads level idx and completes the load with a 600x600 image.
func start(t *testing.T, s *Session, idx int) {
	t.Helper()
	ticket, err := s.Load(idx)
	require.NoError(t, err)
	require.Equal(t, PhaseLoading, s.Phase())
	require.NoError(t, s.Ready(ticket, 600, 600))
}

func TestReadyStartsLevel(t *testing.T) {
	s, rec := newSession(t, rand.New(rand.NewSource(1)))
	start(t, s, 0)

	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Equal(t, 9, s.Grid().Size())
	assert.Equal(t, 5, s.Remaining())
	assert.NotZero(t, s.TimerHandle())
	assert.NoError(t, s.Validate())
	assert.Equal(t, []EventKind{EventLevelReady}, rec.Kinds())
}

func TestSolveScenarioFiresOnce(t *testing.T) {
	s, rec := newSession(t, swapFirstRand{})
	start(t, s, 0)

	first, _ := s.TileAt(0)
	require.Equal(t, 1, first.Correct, "shuffle exchanged positions 0 and 1")

	s.Tap(0)
	s.Tap(1)

	assert.Equal(t, PhaseSolved, s.Phase())
	assert.Equal(t, 1, rec.Count(EventSolved))
	assert.Equal(t, 1, s.Moves())
	assert.Equal(t, countdown.Handle(0), s.TimerHandle())

	// Further taps do nothing once solved.
	s.Tap(0)
	s.Tap(1)
	assert.Equal(t, 1, rec.Count(EventSolved))
	assert.Equal(t, 1, s.Moves())
}

func TestSolvePoints(t *testing.T) {
	s, rec := newSession(t, swapFirstRand{})
	start(t, s, 0)
	h := s.TimerHandle()
	s.Tick(h)
	s.Tick(h)

	s.Tap(0)
	s.Tap(1)

	// 3 seconds left * 10 + 9 tiles * 1
	assert.Equal(t, 39, s.LevelPoints())
	assert.Equal(t, 39, s.Score())
	require.Len(t, rec.Events, 2)
	assert.Equal(t, 39, rec.Events[1].Points)
}

func TestTimerSolveRace(t *testing.T) {
	s, rec := newSession(t, swapFirstRand{})
	start(t, s, 0)
	h := s.TimerHandle()

	s.Tick(h)
	s.Tick(h)
	s.Tap(1)
	s.Tap(0)
	require.Equal(t, PhaseSolved, s.Phase())

	for i := 0; i < 10; i++ {
		res := s.Tick(h)
		assert.False(t, res.Applied)
	}
	assert.Equal(t, 3, s.Remaining())
	assert.Zero(t, rec.Count(EventExpired))
}

func TestExpiry(t *testing.T) {
	s, rec := newSession(t, rand.New(rand.NewSource(3)))
	start(t, s, 0)
	h := s.TimerHandle()
	s.Tap(4)

	for i := 0; i < 6; i++ {
		s.Tick(h)
	}

	assert.Equal(t, PhaseExpired, s.Phase())
	assert.Equal(t, 1, rec.Count(EventExpired))
	_, selected := s.Selection()
	assert.False(t, selected)

	s.Tap(0)
	s.Tap(1)
	assert.Zero(t, s.Moves(), "taps are ignored after expiry")
	assert.False(t, s.Shuffle())
	assert.False(t, s.Reveal())
}

func TestShuffleThatSolvesTakesSolvedPath(t *testing.T) {
	s, rec := newSession(t, identityRand{})
	start(t, s, 0)

	assert.Equal(t, PhaseSolved, s.Phase())
	assert.Equal(t, []EventKind{EventLevelReady, EventSolved}, rec.Kinds())
}

func TestTapProtocol(t *testing.T) {
	s, _ := newSession(t, rand.New(rand.NewSource(9)))
	start(t, s, 1)

	s.Tap(2)
	sel, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, 2, sel)

	s.Tap(2)
	_, ok = s.Selection()
	assert.False(t, ok, "tapping the selection clears it")
	assert.Zero(t, s.Moves())

	before, _ := s.TileAt(3)
	other, _ := s.TileAt(7)
	s.Tap(3)
	s.Tap(7)
	_, ok = s.Selection()
	assert.False(t, ok)
	assert.Equal(t, 1, s.Moves())

	after, _ := s.TileAt(7)
	assert.Equal(t, before.Correct, after.Correct)
	moved, _ := s.TileAt(3)
	assert.Equal(t, other.Correct, moved.Correct)
}

func TestTapOutOfRangeIgnored(t *testing.T) {
	s, _ := newSession(t, rand.New(rand.NewSource(9)))
	start(t, s, 0)
	before := s.Misplaced()

	s.Tap(-1)
	s.Tap(9)
	_, ok := s.Selection()
	assert.False(t, ok)

	s.Tap(0)
	s.Tap(100)
	sel, ok := s.Selection()
	assert.True(t, ok)
	assert.Equal(t, 0, sel, "out-of-range tap leaves the selection alone")
	assert.Equal(t, before, s.Misplaced())
}

func TestTapBeforeLoadIsNoop(t *testing.T) {
	s, rec := newSession(t, rand.New(rand.NewSource(1)))

	s.Tap(0)
	assert.False(t, s.Shuffle())
	assert.False(t, s.Reveal())
	assert.Empty(t, rec.Events)

	_, err := s.Load(0)
	require.NoError(t, err)
	s.Tap(0)
	_, ok := s.Selection()
	assert.False(t, ok, "no taps while loading")
}

func TestShuffleClearsSelection(t *testing.T) {
	s, _ := newSession(t, rand.New(rand.NewSource(4)))
	start(t, s, 1)
	s.Tap(5)

	assert.True(t, s.Shuffle())
	_, ok := s.Selection()
	assert.False(t, ok)
	assert.NoError(t, s.Validate())
}

func TestStaleTicketRejected(t *testing.T) {
	s, rec := newSession(t, rand.New(rand.NewSource(1)))

	old, err := s.Load(0)
	require.NoError(t, err)
	current, err := s.Load(1)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Ready(old, 600, 600), ErrStaleTicket)
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Empty(t, rec.Events)

	require.NoError(t, s.Ready(current, 600, 600))
	assert.ErrorIs(t, s.Ready(current, 600, 600), ErrStaleTicket, "a ticket completes once")
	assert.Equal(t, 12, s.Grid().Size())
}

func TestLoadStopsRunningTimer(t *testing.T) {
	s, rec := newSession(t, rand.New(rand.NewSource(1)))
	start(t, s, 0)
	oldHandle := s.TimerHandle()

	ticket, err := s.Load(0)
	require.NoError(t, err)
	assert.Zero(t, s.TimerHandle())
	assert.Zero(t, s.Grid().Size(), "board is torn down while loading")

	for i := 0; i < 10; i++ {
		assert.False(t, s.Tick(oldHandle).Applied)
	}
	require.NoError(t, s.Ready(ticket, 600, 600))
	assert.False(t, s.Tick(oldHandle).Applied, "old pulse cannot touch the new level")
	assert.Equal(t, 5, s.Remaining())
	assert.Zero(t, rec.Count(EventExpired))
}

func TestReveal(t *testing.T) {
	s, rec := newSession(t, rand.New(rand.NewSource(6)))
	start(t, s, 1)
	s.Tap(0)

	require.True(t, s.Reveal())

	assert.Equal(t, PhaseRevealed, s.Phase())
	assert.Zero(t, s.Misplaced())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.TimerHandle())
	assert.Equal(t, 1, rec.Count(EventRevealed))
	assert.Zero(t, rec.Count(EventSolved))
	assert.False(t, s.Reveal(), "reveal happens once")
}

func TestNextAndCampaignComplete(t *testing.T) {
	s, rec := newSession(t, swapFirstRand{})

	_, err := s.Next()
	assert.ErrorIs(t, err, ErrNotFinished)

	start(t, s, 0)
	_, err = s.Next()
	assert.ErrorIs(t, err, ErrNotFinished, "cannot skip an unsolved level")

	s.Tap(0)
	s.Tap(1)
	ticket, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Index())
	require.NoError(t, s.Ready(ticket, 600, 600))

	require.True(t, s.Reveal())
	_, err = s.Next()
	assert.ErrorIs(t, err, ErrCampaignComplete)
	assert.Equal(t, PhaseComplete, s.Phase())
	assert.Equal(t, 1, rec.Count(EventCampaignComplete))

	_, ok := s.Level()
	assert.False(t, ok)
}

func TestRestart(t *testing.T) {
	s, _ := newSession(t, identityRand{})
	start(t, s, 0)
	require.Positive(t, s.Score())
	ticket, err := s.Next()
	require.NoError(t, err)
	s.rng = rand.New(rand.NewSource(2))
	require.NoError(t, s.Ready(ticket, 600, 600))
	h := s.TimerHandle()
	for i := 0; i < 60; i++ {
		s.Tick(h)
	}
	require.Equal(t, PhaseExpired, s.Phase())

	ticket, err = s.Restart()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Index())
	require.NoError(t, s.Ready(ticket, 600, 600))
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Equal(t, 60, s.Remaining())
	assert.Zero(t, s.Score(), "a restarted run starts from zero")
}

func TestRestartAfterCompleteResetsScore(t *testing.T) {
	s, _ := newSession(t, identityRand{})
	start(t, s, 1)
	require.Positive(t, s.Score())

	_, err := s.Next()
	require.ErrorIs(t, err, ErrCampaignComplete)

	_, err = s.Restart()
	require.NoError(t, err)
	assert.Zero(t, s.Index())
	assert.Zero(t, s.Score())
}

func TestLoadErrors(t *testing.T) {
	_, err := New(nil).Load(0)
	assert.ErrorIs(t, err, ErrNoLevels)

	_, err = New(campaign).Load(-1)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestUntimedLevel(t *testing.T) {
	s := New([]Level{{ID: 1, Cols: 2, Rows: 2}}, WithRand(rand.New(rand.NewSource(5))))
	ticket, err := s.Load(0)
	require.NoError(t, err)
	require.NoError(t, s.Ready(ticket, 100, 100))
	if s.Phase() != PhasePlaying {
		t.Skip("shuffle landed on the solved arrangement")
	}

	h := s.TimerHandle()
	for i := 0; i < 500; i++ {
		s.Tick(h)
	}
	assert.True(t, s.Untimed())
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Equal(t, 500, s.Elapsed())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "revealed", PhaseRevealed.String())
	assert.Equal(t, "unknown", Phase(99).String())
}

package countdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimerIsIdle(t *testing.T) {
	timer := New()

	assert.Equal(t, Idle, timer.State())
	assert.Zero(t, timer.Handle())
	assert.False(t, timer.Tick(0).Applied)
}

func TestExpiresAfterDuration(t *testing.T) {
	timer := New()
	h := timer.Start(5)
	expiredEvents := 0

	for i := 0; i < 5; i++ {
		res := timer.Tick(h)
		require.True(t, res.Applied, "tick %d", i+1)
		if res.Expired {
			expiredEvents++
		}
	}

	assert.Equal(t, Expired, timer.State())
	assert.Equal(t, 0, timer.Remaining())
	assert.Equal(t, 5, timer.Elapsed())
	assert.Equal(t, 1, expiredEvents)

	sixth := timer.Tick(h)
	assert.False(t, sixth.Applied, "tick after expiry is a no-op")
	assert.False(t, sixth.Expired)
	assert.Equal(t, 0, timer.Remaining())
}

func TestRemainingCountsDown(t *testing.T) {
	timer := New()
	h := timer.Start(3)

	assert.Equal(t, 3, timer.Remaining())
	assert.Equal(t, 2, timer.Tick(h).Remaining)
	assert.Equal(t, 1, timer.Tick(h).Remaining)
	assert.Equal(t, 2, timer.Elapsed())
}

func TestStaleHandleIgnored(t *testing.T) {
	timer := New()
	old := timer.Start(10)
	current := timer.Start(4)

	assert.NotEqual(t, old, current)
	assert.False(t, timer.Tick(old).Applied)
	assert.Equal(t, 4, timer.Remaining())

	assert.True(t, timer.Tick(current).Applied)
	assert.Equal(t, 3, timer.Remaining())
}

func TestSolveRace(t *testing.T) {
	timer := New()
	h := timer.Start(5)
	timer.Tick(h)
	timer.Tick(h)

	assert.True(t, timer.Solve())
	assert.False(t, timer.Solve(), "solve is idempotent")

	for i := 0; i < 5; i++ {
		res := timer.Tick(h)
		assert.False(t, res.Applied)
		assert.False(t, res.Expired)
	}
	assert.Equal(t, Solved, timer.State())
	assert.Equal(t, 3, timer.Remaining())
	assert.Zero(t, timer.Handle())
}

func TestSolveAfterExpiryDoesNothing(t *testing.T) {
	timer := New()
	h := timer.Start(1)
	require.True(t, timer.Tick(h).Expired)

	assert.False(t, timer.Solve())
	assert.Equal(t, Expired, timer.State())
}

func TestStopIsIdempotent(t *testing.T) {
	timer := New()
	h := timer.Start(5)

	timer.Stop()
	timer.Stop()

	assert.Equal(t, Idle, timer.State())
	assert.Zero(t, timer.Handle())
	assert.False(t, timer.Tick(h).Applied)
	assert.False(t, timer.Solve())

	next := timer.Start(5)
	assert.NotEqual(t, h, next)
	assert.True(t, timer.Tick(next).Applied)
}

func TestUntimedRunNeverExpires(t *testing.T) {
	timer := New()
	h := timer.Start(0)
	require.True(t, timer.Untimed())

	for i := 0; i < 100; i++ {
		res := timer.Tick(h)
		require.True(t, res.Applied)
		require.False(t, res.Expired)
	}

	assert.Equal(t, Running, timer.State())
	assert.Equal(t, 100, timer.Elapsed())
	assert.Zero(t, timer.Duration())

	timer.Start(30)
	assert.False(t, timer.Untimed())
	assert.Zero(t, timer.Elapsed())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{60, "1:00"},
		{125, "2:05"},
		{-3, "0:00"},
	}

	for _, tc := range tests {
		if got := Format(tc.seconds); got != tc.expected {
			t.Errorf("Format(%d) = %q, expected %q", tc.seconds, got, tc.expected)
		}
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "expired", Expired.String())
	assert.Equal(t, "unknown", State(42).String())
}

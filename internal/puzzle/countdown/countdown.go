// Package countdown is the per-level timer state machine.
//
// It does no scheduling of its own: the platform delivers one Tick per
// second together with the Handle the pulse was scheduled under. Every Start
// or Stop invalidates earlier handles, so a pulse left over from a previous
// level can never touch the current one.
package countdown

import "fmt"

// State is the timer phase.
type State int

const (
	Idle State = iota
	Running
	Solved
	Expired
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Solved:
		return "solved"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Handle identifies one run of the timer.
// The zero Handle never matches a live run.
type Handle uint64

// TickResult reports what a Tick did.
type TickResult struct {
	Applied   bool // the tick decremented the clock
	Remaining int  // seconds left after the tick
	Expired   bool // this tick moved the timer to Expired
}

// Timer counts whole seconds down from a level's time limit.
type Timer struct {
	state     State
	epoch     Handle
	duration  int
	remaining int
	elapsed   int
	untimed   bool
}

// New returns an idle timer.
func New() *Timer {
	return &Timer{}
}

// Start begins a new run of seconds and returns its handle. Any previous
// run is discarded. Non-positive seconds start an untimed run that counts
// elapsed time but never expires.
func (t *Timer) Start(seconds int) Handle {
	t.epoch++
	t.state = Running
	t.untimed = seconds <= 0
	if t.untimed {
		seconds = 0
	}
	t.duration = seconds
	t.remaining = seconds
	t.elapsed = 0
	return t.epoch
}

// Tick advances the clock by one second if h belongs to the running run.
func (t *Timer) Tick(h Handle) TickResult {
	if t.state != Running || h == 0 || h != t.epoch {
		return TickResult{Remaining: t.remaining}
	}

	t.elapsed++
	if t.untimed {
		return TickResult{Applied: true}
	}

	t.remaining--
	res := TickResult{Applied: true, Remaining: t.remaining}
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = Expired
		res.Remaining = 0
		res.Expired = true
	}
	return res
}

// Solve stops a running countdown as won. It reports true only on the
// Running -> Solved transition; later calls do nothing.
func (t *Timer) Solve() bool {
	if t.state != Running {
		return false
	}
	t.state = Solved
	return true
}

// Stop cancels any run and returns to Idle. Outstanding handles go stale.
func (t *Timer) Stop() {
	t.state = Idle
	t.epoch++
}

// State returns the current phase.
func (t *Timer) State() State {
	return t.state
}

// Remaining returns the whole seconds left. Untimed runs report 0.
func (t *Timer) Remaining() int {
	return t.remaining
}

// Duration returns the time limit of the current run in seconds, 0 when
// untimed.
func (t *Timer) Duration() int {
	return t.duration
}

// Elapsed returns the seconds counted since Start.
func (t *Timer) Elapsed() int {
	return t.elapsed
}

// Handle returns the handle of the live run, or 0 when no run is live.
func (t *Timer) Handle() Handle {
	if t.state != Running {
		return 0
	}
	return t.epoch
}

// Untimed reports whether the current run has no time limit.
func (t *Timer) Untimed() bool {
	return t.untimed
}

// Format renders seconds as m:ss.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

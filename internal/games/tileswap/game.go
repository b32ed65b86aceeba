// Package tileswap is the image swap puzzle game: a level campaign played
// on a terminal screen buffer. It owns presentation state (cursor, hint
// overlay, pause) and drives a session.Session, which owns the rules.
package tileswap

import (
	"errors"
	"image"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tileswap/internal/config"
	"github.com/vovakirdan/tileswap/internal/core"
	"github.com/vovakirdan/tileswap/internal/imagery"
	"github.com/vovakirdan/tileswap/internal/levels"
	"github.com/vovakirdan/tileswap/internal/puzzle/countdown"
	"github.com/vovakirdan/tileswap/internal/puzzle/session"
)

// ID is the game identifier used for score storage.
const ID = "tileswap"

// messageTicks is how long a status message stays up, in frames at 30 fps.
const messageTicks = 90

// SolveRecord describes one finished level for persistence.
type SolveRecord struct {
	RunID       string
	LevelID     int
	LevelName   string
	Cols, Rows  int
	Moves       int
	SecondsLeft int
	Duration    int
	Points      int
	Revealed    bool
}

// Recorder persists finished levels.
type Recorder interface {
	RecordSolve(SolveRecord) error
}

// Load is an image request the platform must fulfil with ImageReady.
type Load struct {
	Ticket session.Ticket
	Ref    string
	Level  levels.Level
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for the game and its session.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithSink forwards session events to sink after the game handled them.
func WithSink(sink session.Sink) Option {
	return func(g *Game) { g.sink = sink }
}

// WithRecorder sets where finished levels are written.
func WithRecorder(r Recorder) Option {
	return func(g *Game) { g.recorder = r }
}

// WithStartLevel starts the campaign at index idx instead of the first level.
func WithStartLevel(idx int) Option {
	return func(g *Game) {
		if idx >= 0 {
			g.start = idx
		}
	}
}

// WithClock overrides time.Now for image cache busting.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		if now != nil {
			g.now = now
		}
	}
}

// Game implements the tile swap puzzle.
type Game struct {
	cfg      config.TileSwapConfig
	list     []levels.Level
	logger   *log.Logger
	sink     session.Sink
	recorder Recorder
	now      func() time.Time
	start    int

	rng   *rand.Rand
	sess  *session.Session
	runID string
	tick  uint64

	pending  Load
	raster   *imagery.Raster
	imageErr error

	// Screen dimensions
	screenW int
	screenH int
	layout  Layout

	cursor   int
	hint     bool
	paused   bool
	tooSmall bool

	message      string
	messageTicks int
}

// New creates a game over a campaign.
func New(list []levels.Level, cfg config.TileSwapConfig, opts ...Option) *Game {
	if len(list) == 0 {
		list = levels.Fallback()
	}
	g := &Game{
		cfg:    cfg,
		list:   list,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tile Swap"
}

// RunID identifies the current campaign run.
func (g *Game) RunID() string {
	return g.runID
}

// Reset starts a new campaign run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.cursor = 0
	g.hint = false
	g.paused = false
	g.raster = nil
	g.imageErr = nil
	g.message = ""
	g.messageTicks = 0
	g.runID = uuid.NewString()

	g.sess = session.New(
		levels.Campaign(g.list, g.cfg),
		session.WithRand(g.rng),
		session.WithLogger(g.logger),
		session.WithSink(session.SinkFunc(g.notify)),
		session.WithScoring(session.Scoring{
			PerSecond: g.cfg.Scoring.PerSecond,
			PerTile:   g.cfg.Scoring.PerTile,
		}),
	)

	start := g.start
	if start >= len(g.list) {
		start = 0
	}
	g.begin(g.sess.Load(start))
	g.relayout()
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.relayout()
}

func (g *Game) relayout() {
	grid := g.sess.Grid()
	if grid.Size() == 0 {
		lvl, ok := g.currentLevel()
		if !ok {
			g.tooSmall = false
			return
		}
		grid = core.NewGrid(lvl.Cols, lvl.Rows)
	}

	layout, ok := NewLayout(grid, g.screenW, g.screenH, g.cfg.Canvas.Gutter)
	g.layout = layout
	g.tooSmall = !ok
}

// begin records the image request for a freshly issued load ticket.
func (g *Game) begin(ticket session.Ticket, err error) {
	g.pending = Load{}
	g.raster = nil
	g.imageErr = nil
	g.cursor = 0

	switch {
	case errors.Is(err, session.ErrCampaignComplete):
		return
	case err != nil:
		g.logger.Warn("level load failed", "err", err)
		return
	}

	lvl := g.list[g.sess.Index()]
	g.pending = Load{
		Ticket: ticket,
		Ref:    levels.ResolveImage(lvl, g.rng, g.now()),
		Level:  lvl,
	}
	g.logger.Debug("image requested", "level", lvl.ID, "ref", g.pending.Ref)
	g.relayout()
}

// PendingLoad returns the outstanding image request, if any.
func (g *Game) PendingLoad() (Load, bool) {
	if g.sess == nil || g.pending.Ticket == 0 || g.sess.Ticket() != g.pending.Ticket {
		return Load{}, false
	}
	return g.pending, true
}

// ImageReady completes the load identified by ticket. img may be a
// placeholder when loadErr is set; the level plays either way. It reports
// false for a stale ticket.
func (g *Game) ImageReady(ticket session.Ticket, img *image.RGBA, loadErr error) bool {
	if g.sess == nil || img == nil {
		return false
	}

	b := img.Bounds()
	if err := g.sess.Ready(ticket, b.Dx(), b.Dy()); err != nil {
		if !errors.Is(err, session.ErrStaleTicket) {
			g.logger.Warn("level start failed", "err", err)
		}
		return false
	}

	g.pending = Load{}
	g.raster = imagery.NewRaster(img)
	g.imageErr = loadErr
	if loadErr != nil {
		g.flash("Image failed to load")
	}
	g.relayout()
	return true
}

// TimerHandle returns the handle the one-second pulse should carry.
func (g *Game) TimerHandle() countdown.Handle {
	if g.sess == nil {
		return 0
	}
	return g.sess.TimerHandle()
}

// Second delivers one countdown second. The clock holds while paused or
// while the window is too small to play.
func (g *Game) Second(h countdown.Handle) {
	if g.sess == nil || g.paused || g.tooSmall {
		return
	}
	g.sess.Tick(h)
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	phase := g.sess.Phase()

	if in.Has(core.ActionPause) && phase == session.PhasePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionHint) {
		g.hint = !g.hint
	}

	switch phase {
	case session.PhasePlaying:
		g.stepPlaying(in)
	case session.PhaseSolved, session.PhaseRevealed:
		if in.Has(core.ActionNext) || in.Has(core.ActionSelect) {
			g.begin(g.sess.Next())
		}
	case session.PhaseExpired, session.PhaseComplete:
		if in.Has(core.ActionRestart) {
			g.runID = uuid.NewString()
			g.begin(g.sess.Restart())
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) stepPlaying(in core.InputFrame) {
	grid := g.sess.Grid()

	switch {
	case in.Has(core.ActionUp):
		g.cursor = grid.Move(g.cursor, 0, -1)
	case in.Has(core.ActionDown):
		g.cursor = grid.Move(g.cursor, 0, 1)
	case in.Has(core.ActionLeft):
		g.cursor = grid.Move(g.cursor, -1, 0)
	case in.Has(core.ActionRight):
		g.cursor = grid.Move(g.cursor, 1, 0)
	}

	if in.Has(core.ActionSelect) {
		g.sess.Tap(g.cursor)
	}

	for _, click := range in.Clicks {
		pos, ok := g.layout.PositionAt(click.X, click.Y)
		if !ok {
			continue
		}
		g.cursor = pos
		g.sess.Tap(pos)
	}

	switch {
	case in.Has(core.ActionShuffle):
		if g.sess.Shuffle() {
			g.flash("Shuffled")
		}
	case in.Has(core.ActionReveal):
		g.sess.Reveal()
	}
}

// notify handles session events before forwarding them.
func (g *Game) notify(e session.Event) {
	switch e.Kind {
	case session.EventSolved, session.EventRevealed:
		g.record(e)
	case session.EventExpired:
		g.flash("Time's up")
	}

	if g.sink != nil {
		g.sink.Notify(e)
	}
}

func (g *Game) record(e session.Event) {
	if g.recorder == nil {
		return
	}
	rec := SolveRecord{
		RunID:       g.runID,
		LevelID:     e.Level.ID,
		LevelName:   e.Level.Name,
		Cols:        e.Level.Cols,
		Rows:        e.Level.Rows,
		Moves:       e.Moves,
		SecondsLeft: e.Remaining,
		Duration:    e.Elapsed,
		Points:      e.Points,
		Revealed:    e.Kind == session.EventRevealed,
	}
	if err := g.recorder.RecordSolve(rec); err != nil {
		g.logger.Warn("saving solve failed", "level", rec.LevelID, "err", err)
	}
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = messageTicks
}

func (g *Game) currentLevel() (levels.Level, bool) {
	idx := g.sess.Index()
	if idx < 0 || idx >= len(g.list) {
		return levels.Level{}, false
	}
	return g.list[idx], true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sess == nil {
		return core.GameState{}
	}
	phase := g.sess.Phase()
	return core.GameState{
		Score:    g.sess.Score(),
		GameOver: phase == session.PhaseExpired || phase == session.PhaseComplete,
		Won:      phase == session.PhaseComplete,
		Paused:   g.paused || g.tooSmall || phase == session.PhaseLoading,
	}
}

// Levels returns the campaign.
func (g *Game) Levels() []levels.Level {
	return g.list
}

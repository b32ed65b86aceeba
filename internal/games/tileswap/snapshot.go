package tileswap

import "github.com/vovakirdan/tileswap/internal/puzzle/session"

// GameStateType represents the current game state.
type GameStateType string

const (
	StateLoading     GameStateType = "loading"
	StatePlaying     GameStateType = "playing"
	StateSolved      GameStateType = "solved"
	StateRevealed    GameStateType = "revealed"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	RunID       string
	Level       int // 1-indexed campaign position
	LevelID     int
	Score       int
	Moves       int
	Remaining   int
	Cursor      int
	Selection   int // -1 when nothing is selected
	Arrangement []int
	Hint        bool
	State       GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tick,
		RunID:     g.runID,
		Cursor:    g.cursor,
		Selection: -1,
		Hint:      g.hint,
		State:     g.stateType(),
	}
	if g.sess == nil {
		return snap
	}

	snap.Level = g.sess.Index() + 1
	if lvl, ok := g.currentLevel(); ok {
		snap.LevelID = lvl.ID
	}
	snap.Score = g.sess.Score()
	snap.Moves = g.sess.Moves()
	snap.Remaining = g.sess.Remaining()
	snap.Arrangement = g.sess.Arrangement()
	if sel, ok := g.sess.Selection(); ok {
		snap.Selection = sel
	}
	return snap
}

func (g *Game) stateType() GameStateType {
	if g.sess == nil {
		return StateLoading
	}
	switch {
	case g.tooSmall:
		return StatePausedSmall
	case g.paused:
		return StatePaused
	}

	switch g.sess.Phase() {
	case session.PhasePlaying:
		return StatePlaying
	case session.PhaseSolved:
		return StateSolved
	case session.PhaseRevealed:
		return StateRevealed
	case session.PhaseExpired:
		return StateGameOver
	case session.PhaseComplete:
		return StateWin
	default:
		return StateLoading
	}
}

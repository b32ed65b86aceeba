// Package tui provides the Bubble Tea integration for the tile swap game.
// It handles the terminal UI loop, input mapping, asynchronous image
// loading and the one-second countdown pulse.
package tui

import (
	"context"
	"image"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tileswap/internal/games/tileswap"
	"github.com/vovakirdan/tileswap/internal/imagery"
	"github.com/vovakirdan/tileswap/internal/puzzle/countdown"
	"github.com/vovakirdan/tileswap/internal/puzzle/session"
)

// modelSeq numbers game models. Messages carry the number of the model
// that scheduled them, so a model never consumes a predecessor's ticks.
var modelSeq atomic.Uint64

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	Owner uint64
	Time  time.Time
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(owner uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Owner: owner, Time: t}
	})
}

// SecondMsg is one countdown second for the timer run identified by Handle.
type SecondMsg struct {
	Owner  uint64
	Handle countdown.Handle
}

// secondCmd schedules the next pulse of a timer run.
func secondCmd(owner uint64, h countdown.Handle) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return SecondMsg{Owner: owner, Handle: h}
	})
}

// ImageLoadedMsg carries a decoded level image back to the game.
// Img is a placeholder when Err is set.
type ImageLoadedMsg struct {
	Owner  uint64
	Ticket session.Ticket
	Img    *image.RGBA
	Err    error
}

// loadImageCmd decodes a level image off the update loop.
func loadImageCmd(ctx context.Context, owner uint64, p *imagery.Provider, load tileswap.Load) tea.Cmd {
	return func() tea.Msg {
		img, err := p.LoadOrPlaceholder(ctx, load.Ref)
		return ImageLoadedMsg{Owner: owner, Ticket: load.Ticket, Img: img, Err: err}
	}
}

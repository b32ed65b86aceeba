package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileswap/internal/config"
	"github.com/vovakirdan/tileswap/internal/games/tileswap"
	"github.com/vovakirdan/tileswap/internal/imagery"
	"github.com/vovakirdan/tileswap/internal/levels"
	"github.com/vovakirdan/tileswap/internal/logging"
	"github.com/vovakirdan/tileswap/internal/puzzle/session"
	"github.com/vovakirdan/tileswap/internal/storage"
)

// Setup carries everything a game instance is built from.
// Store and Logger may be nil.
type Setup struct {
	Levels   []levels.Level
	Config   config.TileSwapConfig
	Store    *storage.Store
	Provider *imagery.Provider
	Logger   *log.Logger
}

func (s Setup) logger() *log.Logger {
	if s.Logger == nil {
		return logging.Discard()
	}
	return s.Logger
}

func (s Setup) provider() *imagery.Provider {
	if s.Provider == nil {
		return imagery.NewProvider("", s.Config.Canvas.Size, s.logger())
	}
	return s.Provider
}

// NewGame builds a game starting at campaign index start.
func (s Setup) NewGame(start int, opts ...tileswap.Option) *tileswap.Game {
	logger := s.logger()
	base := []tileswap.Option{
		tileswap.WithLogger(logger),
		tileswap.WithSink(EventLogger(logger)),
		tileswap.WithStartLevel(start),
	}
	if s.Store != nil {
		base = append(base, tileswap.WithRecorder(s.Store))
	}
	return tileswap.New(s.Levels, s.Config, append(base, opts...)...)
}

// EventLogger returns a sink that logs session events.
func EventLogger(logger *log.Logger) session.Sink {
	return session.SinkFunc(func(e session.Event) {
		switch e.Kind {
		case session.EventLevelReady:
			logger.Info("level started", "level", e.Level.ID, "grid", e.Level.Tiles(), "seconds", e.Level.Seconds)
		case session.EventSolved:
			logger.Info("level solved", "level", e.Level.ID, "moves", e.Moves, "left", e.Remaining, "points", e.Points, "score", e.Score)
		case session.EventRevealed:
			logger.Info("level revealed", "level", e.Level.ID, "elapsed", e.Elapsed)
		case session.EventExpired:
			logger.Info("time expired", "level", e.Level.ID, "moves", e.Moves, "score", e.Score)
		case session.EventCampaignComplete:
			logger.Info("campaign complete", "score", e.Score)
		}
	})
}

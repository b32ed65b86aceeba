package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tileswap/internal/config"
	"github.com/vovakirdan/tileswap/internal/core"
	"github.com/vovakirdan/tileswap/internal/imagery"
	"github.com/vovakirdan/tileswap/internal/levels"
	"github.com/vovakirdan/tileswap/internal/logging"
	"github.com/vovakirdan/tileswap/internal/platform/tui"
	"github.com/vovakirdan/tileswap/internal/storage"
)

// app bundles what every command builds from the global flags.
type app struct {
	setup   tui.Setup
	logger  *log.Logger
	closers []io.Closer
}

// appOptions selects the optional parts of an app.
type appOptions struct {
	logToStderr bool // TUI commands log to a file instead
	openStore   bool
}

// newApp loads config, levels and storage from the global flags.
// Level and storage failures are reported and play continues without them.
func newApp(ctx context.Context, opts appOptions) (*app, error) {
	logFile := flagLogFile
	if logFile == "" && !opts.logToStderr {
		logFile = config.UserPath("tileswap.log")
	}
	logger, logCloser, err := logging.New(logging.Options{
		Level:  flagLogLevel,
		Prefix: "tileswap",
		File:   logFile,
	})
	if err != nil {
		return nil, err
	}
	a := &app{logger: logger, closers: []io.Closer{logCloser}}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		a.Close()
		return nil, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			a.Close()
			return nil, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}

	list, err := levels.Load(ctx, flagLevels, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load levels, using built-in campaign: %v\n", err)
		logger.Warn("level load failed", "src", flagLevels, "err", err)
	}
	logger.Info("campaign loaded", "levels", len(list), "src", flagLevels)

	a.setup = tui.Setup{
		Levels:   list,
		Config:   cfg,
		Provider: imagery.NewProvider("", cfg.Canvas.Size, logger),
		Logger:   logger,
	}

	if opts.openStore {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
			logger.Warn("storage unavailable", "db", flagDBPath, "err", err)
		} else {
			a.setup.Store = store
			a.closers = append(a.closers, store)
		}
	}

	return a, nil
}

// Close releases the store and the log file.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		//nolint:errcheck // Best-effort cleanup on exit
		a.closers[i].Close()
	}
	a.closers = nil
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

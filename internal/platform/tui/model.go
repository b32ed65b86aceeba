package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileswap/internal/config"
	"github.com/vovakirdan/tileswap/internal/core"
	"github.com/vovakirdan/tileswap/internal/games/tileswap"
	"github.com/vovakirdan/tileswap/internal/imagery"
	"github.com/vovakirdan/tileswap/internal/puzzle/countdown"
	"github.com/vovakirdan/tileswap/internal/puzzle/session"
	"github.com/vovakirdan/tileswap/internal/storage"
)

// Model is the Bubble Tea model for running the tile swap game.
type Model struct {
	id         uint64
	ctx        context.Context
	game       *tileswap.Game
	screen     *core.Screen
	store      *storage.Store
	provider   *imagery.Provider
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	requested session.Ticket   // last image load dispatched
	pulse     countdown.Handle // timer run the pulse chain belongs to

	standalone bool // owns the program, so going back ends it
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(ctx context.Context, game *tileswap.Game, setup Setup, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	return Model{
		id:         modelSeq.Add(1),
		ctx:        ctx,
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      setup.Store,
		provider:   setup.provider(),
		logger:     setup.logger(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Image load and pulse are dispatched from the first tick (value receiver)
	return tickCmd(m.id, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		return m.handleTick()

	case SecondMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		return m.handleSecond(msg)

	case ImageLoadedMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Warn("image load failed", "ticket", msg.Ticket, "err", msg.Err)
		}
		m.game.ImageReady(msg.Ticket, msg.Img, msg.Err)
		cmd := m.sync()
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu when the game is over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handleResize adapts the screen and layout without restarting the level.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.store != nil {
			if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
				m.logger.Warn("saving score failed", "err", err)
			}
		}
		m.scoreSaved = true
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	cmd := m.sync()
	return m, tea.Batch(tickCmd(m.id, m.config.TickRate), cmd)
}

// handleSecond delivers one countdown second and keeps the chain alive
// while its timer run is still current.
func (m Model) handleSecond(msg SecondMsg) (tea.Model, tea.Cmd) {
	m.game.Second(msg.Handle)
	if m.game.TimerHandle() != msg.Handle {
		if m.pulse == msg.Handle {
			m.pulse = 0
		}
		cmd := m.sync()
		return m, cmd
	}
	return m, secondCmd(m.id, msg.Handle)
}

// sync dispatches the outstanding image load and starts a pulse chain for
// a new timer run.
func (m *Model) sync() tea.Cmd {
	var cmds []tea.Cmd

	if load, ok := m.game.PendingLoad(); ok && load.Ticket != m.requested {
		m.requested = load.Ticket
		cmds = append(cmds, loadImageCmd(m.ctx, m.id, m.provider, load))
	}

	if h := m.game.TimerHandle(); h != 0 && h != m.pulse {
		m.pulse = h
		cmds = append(cmds, secondCmd(m.id, h))
	}

	return tea.Batch(cmds...)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.UserPath("screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
// It reports whether the player asked to go back to the menu.
func Run(ctx context.Context, game *tileswap.Game, setup Setup, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(ctx, game, setup, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithContext(model.ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}

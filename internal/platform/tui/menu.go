package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tileswap/internal/core"
	"github.com/vovakirdan/tileswap/internal/games/tileswap"
	"github.com/vovakirdan/tileswap/internal/levels"
	"github.com/vovakirdan/tileswap/internal/puzzle/countdown"
	"github.com/vovakirdan/tileswap/internal/storage"
)

// Main menu entries
const (
	menuCampaign = iota
	menuSelectLevel
	menuScores
	menuItemCount
)

// MenuModel is the Bubble Tea model for the start menu and level picker.
type MenuModel struct {
	levels         []levels.Level
	seconds        []int // scaled time limit per level
	cursor         int
	levelCursor    int
	inLevelSelect  bool
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	start          int // campaign index chosen, -1 while choosing
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(setup Setup, cfg core.RuntimeConfig) MenuModel {
	campaign := levels.Campaign(setup.Levels, setup.Config)
	seconds := make([]int, len(campaign))
	for i, lvl := range campaign {
		seconds[i] = lvl.Seconds
	}

	return MenuModel{
		levels:    setup.Levels,
		seconds:   seconds,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     setup.Store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		start:     -1,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleMainKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < menuItemCount-1 {
			m.cursor++
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionSelect:
		switch m.cursor {
		case menuCampaign:
			m.start = 0
			return m, tea.Quit
		case menuSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
		case menuScores:
			m.openScoreboard = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.start = m.levelCursor
			return m, tea.Quit
		}
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("T I L E   S W A P", m.width))
	b.WriteString("\n\n")

	best := 0
	if m.store != nil {
		if high, err := m.store.HighScore(tileswap.ID); err == nil {
			best = high
		}
	}
	b.WriteString(centerText(fmt.Sprintf("Best score: %d", best), m.width))
	b.WriteString("\n\n")

	items := []string{
		fmt.Sprintf("Campaign (%d levels)", len(m.levels)),
		"Select Level...",
		"High Scores",
	}
	for i, item := range items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		limit := "untimed"
		if secs := m.seconds[i]; secs > 0 {
			limit = countdown.Format(secs)
		}
		line := fmt.Sprintf("%s%2d. %-24s %-6s %s", cursor, i+1, lvl.Title(), lvl.GridLabel(), limit)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Start returns the chosen campaign index, or -1 if none was chosen.
func (m MenuModel) Start() int {
	return m.start
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Start           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(setup Setup, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(setup, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Start:  m.Start(),
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Start() < 0:
		result.Quit = true
	}

	return result, nil
}

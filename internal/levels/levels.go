// Package levels loads the level campaign and resolves per-level settings.
//
// Level records follow the external level feed contract: camelCase keys
// (level, name, desc, diff, cols, rows, imageUrl, imageList, randomize,
// timeLimit) in YAML or JSON.
package levels

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tileswap/internal/config"
	"github.com/vovakirdan/tileswap/internal/puzzle/session"
)

// DefaultGrid is used for levels that omit cols or rows.
const DefaultGrid = 3

// Level is one campaign entry.
type Level struct {
	ID        int      `yaml:"level"`
	Name      string   `yaml:"name"`
	Desc      string   `yaml:"desc"`
	Diff      string   `yaml:"diff"`
	Cols      int      `yaml:"cols"`
	Rows      int      `yaml:"rows"`
	ImageURL  string   `yaml:"imageUrl"`
	ImageList []string `yaml:"imageList"`
	Randomize bool     `yaml:"randomize"`
	TimeLimit int      `yaml:"timeLimit"` // seconds; 0 derives one from config

	FilePath string `yaml:"-"`
}

// Title returns "Level N: Name".
func (l Level) Title() string {
	if l.Name == "" {
		return fmt.Sprintf("Level %d", l.ID)
	}
	return fmt.Sprintf("Level %d: %s", l.ID, l.Name)
}

// GridLabel returns the board size as "CxR".
func (l Level) GridLabel() string {
	return fmt.Sprintf("%dx%d", l.Cols, l.Rows)
}

// Fallback is the single level used when nothing else can be loaded.
func Fallback() []Level {
	return []Level{{ID: 1, Name: "Fallback", Cols: DefaultGrid, Rows: DefaultGrid, ImageURL: "pattern:gradient"}}
}

// normalize fills defaults. idx is the record's position in its source.
// embeddedSource is the FilePath of levels from the built-in campaign.
const embeddedSource = "embedded"

func normalize(list []Level, path string) []Level {
	for i := range list {
		l := &list[i]
		if l.ID <= 0 {
			l.ID = i + 1
		}
		if l.Cols <= 0 {
			l.Cols = DefaultGrid
		}
		if l.Rows <= 0 {
			l.Rows = DefaultGrid
		}
		l.Diff = strings.ToLower(strings.TrimSpace(l.Diff))
		l.FilePath = path
	}
	return list
}

// Duration returns the time limit in seconds for the level at campaign
// position stage. An explicit timeLimit wins, then the difficulty tier, then
// a per-tile allowance. The result is scaled by dm when it is non-nil.
// Zero means untimed.
func Duration(l Level, cfg config.TileSwapConfig, dm *config.DifficultyManager, p config.Progress) int {
	if cfg.Timer.Untimed {
		return 0
	}

	base := l.TimeLimit
	if base <= 0 {
		base = cfg.Timer.Tiers[l.Diff]
	}
	if base <= 0 {
		base = l.Cols * l.Rows * cfg.Timer.PerTileSeconds
	}

	if dm == nil {
		return base
	}
	return dm.Seconds(base, p)
}

// Campaign converts levels into session levels with their time limits.
func Campaign(list []Level, cfg config.TileSwapConfig) []session.Level {
	dm := config.NewDifficultyManager(cfg.Difficulty)

	out := make([]session.Level, len(list))
	for i, l := range list {
		out[i] = session.Level{
			ID:      l.ID,
			Name:    l.Name,
			Cols:    l.Cols,
			Rows:    l.Rows,
			Seconds: Duration(l, cfg, dm, config.Progress{Stage: i}),
		}
	}
	return out
}

// IndexOf returns the position of the level with the given ID.
func IndexOf(list []Level, id int) (int, bool) {
	for i, l := range list {
		if l.ID == id {
			return i, true
		}
	}
	return 0, false
}

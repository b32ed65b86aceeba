// Package config provides YAML-based game configuration loading and
// difficulty management for tileswap.
package config

// TileSwapConfig contains all configuration for the tile swap puzzle.
type TileSwapConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Timer      TimerConfig      `yaml:"timer"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CanvasConfig defines how level images are prepared.
type CanvasConfig struct {
	Size   int `yaml:"size"`   // Square source canvas in pixels
	Gutter int `yaml:"gutter"` // Terminal cells between tiles
}

// TimerConfig defines level time limits.
type TimerConfig struct {
	PerTileSeconds int            `yaml:"per_tile_seconds"` // Used when a level has no limit or tier
	Tiers          map[string]int `yaml:"tiers"`            // Seconds per level difficulty tier
	Untimed        bool           `yaml:"untimed"`          // Disable the countdown entirely
}

// ScoringConfig defines how solved levels are scored.
type ScoringConfig struct {
	PerSecond int `yaml:"per_second"` // Points per second left on the clock
	PerTile   int `yaml:"per_tile"`   // Points per board position
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a campaign.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Level index or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	TimeReduction float64 `yaml:"time_reduction"` // Fraction of the time limit removed at max difficulty
	MinSeconds    int     `yaml:"min_seconds"`    // Floor for scaled time limits
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown values yield normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

package config

import (
	_ "embed"
)

//go:embed defaults/tileswap.yaml
var defaultTileSwapYAML []byte

// DefaultTileSwapConfig returns the hard-coded default configuration.
func DefaultTileSwapConfig() TileSwapConfig {
	return TileSwapConfig{
		Canvas: CanvasConfig{
			Size:   600,
			Gutter: 1,
		},
		Timer: TimerConfig{
			PerTileSeconds: 15,
			Tiers: map[string]int{
				"easy":   180,
				"medium": 120,
				"hard":   90,
			},
		},
		Scoring: ScoringConfig{
			PerSecond: 10,
			PerTile:   5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				TimeReduction: 0.4,
				MinSeconds:    30,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTileSwapYAML
}

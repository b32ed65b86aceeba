package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir is the per-user data directory under $HOME.
const Dir = ".tileswap"

// Load loads the game configuration.
// Search order: customPath -> ~/.tileswap/configs/tileswap.yaml -> ./configs/tileswap.yaml -> embedded default
func Load(customPath string) (TileSwapConfig, error) {
	cfg := DefaultTileSwapConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath("configs", "tileswap.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultTileSwapConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tileswap.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultTileSwapConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTileSwapYAML, &cfg); err != nil {
		return DefaultTileSwapConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// UserPath joins elem under ~/.tileswap, or returns empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, Dir}, elem...)...)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *TileSwapConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the clock and payout based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Timer.PerTileSeconds += cfg.Timer.PerTileSeconds / 2
		cfg.Difficulty.Scaling.TimeReduction /= 2
	case DifficultyHard:
		cfg.Scoring.PerSecond *= 2
	}
}

package config

import "math"

// Progress locates the player in a campaign.
type Progress struct {
	Stage int // zero-based level index
	Score int // campaign score so far
}

// DifficultyManager calculates time limits from campaign progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) for p.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "level":
		progress = float64(p.Stage) / maxAt
	case "score":
		progress = float64(p.Score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Seconds scales a base time limit down as difficulty rises. Non-positive
// limits mean untimed and pass through.
func (d *DifficultyManager) Seconds(base int, p Progress) int {
	if base <= 0 {
		return base
	}

	level := d.Level(p)
	scaled := int(math.Round(float64(base) * (1.0 - level*d.cfg.Scaling.TimeReduction)))

	floor := d.cfg.Scaling.MinSeconds
	if floor > base {
		floor = base
	}
	if scaled < floor {
		scaled = floor
	}
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

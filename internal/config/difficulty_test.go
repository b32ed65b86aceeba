package config

import (
	"math"
	"testing"
)

func TestDifficultyLevelProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "level", MaxAt: 4},
	})

	tests := []struct {
		stage    int
		expected float64
	}{
		{0, 0.0},
		{2, 0.5},
		{4, 1.0},
		{10, 1.0},
	}

	for _, tc := range tests {
		got := dm.Level(Progress{Stage: tc.stage})
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(stage %d) = %f, expected %f", tc.stage, got, tc.expected)
		}
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
	})

	if got := dm.Level(Progress{Score: 500}); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Level(score 500) = %f, expected 0.75", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.3,
		Progression:  ProgressionConfig{Type: "level", MaxAt: 2},
	})

	if dm.IsEnabled() {
		t.Error("IsEnabled() = true, expected false")
	}
	if got := dm.Level(Progress{Stage: 2}); got != 0.3 {
		t.Errorf("Level = %f, expected 0.3", got)
	}

	dm.SetEnabled(true)
	dm.SetInitialLevel(2.0)
	if got := dm.Level(Progress{}); got != 1.0 {
		t.Errorf("Level after SetInitialLevel(2) = %f, expected clamp to 1", got)
	}
}

func TestDifficultySeconds(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "level", MaxAt: 1},
		Scaling:     ScalingConfig{TimeReduction: 0.5, MinSeconds: 30},
	})

	tests := []struct {
		name     string
		base     int
		stage    int
		expected int
	}{
		{"first level keeps full time", 120, 0, 120},
		{"max difficulty halves", 120, 1, 60},
		{"floor applies", 40, 1, 30},
		{"floor never raises", 20, 1, 20},
		{"untimed passes through", 0, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := dm.Seconds(tc.base, Progress{Stage: tc.stage}); got != tc.expected {
				t.Errorf("Seconds(%d) = %d, expected %d", tc.base, got, tc.expected)
			}
		})
	}
}

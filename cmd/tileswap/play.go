package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileswap/internal/levels"
	"github.com/vovakirdan/tileswap/internal/platform/tui"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start the campaign directly, from the first level or from --level.

Controls:
  Arrows/WASD/hjkl - Move the cursor
  Space/Enter      - Pick a tile, then its swap partner
  Mouse click      - Pick the tile under the pointer
  X                - Reshuffle the board
  V                - Reveal the picture (no points)
  N                - Next level (after solving)
  ?/T              - Toggle tile numbers
  P                - Pause
  R                - Restart (after time runs out)
  Esc/B            - Back to menu (paused or game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More time per tile, gentle time scaling
  normal - Default clock, time shrinks on later levels
  hard   - Tighter clock from the start, double time bonus
  fixed  - No time scaling between levels

Examples:
  tileswap play
  tileswap play --level 4
  tileswap play --difficulty hard
  tileswap play --levels ./levels/animals.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level ID to start from (default: first level)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, appOptions{openStore: true})
	if err != nil {
		return err
	}
	defer a.Close()

	start := 0
	if flagLevel > 0 {
		idx, ok := levels.IndexOf(a.setup.Levels, flagLevel)
		if !ok {
			return fmt.Errorf("unknown level %d (run 'tileswap levels' to list them)", flagLevel)
		}
		start = idx
	}

	game := a.setup.NewGame(start)
	if _, err := tui.Run(ctx, game, a.setup, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// tileswap is an image swap puzzle for the terminal: every level slices a
// picture into a grid of shuffled tiles and the player swaps pairs back
// into place before the clock runs out.
//
// Usage:
//
//	tileswap play             - Play the campaign from the first level
//	tileswap menu             - Start menu with level picker and scores
//	tileswap levels           - List the levels of the campaign
//	tileswap scores           - Show campaign scores or best solves
//	tileswap serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible shuffles
//	--db <path>           - Set database path (default: ~/.tileswap/scores.db)
//	--levels <src>        - Level file, directory or URL
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Log destination
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileswap/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLevels     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tileswap",
	Short: "Tile Swap - an image swap puzzle in your terminal",
	Long: `Tile Swap slices a picture into a grid of tiles and shuffles them.
Swap pairs of tiles until the picture is whole again, before the clock
runs out.

Available commands:
  play     - Play the campaign directly
  menu     - Interactive menu with level picker
  levels   - List the campaign levels
  scores   - View high scores and best solves
  serve    - Start SSH server for remote play

Examples:
  tileswap play
  tileswap play --level 3 --difficulty easy
  tileswap menu --levels ./my-levels
  tileswap serve --ssh :2222
  tileswap scores --level 2`,
	SilenceUsage: true,
}

func init() {
	defaultDB := "~/" + config.Dir + "/scores.db"

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDB, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level file, directory or URL (default: built-in campaign)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default: ~/.tileswap/tileswap.log, stderr for serve)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

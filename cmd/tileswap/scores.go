package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileswap/internal/games/tileswap"
	"github.com/vovakirdan/tileswap/internal/puzzle/countdown"
	"github.com/vovakirdan/tileswap/internal/storage"
)

var (
	flagScoresLevel int
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show campaign scores or best solves",
	Long: `Display the top campaign scores, or with --level the fastest
solves of one level. Revealed levels never count as solves.

Examples:
  tileswap scores
  tileswap scores --level 3
  tileswap scores --limit 20`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLevel, "level", 0, "Show best solves of this level ID")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresLevel > 0 {
		return printSolves(store, flagScoresLevel, flagScoresLimit)
	}
	return printScores(store, flagScoresLimit)
}

func printScores(store *storage.Store, limit int) error {
	scores, err := store.TopScores(tileswap.ID, limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Campaign")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tileswap play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	if stats, err := store.GetGameStats(tileswap.ID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  |  Games: %d  |  Solves: %d  |  Revealed: %d\n",
			stats.HighScore, stats.GamesCount, stats.Solves, stats.Revealed)
	}
	return nil
}

func printSolves(store *storage.Store, levelID, limit int) error {
	solves, err := store.BestSolves(levelID, limit)
	if err != nil {
		return fmt.Errorf("retrieving solves: %w", err)
	}

	if len(solves) == 0 {
		fmt.Printf("No solves recorded for level %d yet.\n", levelID)
		return nil
	}

	fmt.Printf("Best Solves - %s (%dx%d)\n", solves[0].LevelName, solves[0].Cols, solves[0].Rows)
	fmt.Println()

	// Print header
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %s\n", "Rank", "Time", "Moves", "Points", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %s\n", "----", "----", "-----", "------", "----")

	for i, s := range solves {
		dateStr := s.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6s  %-6d  %-7d  %s\n",
			i+1, countdown.Format(s.Duration), s.Moves, s.Points, dateStr)
	}
	return nil
}

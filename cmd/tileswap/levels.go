package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileswap/internal/levels"
	"github.com/vovakirdan/tileswap/internal/puzzle/countdown"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows every level of the campaign with its grid size and the time
limit after difficulty scaling.

Examples:
  tileswap levels
  tileswap levels --difficulty easy
  tileswap levels --levels ./levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	list := a.setup.Levels
	if len(list) == 0 {
		fmt.Println("No levels available.")
		return nil
	}
	campaign := levels.Campaign(list, a.setup.Config)

	// Calculate column widths
	maxTitleLen := 5 // "Title" header
	for _, l := range list {
		if n := len(l.Title()); n > maxTitleLen {
			maxTitleLen = n
		}
	}

	fmt.Println("Campaign levels:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-4s  %-*s  %-6s  %s\n", "ID", maxTitleLen, "Title", "Grid", "Time")
	fmt.Printf("  %-4s  %-*s  %-6s  %s\n", "--", maxTitleLen, "-----", "----", "----")

	for i, l := range list {
		limit := "untimed"
		if secs := campaign[i].Seconds; secs > 0 {
			limit = countdown.Format(secs)
		}
		fmt.Printf("  %-4d  %-*s  %-6s  %s\n", l.ID, maxTitleLen, l.Title(), l.GridLabel(), limit)
	}

	fmt.Println()
	fmt.Println("Run 'tileswap play --level <id>' to start from a level.")
	return nil
}

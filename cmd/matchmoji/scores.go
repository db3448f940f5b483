package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oscarklm/matchmoji/internal/games/memory"
	"github.com/oscarklm/matchmoji/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a level, or a summary of every
level when none is named.

Examples:
  matchmoji scores
  matchmoji scores easy
  matchmoji scores memory_hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	lvl, err := memory.FindLevel(args[0])
	if err != nil {
		return fmt.Errorf("%w\nRun 'matchmoji levels' to see available levels", err)
	}

	scores, err := store.TopScores(lvl.ID(), 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", lvl.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'matchmoji play %s' to set the first high score!\n", lvl.Name)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.BestRound(lvl.ID())
	if err != nil {
		return fmt.Errorf("retrieving best round: %w", err)
	}
	if best != nil {
		fmt.Println()
		fmt.Printf("Best win: %d points, %d moves, %ds left\n", best.Score, best.Moves, best.SecondsLeft)
	}
	return nil
}

// printSummary shows one line per configured level.
func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Println("Scores by level")
	fmt.Println()
	fmt.Printf("  %-28s  %-6s  %-6s  %-6s  %s\n", "Level", "Games", "Wins", "Best", "Last played")
	fmt.Printf("  %-28s  %-6s  %-6s  %-6s  %s\n", "-----", "-----", "----", "----", "-----------")

	for _, lvl := range memory.Levels() {
		s, ok := stats[lvl.ID()]
		if !ok {
			fmt.Printf("  %-28s  %-6d  %-6d  %-6s  %s\n", lvl.Title(), 0, 0, "-", "never")
			continue
		}
		best := "-"
		if s.HighScore > 0 {
			best = fmt.Sprint(s.HighScore)
		}
		fmt.Printf("  %-28s  %-6d  %-6d  %-6s  %s\n", lvl.Title(), s.GamesCount, s.Wins, best, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

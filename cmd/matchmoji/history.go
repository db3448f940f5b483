package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oscarklm/matchmoji/internal/games/memory"
	"github.com/oscarklm/matchmoji/internal/storage"
)

var (
	flagHistoryLevel string
	flagHistoryLimit int
	flagHistoryRun   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently finished rounds",
	Long: `List finished rounds, newest first, across all levels or one level.
Use --run to show the details of a single round by its run ID.

Examples:
  matchmoji history
  matchmoji history --level easy --limit 5
  matchmoji history --run 3f0c9d7e-0d3e-4c47-9e43-6a3b1b8f2a10`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryLevel, "level", "", "Only show rounds for this level")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum rounds to show")
	historyCmd.Flags().StringVar(&flagHistoryRun, "run", "", "Show a single round by run ID")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagHistoryRun != "" {
		return printRound(store, flagHistoryRun)
	}

	gameID := ""
	if flagHistoryLevel != "" {
		lvl, err := memory.FindLevel(flagHistoryLevel)
		if err != nil {
			return err
		}
		gameID = lvl.ID()
	}

	rounds, err := store.RecentRounds(gameID, flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("retrieving rounds: %w", err)
	}

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-6s  %-6s  %-7s  %-5s  %-5s  %s\n",
		"Date", "Level", "Result", "Score", "Pairs", "Moves", "Left", "Player")
	for _, r := range rounds {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-16s  %-10s  %-6s  %-6d  %-7s  %-5d  %-5s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Level,
			r.Outcome,
			r.Score,
			fmt.Sprintf("%d/%d", r.Matches, r.Pairs),
			r.Moves,
			fmt.Sprintf("%ds", r.SecondsLeft),
			player,
		)
	}
	return nil
}

func printRound(store *storage.Store, runID string) error {
	r, err := store.RoundByID(runID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no round with run ID %q", runID)
	}

	fmt.Printf("Run:     %s\n", r.RunID)
	fmt.Printf("Level:   %s (%s)\n", r.Level, r.GameID)
	fmt.Printf("Result:  %s\n", r.Outcome)
	fmt.Printf("Pairs:   %d/%d in %d moves\n", r.Matches, r.Pairs, r.Moves)
	fmt.Printf("Clock:   %ds left\n", r.SecondsLeft)
	fmt.Printf("Score:   %d\n", r.Score)
	if r.Player != "" {
		fmt.Printf("Player:  %s\n", r.Player)
	}
	fmt.Printf("Played:  %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

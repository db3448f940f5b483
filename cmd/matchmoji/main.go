// matchmoji is an emoji memory game for the terminal.
//
// Usage:
//
//	matchmoji levels           - List the configured levels
//	matchmoji play [level]     - Play a level
//	matchmoji menu             - Pick levels interactively
//	matchmoji serve            - Start SSH server for remote play
//	matchmoji scores [level]   - Show high scores
//	matchmoji history          - Show recently finished rounds
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible deals
//	--db <path>           - Set database path (default: ~/.matchmoji/scores.db)
//	--config <path>       - Load levels from a YAML file
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oscarklm/matchmoji/internal/config"
	"github.com/oscarklm/matchmoji/internal/games/memory"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "matchmoji",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "matchmoji",
	Short: "Matchmoji - an emoji memory game for your terminal",
	Long: `Matchmoji deals a board of face-down emoji cards. Turn two at a time
and find every pair before the clock runs out.

Available commands:
  levels   - Show the configured levels
  play     - Play a level directly
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  history  - View recently finished rounds

Examples:
  matchmoji levels
  matchmoji play easy
  matchmoji menu --difficulty hard
  matchmoji serve --ssh :2222
  matchmoji scores medium`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configureLevels,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/"+config.ConfigDirName+"/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom levels YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
}

// configureLevels reloads the level set with the --config and --difficulty
// flags applied. A broken file given with --config is fatal; a broken file
// found on the default search path only falls back to the built-in levels.
func configureLevels(_ *cobra.Command, _ []string) error {
	preset, ok := config.ParseDifficultyPreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	if err := memory.Configure(flagConfig, preset); err != nil {
		if flagConfig != "" {
			return err
		}
		logger.Warn("using built-in levels", "error", err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oscarklm/matchmoji/internal/config"
	"github.com/oscarklm/matchmoji/internal/games/memory"
)

var flagShowDefaults bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the configured levels",
	Long: `Shows every level in the active configuration, in play order.

Levels come from --config, ~/.matchmoji/configs/memory.yaml,
./configs/memory.yaml or the built-in defaults, in that order.
Use --defaults to print the built-in YAML as a starting point.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagShowDefaults, "defaults", false, "Print the built-in levels YAML and exit")
}

func runLevels(_ *cobra.Command, _ []string) error {
	if flagShowDefaults {
		_, err := os.Stdout.Write(config.GetDefaultYAML("memory"))
		return err
	}

	levels := memory.Levels()
	if len(levels) == 0 {
		fmt.Println("No levels configured.")
		return nil
	}

	maxIDLen := len("ID")
	for _, lvl := range levels {
		maxIDLen = max(maxIDLen, len(lvl.ID()))
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-6s  %-6s  %s\n", "#", maxIDLen, "ID", "Board", "Time", "Emojis")
	fmt.Printf("  %-3s  %-*s  %-6s  %-6s  %s\n", "-", maxIDLen, "--", "-----", "----", "------")

	for i, lvl := range levels {
		board := fmt.Sprintf("%dx%d", lvl.Size, lvl.Size)
		fmt.Printf("  %-3d  %-*s  %-6s  %-6s  %d of %d\n",
			i+1, maxIDLen, lvl.ID(), board, fmt.Sprintf("%ds", lvl.Duration), lvl.Pairs(), len(lvl.Emojis))
	}

	fmt.Println()
	fmt.Println("Run 'matchmoji play <name|id|#>' to play a level.")
	return nil
}

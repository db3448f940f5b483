package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oscarklm/matchmoji/internal/core"
	"github.com/oscarklm/matchmoji/internal/games/memory"
	"github.com/oscarklm/matchmoji/internal/platform/tui"
	"github.com/oscarklm/matchmoji/internal/registry"
	"github.com/oscarklm/matchmoji/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level, or the first level when none is named.
A level may be named, given by ID, or by its number in 'matchmoji levels'.

Controls:
  Arrows/WASD/HJKL - Move the cursor
  Space/Enter      - Turn the card over
  P                - Pause
  R                - Restart with a new deal
  B/Esc            - Leave (when paused or over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 50% more time, slower card reveal
  normal - Times as configured
  hard   - 25% less time, faster card reveal
  fixed  - Times exactly as configured

Examples:
  matchmoji play
  matchmoji play medium
  matchmoji play 3 --difficulty hard
  matchmoji play tiny --config ./my-levels.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// runtimeConfig builds the game config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	ref := "1"
	if len(args) > 0 {
		ref = args[0]
	}

	lvl, err := memory.FindLevel(ref)
	if err != nil {
		return fmt.Errorf("%w\nRun 'matchmoji levels' to see available levels", err)
	}

	game, err := registry.Create(lvl.ID())
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/oscarklm/matchmoji/internal/platform/tui"
	"github.com/oscarklm/matchmoji/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start matchmoji in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a level.
After a round, B or Esc returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Scoreboard
  Q            - Quit

Examples:
  matchmoji menu
  matchmoji menu --fps 30
  matchmoji menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Warn("could not create game", "game", menuResult.GameID, "error", err)
			continue
		}

		// A fixed --seed replays the same deal; otherwise every round is new.
		roundCfg := cfg
		if flagSeed == 0 {
			roundCfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, roundCfg); err != nil {
			logger.Error("running game", "game", game.ID(), "error", err)
		}
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty menu",
	Long: `Start in interactive menu mode.

Asks for your name on first launch, then shows the difficulty menu.
After a run you can return to the menu with B or Esc.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start a run
  Tab          - Best runs (local and online)
  Q            - Quit

Examples:
  platformer menu
  platformer menu --fps 30
  platformer menu --db ./runs.db --leaderboard http://localhost:3000`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	env, err := setupPlay()
	if err != nil {
		return err
	}
	defer env.close()

	game := platformer.New()
	cfg := tui.SessionConfig{
		GameID:  platformer.GameID,
		Title:   game.Title(),
		Tuning:  env.tuning,
		AskName: env.opts.PlayerName == "",
	}
	if err := tui.RunSession(cfg, env.runtime, env.opts); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available games and difficulties",
	Long:  `Shows the registered games and the difficulty presets of the active config.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	// Ignore load errors; defaults are still worth listing
	tuning, _ := config.LoadPlatformer("")
	fmt.Println()
	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %s\n", "Preset", "Hearts", "Start speed")
	fmt.Printf("  %-8s  %-6s  %s\n", "------", "------", "-----------")
	for _, p := range config.Presets() {
		v := tuning.Difficulty.Presets[string(p)]
		marker := ""
		if string(p) == tuning.Difficulty.Default {
			marker = "  (default)"
		}
		fmt.Printf("  %-8s  %-6d  %.1f%s\n", p, v.Hearts, v.BaseSpeed, marker)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play --difficulty <preset>' to play.")
	return nil
}

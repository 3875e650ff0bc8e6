// platformer is a side-scrolling platformer for the terminal with a local run
// history and a shared leaderboard service.
//
// Usage:
//
//	platformer play                 - Play a run
//	platformer menu                 - Pick a difficulty interactively
//	platformer serve                - Start SSH server for remote play
//	platformer scores               - Show local best runs
//	platformer leaderboard serve    - Run the leaderboard HTTP service
//	platformer leaderboard list     - Show the shared leaderboard
//	platformer list                 - List available games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.platformer/platformer.db)
//	--leaderboard <url>   - Leaderboard service URL ("" disables online scores)
//	--log-level <level>   - debug, info, warn or error
//	--key-delay <dur>     - Hold time of a fresh key press (default: 550ms)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagLeaderboard string
	flagLogLevel    string
	flagKeyDelay    time.Duration
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Sky Runner - a side-scrolling platformer in your terminal",
	Long: `Sky Runner is an endless side-scroller: the screen keeps moving right,
faster and faster. Jump between platforms, collect coins, stomp enemies and
stay alive as long as you can.

Available commands:
  play         - Start a run right away
  menu         - Interactive difficulty menu
  serve        - Start SSH server for remote play
  scores       - View your best runs
  leaderboard  - Run or query the shared leaderboard
  list         - Show all available games

Examples:
  platformer play
  platformer play --difficulty hard --audio
  platformer menu
  platformer serve --ssh :2222
  platformer leaderboard serve --addr :3000`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/platformer.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboard, "leaderboard", "", "Leaderboard service URL, e.g. http://localhost:3000")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().DurationVar(&flagKeyDelay, "key-delay", core.DefaultInitialHoldWindow, "How long a key press counts as held before terminal auto-repeat starts")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(leaderboardCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/leaderboard"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagName       string
	flagAudio      bool
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run right away.

Controls:
  A/D, Left/Right   - Run
  Space/W/Up        - Jump
  P                 - Pause
  R                 - Restart (after game over)
  Tab               - Scoreboard (after game over)
  B/Esc             - Back (after game over or while paused)
  Ctrl+S            - Screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 5 hearts, slow start
  normal - 3 hearts
  hard   - 1 heart, fast start
  fixed  - 3 hearts, the speed never increases

Examples:
  platformer play
  platformer play --difficulty hard
  platformer play --name ada --leaderboard http://localhost:3000
  platformer play --config ./my-platformer.yaml --watch
  platformer play --audio`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagName, "name", "", "Player name (defaults to the saved name)")
		cmd.Flags().BoolVar(&flagAudio, "audio", false, "Play sound effects and music")
		cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
	}
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// playEnv holds everything a terminal session needs. close releases it.
type playEnv struct {
	opts    tui.Options
	runtime core.RuntimeConfig
	tuning  config.PlatformerConfig
	close   func()
}

// setupPlay opens the run history, the log file, audio and the config
// watcher. Failures of optional services are logged and the game runs
// without them.
func setupPlay() (*playEnv, error) {
	logger, closeLog, err := newFileLogger()
	if err != nil {
		return nil, err
	}

	tuning, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		closeLog()
		return nil, err
	}
	platformer.SetConfigPath(flagConfig)

	closers := []func(){closeLog}
	env := &playEnv{
		tuning: tuning,
		close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}
	env.opts.Logger = logger
	env.opts.KeyDelay = flagKeyDelay

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("could not open run database", "error", err)
	} else {
		env.opts.Store = store
		closers = append(closers, func() { store.Close() })
	}

	if flagLeaderboard != "" {
		env.opts.Leaderboard = leaderboard.NewClient(flagLeaderboard)
	}

	if flagAudio {
		sound := audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			env.opts.Sound = sound
			closers = append(closers, sound.Cleanup)
		}
	}

	if flagWatch {
		watchConfig(env, logger, &closers)
	}

	env.runtime = terminalConfig()
	env.opts.PlayerName = savedName(env.opts.Store, logger)
	return env, nil
}

func watchConfig(env *playEnv, logger *log.Logger, closers *[]func()) {
	path := config.ActivePath(flagConfig)
	if path == "" {
		fmt.Fprintln(os.Stderr, "Warning: --watch needs a config file; using built-in defaults")
		return
	}
	w, err := config.Watch(path)
	if err != nil {
		logger.Warn("config watch failed", "path", path, "error", err)
		return
	}
	logger.Info("watching config", "path", path)
	env.opts.Reloads = w.Reloads
	*closers = append(*closers, func() { w.Close() })
}

// terminalConfig sizes the game to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// savedName returns --name, or the name stored in the profile.
// A --name is stored for next time.
func savedName(store *storage.Store, logger *log.Logger) string {
	if store == nil {
		return flagName
	}
	if flagName != "" {
		if err := store.SetPlayerName(flagName); err != nil {
			logger.Warn("could not save player name", "error", err)
		}
		return flagName
	}
	name, err := store.PlayerName()
	if err != nil {
		logger.Warn("could not read player name", "error", err)
	}
	return name
}

func runPlay(_ *cobra.Command, _ []string) error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using the configured default\n", err)
	}

	env, err := setupPlay()
	if err != nil {
		return err
	}
	defer env.close()

	if env.opts.PlayerName == "" {
		name, ok, err := tui.RunNamePrompt("", env.runtime.ScreenW, env.runtime.ScreenH)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		env.opts.PlayerName = name
		if env.opts.Store != nil {
			if err := env.opts.Store.SetPlayerName(name); err != nil {
				env.opts.Logger.Warn("could not save player name", "error", err)
			}
		}
	}

	game, err := registry.Create(platformer.GameID)
	if err != nil {
		return err
	}

	env.runtime.Difficulty = flagDifficulty
	if err := tui.Run(game, env.runtime, env.opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

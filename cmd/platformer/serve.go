package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/leaderboard"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeConfig string
	flagServeLBAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets people connect and play.

Each SSH connection gets its own session with the difficulty menu.
The SSH user name is the player name. Runs are stored in the server's
database, and sent to --leaderboard when it is set.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.platformer/host_key

Examples:
  platformer serve                           # Listen on :23234 with auto-generated key
  platformer serve --ssh :2222               # Listen on port 2222
  platformer serve --host-key ./my_host_key  # Use specific host key
  platformer serve --leaderboard http://localhost:3000
  platformer serve --with-leaderboard :3000  # Also host the leaderboard

Players connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagServeLBAddr, "with-leaderboard", "", "Also run the leaderboard service on this address")
}

// localURL turns a listen address like ":3000" into a URL this process can reach.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "platformer-ssh")
	if err != nil {
		return err
	}

	tuning, err := config.LoadPlatformer(flagServeConfig)
	if err != nil {
		return err
	}
	platformer.SetConfigPath(flagServeConfig)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.LeaderboardURL = flagLeaderboard
	if flagServeLBAddr != "" && cfg.LeaderboardURL == "" {
		cfg.LeaderboardURL = localURL(flagServeLBAddr)
	}
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.KeyDelay = flagKeyDelay
	cfg.Logger = logger
	cfg.Session = tui.SessionConfig{
		GameID: platformer.GameID,
		Title:  platformer.New().Title(),
		Tuning: tuning,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Either server failing stops the other
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})
	if flagServeLBAddr != "" {
		lb := leaderboard.NewServer(leaderboard.NewStore(), logger.WithPrefix("leaderboard"))
		g.Go(func() error {
			if err := lb.ListenAndServe(ctx, flagServeLBAddr); err != nil {
				return fmt.Errorf("leaderboard: %w", err)
			}
			return nil
		})
		fmt.Printf("Leaderboard service on %s\n", flagServeLBAddr)
	}
	return g.Wait()
}

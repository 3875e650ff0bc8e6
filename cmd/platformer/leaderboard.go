package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/leaderboard"
)

// requestTimeout bounds each leaderboard query from the CLI.
const requestTimeout = 5 * time.Second

var (
	flagLBAddr  string
	flagLBSort  string
	flagLBName  string
	flagLBTime  string
	flagLBScore int
	flagLBDate  string
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Run or query the shared leaderboard",
	Long: `The leaderboard is a small HTTP service that keeps finished runs in memory
while it runs. Games send their runs to it when started with --leaderboard.

Examples:
  platformer leaderboard serve --addr :3000
  platformer leaderboard list --sort time
  platformer leaderboard get 0
  platformer leaderboard update 0 --name ada
  platformer leaderboard delete 0`,
}

var leaderboardServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the leaderboard HTTP service",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboardServe,
}

var leaderboardListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all leaderboard entries",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboardList,
}

var leaderboardGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one leaderboard entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeaderboardGet,
}

var leaderboardUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a leaderboard entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeaderboardUpdate,
}

var leaderboardDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a leaderboard entry",
	Long: `Remove a leaderboard entry. Entries are addressed by position, so the
ids of later entries shift down by one.`,
	Args: cobra.ExactArgs(1),
	RunE: runLeaderboardDelete,
}

func init() {
	leaderboardServeCmd.Flags().StringVar(&flagLBAddr, "addr", leaderboard.DefaultAddress, "Listen address (host:port)")
	leaderboardListCmd.Flags().StringVar(&flagLBSort, "sort", "", `Sort order: "" (insertion) or "time"`)
	leaderboardUpdateCmd.Flags().StringVar(&flagLBName, "name", "", "New player name")
	leaderboardUpdateCmd.Flags().StringVar(&flagLBTime, "time", "", "New survival time in seconds")
	leaderboardUpdateCmd.Flags().IntVar(&flagLBScore, "score", 0, "New score")
	leaderboardUpdateCmd.Flags().StringVar(&flagLBDate, "date", "", "New date (YYYY-MM-DD HH:MM:SS)")

	leaderboardCmd.AddCommand(leaderboardServeCmd)
	leaderboardCmd.AddCommand(leaderboardListCmd)
	leaderboardCmd.AddCommand(leaderboardGetCmd)
	leaderboardCmd.AddCommand(leaderboardUpdateCmd)
	leaderboardCmd.AddCommand(leaderboardDeleteCmd)
}

func runLeaderboardServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "leaderboard")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := leaderboard.NewServer(leaderboard.NewStore(), logger)
	return srv.ListenAndServe(ctx, flagLBAddr)
}

func leaderboardClient() *leaderboard.Client {
	url := flagLeaderboard
	if url == "" {
		url = leaderboard.DefaultURL
	}
	return leaderboard.NewClient(url)
}

func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid id %q: want a non-negative number", arg)
	}
	return i, nil
}

func runLeaderboardList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	client := leaderboardClient()
	var entries []leaderboard.Entry
	var err error
	switch flagLBSort {
	case "":
		entries, err = client.List(ctx)
	case "time":
		entries, err = client.Ranked(ctx)
	default:
		return fmt.Errorf("unknown sort %q (want time)", flagLBSort)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("The leaderboard is empty.")
		return nil
	}

	label := "ID"
	if flagLBSort == "time" {
		label = "Rank"
	}
	fmt.Printf("  %-4s  %-16s  %-8s  %-7s  %s\n", label, "Name", "Time", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-7s  %s\n", "----", "----", "----", "-----", "----")
	for i, e := range entries {
		n := i
		if flagLBSort == "time" {
			n = i + 1
		}
		fmt.Printf("  %-4d  %-16s  %-8s  %-7d  %s\n", n, e.Name, e.Time+"s", e.Score, e.Date)
	}
	return nil
}

func printEntry(index int, e leaderboard.Entry) {
	fmt.Printf("ID:    %d\nName:  %s\nTime:  %ss\nScore: %d\nDate:  %s\n", index, e.Name, e.Time, e.Score, e.Date)
}

func runLeaderboardGet(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	e, err := leaderboardClient().Get(ctx, index)
	if errors.Is(err, leaderboard.ErrNotFound) {
		return fmt.Errorf("no entry with id %d", index)
	}
	if err != nil {
		return err
	}
	printEntry(index, e)
	return nil
}

func runLeaderboardUpdate(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	var p leaderboard.Patch
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = &flagLBName
	}
	if flags.Changed("time") {
		p.Time = &flagLBTime
	}
	if flags.Changed("score") {
		p.Score = &flagLBScore
	}
	if flags.Changed("date") {
		p.Date = &flagLBDate
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	e, err := leaderboardClient().Update(ctx, index, p)
	if errors.Is(err, leaderboard.ErrNotFound) {
		return fmt.Errorf("no entry with id %d", index)
	}
	if err != nil {
		return err
	}
	printEntry(index, e)
	return nil
}

func runLeaderboardDelete(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	err = leaderboardClient().Delete(ctx, index)
	if errors.Is(err, leaderboard.ErrNotFound) {
		return fmt.Errorf("no entry with id %d", index)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Entry %d deleted.\n", index)
	return nil
}

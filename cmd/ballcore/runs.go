package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ballcore/internal/core"
	"github.com/vovakirdan/ballcore/internal/platform/tui"
	"github.com/vovakirdan/ballcore/internal/sim"
	"github.com/vovakirdan/ballcore/internal/storage"
)

var (
	flagRunsLimit   int
	flagEventsLimit int
	flagEventKind   string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored runs",
	Long: `Display the most recent runs saved by 'ballcore sim --save' or the viewer.
Run IDs may be abbreviated to any unique prefix.

Examples:
  ballcore runs
  ballcore runs --limit 50
  ballcore runs show 3f2a
  ballcore runs delete 3f2a
  ballcore runs stats
  ballcore runs browse`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run and its events",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run and its events",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-scenario totals",
	Args:  cobra.NoArgs,
	RunE:  runRunsStats,
}

var runsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse runs in an interactive table",
	Args:  cobra.NoArgs,
	RunE:  runRunsBrowse,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to list")
	runsShowCmd.Flags().IntVar(&flagEventsLimit, "events", 50, "Number of events to print (0 = all)")
	runsShowCmd.Flags().StringVar(&flagEventKind, "kind", "", "Only print events of this kind: ball, paddle, wall, cell, serve")

	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	runsCmd.AddCommand(runsStatsCmd)
	runsCmd.AddCommand(runsBrowseCmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'ballcore sim <scenario> --save' to record one.")
		return nil
	}

	fmt.Printf("  %-8s  %-12s  %-20s  %-6s  %-9s  %-5s  %-5s  %s\n",
		"Run", "Scenario", "Seed", "Ticks", "Mode", "Hits", "Coll", "Date")
	fmt.Printf("  %-8s  %-12s  %-20s  %-6s  %-9s  %-5s  %-5s  %s\n",
		"---", "--------", "----", "-----", "----", "----", "----", "----")

	for _, r := range runs {
		fmt.Printf("  %-8s  %-12s  %-20d  %-6d  %-9s  %-5d  %-5d  %s\n",
			shortID(r.RunID), r.Scenario, r.Seed, r.Ticks, r.Mode,
			r.PaddleHits, r.BallCollisions, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runRunsShow(_ *cobra.Command, args []string) error {
	if flagEventKind != "" {
		if _, ok := sim.ParseEventKind(flagEventKind); !ok {
			return fmt.Errorf("unknown event kind %q", flagEventKind)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.ResolveRunID(args[0])
	if err != nil {
		return err
	}

	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return storage.ErrRunNotFound
	}

	events, err := store.RunEvents(runID)
	if err != nil {
		return err
	}
	if flagEventKind != "" {
		filtered := events[:0]
		for _, e := range events {
			if e.Kind == flagEventKind {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	fmt.Printf("Run        %s\n", run.RunID)
	fmt.Printf("Scenario   %s\n", run.Scenario)
	fmt.Printf("Seed       %d\n", run.Seed)
	fmt.Printf("Ticks      %d\n", run.Ticks)
	fmt.Printf("Mode       %s\n", run.Mode)
	fmt.Printf("Level      %d\n", run.SpeedLevel)
	fmt.Printf("Collisions %d\n", run.BallCollisions)
	fmt.Printf("Paddle     %d\n", run.PaddleHits)
	fmt.Printf("Hash       %016x\n", run.FinalHash)
	fmt.Printf("Date       %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println()

	if len(events) == 0 {
		fmt.Println("No events recorded.")
		return nil
	}

	shown := events
	if flagEventsLimit > 0 && len(shown) > flagEventsLimit {
		shown = shown[:flagEventsLimit]
	}

	fmt.Printf("  %-6s  %-6s  %-3s  %-3s  %-8s  %s\n", "Tick", "Kind", "A", "B", "T", "Cell")
	fmt.Printf("  %-6s  %-6s  %-3s  %-3s  %-8s  %s\n", "----", "----", "-", "-", "-", "----")
	for _, e := range shown {
		fmt.Printf("  %-6d  %-6s  %-3d  %-3d  %-8.4f  %d,%d\n", e.Tick, e.Kind, e.A, e.B, e.T, e.Row, e.Col)
	}
	if len(shown) < len(events) {
		fmt.Printf("\n%d more events (use --events 0 to show all)\n", len(events)-len(shown))
	}
	return nil
}

func runRunsDelete(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.ResolveRunID(args[0])
	if err != nil {
		return err
	}

	deleted, err := store.DeleteRun(runID)
	if err != nil {
		return err
	}
	if !deleted {
		return storage.ErrRunNotFound
	}
	fmt.Printf("Deleted run %s\n", runID)
	return nil
}

func runRunsStats(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("  %-12s  %-5s  %-9s  %-10s  %-6s  %s\n", "Scenario", "Runs", "Ticks", "Collisions", "Hits", "Last run")
	fmt.Printf("  %-12s  %-5s  %-9s  %-10s  %-6s  %s\n", "--------", "----", "-----", "----------", "----", "--------")
	for _, name := range names {
		st := stats[name]
		fmt.Printf("  %-12s  %-5d  %-9d  %-10d  %-6d  %s\n",
			st.Scenario, st.Runs, st.Ticks, st.BallCollisions, st.PaddleHits, st.LastRun.Format("2006-01-02 15:04"))
	}
	return nil
}

func runRunsBrowse(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	return tui.RunRuns(store, rt.ScreenW, rt.ScreenH)
}

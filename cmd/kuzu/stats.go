package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kuzu-maze/internal/games/kuzu"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your streak and history",
	Long: `Display your daily streak, totals, attempts histogram and recent wins.

Examples:
  kuzu stats
  kuzu stats --player ABC`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg, true)
	defer store.Close()

	records := kuzu.NewRecords(store, newLogger("kuzu"))
	st := records.Stats()

	fmt.Println("Kuzu's Maze - Your Stats")
	fmt.Println()
	fmt.Printf("  Played:         %d\n", st.Played)
	fmt.Printf("  Won:            %d\n", st.Wins)
	fmt.Printf("  Total attempts: %d\n", st.TotalAttempts)
	if s := records.Streak(); s != nil {
		fmt.Printf("  Streak:         %d (best %d, last %s)\n", s.Current, s.Best, s.LastCompleted)
	} else {
		fmt.Println("  Streak:         0")
	}
	if d := records.Daily(); d != nil {
		state := "in progress"
		if d.Completed {
			state = "completed"
		}
		fmt.Printf("  Daily %s: %s, attempt %d\n", d.Date, state, d.Attempts)
	}

	fmt.Println()
	fmt.Println("Ratings")
	for stars := len(st.Stars) - 1; stars >= 1; stars-- {
		fmt.Printf("  %s  %d\n", kuzu.Stars(stars), st.Stars[stars])
	}

	fmt.Println()
	fmt.Println("Attempts to win")
	for _, b := range records.Histogram().Buckets() {
		fmt.Printf("  %5s  %-20s %d\n", b.Label, strings.Repeat("#", min(b.Count, 20)), b.Count)
	}

	if last := records.LastResult(); last != nil {
		fmt.Println()
		fmt.Printf("Last win: %s (%s)\n", last.Date, last.Mode)
		fmt.Printf("  Attempts %d, tiles %d, score %d %s\n",
			last.Attempts, last.Tiles, last.Breakdown.Total, kuzu.Stars(last.Breakdown.Stars))
		if len(last.Powers) > 0 {
			fmt.Printf("  Powers: %s\n", strings.Join(last.Powers, ", "))
		}
	}

	ps, err := store.Stats(cfg.Player)
	if err != nil {
		fail("reading history: %v", err)
	}
	if ps.Wins == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("History for %s: %d wins, best score %d, %.1f attempts on average\n",
		ps.Player, ps.Wins, ps.BestScore, ps.AvgAttempts)

	recent, err := store.RecentResults(cfg.Player, 5)
	if err != nil {
		fail("reading history: %v", err)
	}
	for _, r := range recent {
		fmt.Printf("  %-10s  %-8s  %2d tries  %3d pts  %s\n",
			r.Board, r.Mode, r.Attempts, r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

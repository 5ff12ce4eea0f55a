package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kuzu-maze/internal/games/kuzu"
)

var flagPracticeBoard bool

var scoresCmd = &cobra.Command{
	Use:   "scores [date]",
	Short: "Show the leaderboard for a day",
	Long: `Display the top scores for a daily puzzle. Fewer attempts rank
first; ties go to the higher score.

Examples:
  kuzu scores
  kuzu scores 2025-01-01
  kuzu scores --practice`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPracticeBoard, "practice", false, "Show the practice leaderboard")
}

func runScores(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	board := kuzu.PracticeBoardKey
	if !flagPracticeBoard {
		board = dateArg(args)
	}

	store := openStore(cfg, true)
	defer store.Close()

	scores, err := store.TopScores(board, cfg.Scoring.LeaderboardSize)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("Leaderboard - %s\n", board)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No wins recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-3s  %-5s  %-5s  %s\n", "Rank", "Who", "Tries", "Score", "Date")
	fmt.Printf("  %-4s  %-3s  %-5s  %-5s  %s\n", "----", "---", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-3s  %-5d  %-5d  %s\n",
			i+1, e.Initials, e.Attempts, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagMatches     bool
	flagLimit       int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display the top single-player scores, for one difficulty or all of
them, or the most recent matches with --matches.

Examples:
  pong scores
  pong scores hard
  pong scores --matches --limit 20
  pong scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagMatches, "matches", false, "Show the match history instead")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the scoreboard in the terminal UI")
}

func runScores(_ *cobra.Command, args []string) error {
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := terminalSize()
		return tui.RunScoreboard(store, cfg.LevelNames(), width, height)
	}

	if flagMatches {
		return printMatches(store)
	}

	level := ""
	if len(args) == 1 {
		d, err := parseDifficulty(cfg, args[0])
		if err != nil {
			return err
		}
		level = cfg.Difficulties[d].Name
	}
	return printScores(store, level)
}

func printScores(store *storage.Store, level string) error {
	scores, err := store.TopScores(level, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	title := "all difficulties"
	if level != "" {
		title = level
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pong play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-8s  %s\n", i+1, entry.Score, entry.Difficulty, dateStr)
	}

	fmt.Println()
	if high, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
	return nil
}

func printMatches(store *storage.Store) error {
	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving matches: %w", err)
	}

	fmt.Println("Recent Matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches played yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-13s  %-8s  %-9s  %-6s  %-5s  %s\n", "Date", "Mode", "Level", "Outcome", "Score", "Lives", "Time")
	for _, m := range matches {
		fmt.Printf("  %-16s  %-13s  %-8s  %-9s  %-6d  %-5s  %ds\n",
			m.CreatedAt.Format("2006-01-02 15:04"), m.Mode, m.Difficulty, m.Outcome, m.Score,
			fmt.Sprintf("%d/%d", m.LivesP1, m.LivesP2), m.Duration)
	}

	stats, err := store.MatchStats()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("%d matches, %d wins, best %d, average %.1f\n", stats.Matches, stats.Wins, stats.HighScore, stats.AvgScore)
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresMode  string
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best games with their level, lines and tetrises.

Examples:
  blockfall scores
  blockfall scores --mode bot --limit 20
  blockfall scores --tui
  blockfall scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only show human or bot games")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores")
}

func runScores(_ *cobra.Command, _ []string) {
	switch flagScoresMode {
	case "", storage.ModeHuman, storage.ModeBot:
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (use human or bot)\n", flagScoresMode)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Scores cleared.")
		return
	}

	if flagScoresTUI {
		width, height := terminalSize()
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	scores, err := store.TopScores(flagScoresMode, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blockfall play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-10s  %-5s  %-6s  %-7s  %s\n", "Rank", "Name", "Score", "Level", "Lines", "Tetris", "Date")
	fmt.Printf("  %-4s  %-16s  %-10s  %-5s  %-6s  %-7s  %s\n", "----", "----", "-----", "-----", "-----", "------", "----")

	for i, e := range scores {
		name := e.Name
		if e.Mode == storage.ModeBot {
			name += " (bot)"
		}
		fmt.Printf("  %-4d  %-16s  %-10d  %-5d  %-6d  %-7d  %s\n",
			i+1, name, e.Score, e.Level, e.Lines, e.Tetrises, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(flagScoresMode)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Average: %.0f  Games: %d  Lines: %d  Tetrises: %d\n",
			stats.HighScore, stats.AvgScore, stats.GamesCount, stats.TotalLines, stats.TotalTetrises)
	}
}

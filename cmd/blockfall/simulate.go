package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/blockfall/internal/bot"
	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/game"
	"github.com/vovakirdan/blockfall/internal/storage"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

var (
	flagSimPieces    int
	flagSimGames     int
	flagSimLookahead int
	flagSimRecord    bool
	flagSimSave      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the bot without a screen",
	Long: `Let the bot place pieces on a bare grid, without timers or rendering,
and report lines, tetrises and score per game. Use it to compare weight sets
from the settings file.

Games run concurrently; game i uses seed+i for both the piece bag and the
tie-break coin, so a fixed --seed reproduces the whole run.

Examples:
  blockfall simulate
  blockfall simulate --pieces 2000 --games 8 --seed 1
  blockfall simulate --lookahead 0
  blockfall simulate --record --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimPieces, "pieces", 500, "Pieces per game")
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 1, "Number of games")
	simulateCmd.Flags().IntVar(&flagSimLookahead, "lookahead", -1, "Look-ahead pieces (-1 = from settings)")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Store every decision in the database")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save each game as a bot score")
}

type simRun struct {
	seed  int64
	runID string
	res   bot.SimResult
	took  time.Duration
}

func runSimulate(cmd *cobra.Command, _ []string) {
	cfg := loadSettings()

	logger, closeLog := newLogger(os.Stderr)
	defer closeLog()

	lookahead := cfg.Bot.Lookahead
	if flagSimLookahead >= 0 {
		lookahead = flagSimLookahead
	}
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if flagSimGames < 1 || flagSimPieces < 1 {
		fmt.Fprintln(os.Stderr, "Error: --games and --pieces must be positive")
		os.Exit(1)
	}

	var store *storage.Store
	if flagSimRecord || flagSimSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	runs := make([]simRun, flagSimGames)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range runs {
		runs[i] = simRun{seed: seed + int64(i), runID: storage.NewRunID()}
		g.Go(func() error {
			return simulateOne(ctx, &runs[i], cfg.Bot, lookahead, store)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagSimSave && store != nil {
		for _, r := range runs {
			_, err := store.SaveScore(storage.ScoreEntry{
				RunID:    r.runID,
				Name:     "bot",
				Mode:     storage.ModeBot,
				Score:    r.res.Score,
				Level:    game.LevelFor(1, r.res.Lines),
				Tetrises: r.res.Tetrises,
				Lines:    r.res.Lines,
			})
			if err != nil {
				logger.Warn("could not save score", "run", r.runID, "err", err)
			}
		}
	}

	printSimulation(runs, lookahead)
}

func simulateOne(ctx context.Context, r *simRun, botCfg config.BotConfig, lookahead int, store *storage.Store) error {
	var rec bot.Recorder
	if flagSimRecord && store != nil {
		rec = store.Recorder(r.runID)
	}

	start := time.Now()
	res, err := bot.Simulate(ctx,
		bot.SearcherFromConfig(botCfg, r.seed),
		tetris.NewSeededBag(r.seed),
		lookahead, flagSimPieces, rec,
	)
	if err != nil {
		return fmt.Errorf("game with seed %d: %w", r.seed, err)
	}
	r.res = res
	r.took = time.Since(start)
	return nil
}

func printSimulation(runs []simRun, lookahead int) {
	fmt.Printf("Simulation - %d game(s), %d pieces each, look-ahead %d\n", len(runs), flagSimPieces, lookahead)
	fmt.Println()

	fmt.Printf("  %-20s  %-7s  %-7s  %-8s  %-10s  %-8s  %s\n", "Seed", "Pieces", "Lines", "Tetrises", "Score", "Time", "End")
	fmt.Printf("  %-20s  %-7s  %-7s  %-8s  %-10s  %-8s  %s\n", "----", "------", "-----", "--------", "-----", "----", "---")

	var lines, tetrises, score, toppedOut int
	for _, r := range runs {
		end := "limit"
		if r.res.ToppedOut {
			end = "topped out"
			toppedOut++
		}
		fmt.Printf("  %-20d  %-7d  %-7d  %-8d  %-10d  %-8s  %s\n",
			r.seed, r.res.Pieces, r.res.Lines, r.res.Tetrises, r.res.Score,
			r.took.Round(time.Millisecond), end)
		lines += r.res.Lines
		tetrises += r.res.Tetrises
		score += r.res.Score
	}

	n := float64(len(runs))
	fmt.Println()
	fmt.Printf("Average: %.1f lines, %.1f tetrises, %.0f points; %d topped out\n",
		float64(lines)/n, float64(tetrises)/n, float64(score)/n, toppedOut)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/game"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
)

var (
	flagDifficulty string
	flagBot        bool
	flagRecord     bool
	flagName       string
	flagScoring    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in the terminal.

Controls:
  Left/Right, A/D   - Move
  Up/X              - Rotate clockwise
  Z                 - Rotate counter-clockwise
  Down/S            - Soft drop (1 point per row)
  Space             - Hard drop (2 points per row)
  C                 - Hold
  P                 - Pause
  R                 - Restart (after game over)
  ?                 - Full help
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at level 1
  normal - Start at level 5
  hard   - Start at level 10
  fixed  - Stay at the configured start level

Examples:
  blockfall play
  blockfall play --difficulty hard
  blockfall play --bot --record
  blockfall play --scoring guideline --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagBot, "bot", false, "Let the bot play")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Store every bot decision in the database")
	playCmd.Flags().StringVar(&flagName, "name", "", "Name saved with the score (default: $USER)")
	playCmd.Flags().StringVar(&flagScoring, "scoring", "", "Line scoring: cumulative or guideline")
}

// applyPlayFlags applies the play-only overrides to cfg.
func applyPlayFlags(cfg *config.Config) {
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config.ApplyPreset(cfg, preset)
	}
	if flagScoring != "" {
		if _, err := game.ParseScoringMode(flagScoring); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Game.Scoring = flagScoring
	}
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg := loadSettings()
	applyPlayFlags(&cfg)

	if flagRecord && !flagBot {
		fmt.Fprintln(os.Stderr, "Warning: --record only applies with --bot")
	}

	logger, closeLog := newLogger(io.Discard)
	defer closeLog()

	store := openStore()
	width, height := terminalSize()

	runErr := tui.Run(tui.PlayOptions{
		Context: cmd.Context(),
		Config:  cfg,
		Store:   store,
		Logger:  logger,
		Screen:  core.RuntimeConfig{ScreenW: width, ScreenH: height},
		Player:  playerName(flagName),
		Bot:     flagBot,
		Record:  flagRecord,
		Bell:    os.Stdout,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
)

var flagMenuName string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start blockfall with an interactive menu",
	Long: `Start blockfall in interactive menu mode.

Pick Play or Watch bot, then a difficulty. After a game you return to the
menu. Tab opens the scoreboard.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scores
  Esc/B        - Back (paused or after game over)
  Q            - Quit

Examples:
  blockfall menu
  blockfall menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuName, "name", "", "Name saved with scores (default: $USER)")
}

func runMenu(cmd *cobra.Command, _ []string) {
	cfg := loadSettings()

	logger, closeLog := newLogger(io.Discard)
	defer closeLog()

	store := openStore()
	width, height := terminalSize()

	runErr := tui.RunSession(tui.PlayOptions{
		Context: cmd.Context(),
		Config:  cfg,
		Store:   store,
		Logger:  logger,
		Screen:  core.RuntimeConfig{ScreenW: width, ScreenH: height},
		Player:  playerName(flagMenuName),
		Bell:    os.Stdout,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// blockfall is a falling-block puzzle game for the terminal with a built-in
// look-ahead bot.
//
// Usage:
//
//	blockfall play              - Play a game
//	blockfall play --bot        - Watch the bot play
//	blockfall menu              - Start menu with difficulty picker and scores
//	blockfall simulate          - Run the bot headless and report results
//	blockfall scores            - Show high scores
//	blockfall serve             - Start SSH server for remote play
//	blockfall config            - Show or write the settings file
//
// Global flags:
//
//	--config <path>     - Settings file (default search: ~/.blockfall/configs, ./configs)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.blockfall/scores.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file (interactive commands log nowhere otherwise)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle with a look-ahead bot",
	Long: `Blockfall drops seven kinds of four-cell pieces onto a 10x20 playfield.
Complete rows to clear them; the game ends when a new piece cannot spawn.

Available commands:
  play      - Play a game (or watch the bot with --bot)
  menu      - Interactive menu with difficulty picker and scoreboard
  simulate  - Run the bot without a screen and report lines cleared
  scores    - View high scores
  serve     - Start SSH server for remote play
  config    - Show or write the settings file

Examples:
  blockfall play
  blockfall play --bot --record
  blockfall simulate --pieces 1000 --games 4
  blockfall serve --ssh :2222
  blockfall scores --tui`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from settings, else random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings loads the settings file and applies the global overrides.
func loadSettings() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}
	return cfg
}

// newLogger builds the process logger. Interactive commands pass
// io.Discard as fallback so logs never draw over the game; --log-file
// overrides the fallback. The returned closer releases the log file.
func newLogger(fallback io.Writer) (*log.Logger, func()) {
	w, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			w, closer = f, func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using info\n", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger, closer
}

// openStore opens the scores database. A failure is reported and the caller
// continues without storage.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// playerName returns the name scores are saved under.
func playerName(flag string) string {
	if flag != "" {
		return flag
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/bot"
	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/game"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// PlayOptions configures one game in the terminal.
type PlayOptions struct {
	// Context bounds every game started with these options. Nil means
	// context.Background.
	Context context.Context
	Config  config.Config
	Store  *storage.Store // Optional; scores are not saved without it
	Logger *log.Logger
	Screen core.RuntimeConfig
	Player string
	// Bot lets the bot steer; the keyboard only pauses and quits.
	Bot bool
	// Record stores every bot decision under the run ID.
	Record bool
	// Bell receives a BEL character on every four-line clear when sound is
	// enabled.
	Bell io.Writer
}

// changeMsg reports a game notification.
type changeMsg struct {
	run    *run
	reason string
}

// doneMsg reports that a game loop returned.
type doneMsg struct {
	run *run
}

// run is one game with its loop and optional bot goroutines.
type run struct {
	id      string
	game    *game.Game
	bot     *bot.Bot
	changes chan string
	cancel  context.CancelFunc
	saved   bool
}

func newRun(opts PlayOptions) *run {
	cfg := opts.Config
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	scoring, err := game.ParseScoringMode(cfg.Game.Scoring)
	if err != nil {
		opts.Logger.Warn("unknown scoring mode, using cumulative", "scoring", cfg.Game.Scoring)
		scoring = game.ScoringCumulative
	}

	r := &run{
		id:      storage.NewRunID(),
		changes: make(chan string, 64),
	}
	r.game = game.New(game.Options{
		Logger:     opts.Logger,
		Notify:     r.notify,
		Seed:       seed,
		StartLevel: cfg.Game.StartLevel,
		FixedLevel: cfg.Game.FixedLevel,
		NextCount:  cfg.Game.NextQueue,
		LockDelay:  cfg.LockDelay(),
		Scoring:    scoring,
	})

	if opts.Bot {
		var rec bot.Recorder
		if opts.Record && opts.Store != nil {
			rec = opts.Store.Recorder(r.id)
		}
		r.bot = bot.New(bot.Options{
			Searcher:  bot.SearcherFromConfig(cfg.Bot, seed),
			Lookahead: cfg.Bot.Lookahead,
			Quantum:   cfg.BotPoll(),
			Recorder:  rec,
			Logger:    opts.Logger,
		})
	}
	return r
}

// notify runs on the game loop and must not block. A full channel already
// holds a pending redraw.
func (r *run) notify(reason string) {
	select {
	case r.changes <- reason:
	default:
	}
}

func (r *run) start(parent context.Context, logger *log.Logger) {
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	go r.game.Run(ctx)
	if r.bot != nil {
		go func() {
			if err := r.bot.Run(ctx, r.game); err != nil {
				logger.Warn("bot stopped", "err", err)
			}
		}()
	}
}

func (r *run) stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

// waitForChange blocks until the game notifies or finishes.
func waitForChange(r *run) tea.Cmd {
	return func() tea.Msg {
		select {
		case reason := <-r.changes:
			return changeMsg{run: r, reason: reason}
		case <-r.game.Done():
			return doneMsg{run: r}
		}
	}
}

// Model is the Bubble Tea model for one game view.
type Model struct {
	opts       PlayOptions
	keys       KeyMap
	help       help.Model
	screen     *core.Screen
	run        *run
	snap       game.Snapshot
	highScore  int
	elapsed    time.Duration
	lastTick   time.Time
	quitting   bool
	backToMenu bool
}

// NewModel creates a game view. The game starts in Init.
func NewModel(opts PlayOptions) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Screen.ScreenW <= 0 || opts.Screen.ScreenH <= 0 {
		opts.Screen = core.DefaultConfig()
	}
	if opts.Screen.Seed != 0 && opts.Config.Game.Seed == 0 {
		opts.Config.Game.Seed = opts.Screen.Seed
	}

	high := 0
	if opts.Store != nil {
		if h, err := opts.Store.HighScore(); err == nil {
			high = h
		}
	}

	r := newRun(opts)
	return Model{
		opts:      opts,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		screen:    core.NewScreen(opts.Screen.ScreenW, opts.Screen.ScreenH-1),
		run:       r,
		snap:      r.game.Snapshot(),
		highScore: high,
	}
}

// Init starts the game loop and the view refresh.
func (m Model) Init() tea.Cmd {
	m.run.start(m.opts.Context, m.opts.Logger)
	return tea.Batch(waitForChange(m.run), tickCmd(hudInterval))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Screen.ScreenW = msg.Width
		m.opts.Screen.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case changeMsg:
		if msg.run != m.run {
			return m, nil
		}
		m.snap = m.run.game.Snapshot()
		if msg.reason == game.ReasonTetris {
			m.ring()
		}
		return m, waitForChange(m.run)

	case doneMsg:
		if msg.run != m.run {
			return m, nil
		}
		m.snap = m.run.game.Snapshot()
		m.saveScore()
		return m, nil

	case TickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() && m.running() {
			m.elapsed += now.Sub(m.lastTick)
		}
		m.lastTick = now
		m.snap = m.run.game.Snapshot()
		return m, tickCmd(hudInterval)
	}

	return m, nil
}

func (m Model) running() bool {
	return !m.snap.Paused && m.snap.Phase != game.PhaseGameOver
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	over := m.snap.Phase == game.PhaseGameOver

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.run.stop()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if over || m.snap.Paused {
			m.run.stop()
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if !over {
			m.run.game.TogglePause()
			m.snap = m.run.game.Snapshot()
		}
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if over {
			return m.restart()
		}
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if m.opts.Bot || over || m.snap.Paused {
		return m, nil
	}
	if ev, ok := m.keys.Event(msg); ok {
		m.run.game.Submit(ev)
	}
	return m, nil
}

// restart replaces the finished game with a fresh one.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.run.stop()
	if m.opts.Config.Game.Seed != 0 {
		// A fixed seed would deal the same game again.
		m.opts.Config.Game.Seed = time.Now().UnixNano()
	}
	m.run = newRun(m.opts)
	m.run.start(m.opts.Context, m.opts.Logger)
	m.snap = m.run.game.Snapshot()
	m.elapsed = 0
	return m, waitForChange(m.run)
}

// saveScore records the finished game once.
func (m *Model) saveScore() {
	if m.run.saved || m.snap.Phase != game.PhaseGameOver {
		return
	}
	m.run.saved = true
	m.highScore = max(m.highScore, m.snap.Score)

	if m.opts.Store == nil || m.snap.Score <= 0 {
		return
	}
	mode := storage.ModeHuman
	if m.opts.Bot {
		mode = storage.ModeBot
	}
	_, err := m.opts.Store.SaveScore(storage.ScoreEntry{
		RunID:    m.run.id,
		Name:     m.opts.Player,
		Mode:     mode,
		Score:    m.snap.Score,
		Level:    m.snap.Level,
		Tetrises: m.snap.Tetrises,
		Lines:    m.snap.Lines,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save score", "err", err)
	}
}

// ring sounds the terminal bell.
func (m Model) ring() {
	if !m.opts.Config.Sound.Enabled || m.opts.Bell == nil {
		return
	}
	//nolint:errcheck // Best-effort bell
	io.WriteString(m.opts.Bell, "\a")
}

// saveScreenshot saves the current board to a text file.
func (m *Model) saveScreenshot() {
	DrawGame(m.screen, m.snap, m.hud())

	dir := filepath.Join(os.Getenv("HOME"), ".blockfall", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("blockfall_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m Model) hud() HUD {
	return HUD{
		Player:    m.opts.Player,
		Bot:       m.opts.Bot,
		HighScore: m.highScore,
		Elapsed:   m.elapsed,
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawGame(m.screen, m.snap, m.hud())
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Snapshot returns the last state the view drew.
func (m Model) Snapshot() game.Snapshot {
	return m.snap
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Stop cancels the running game and bot.
func (m Model) Stop() {
	m.run.stop()
}

// Run plays one game in the terminal and returns when the player quits.
func Run(opts PlayOptions) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.Stop()
	} else {
		model.Stop()
	}
	return err
}

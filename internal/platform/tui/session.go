package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateDifficulty
	stateGame
	stateScores
)

// SessionModel manages the full session flow: menu -> difficulty -> game ->
// menu, with the scoreboard reachable from the menu. It backs both the
// local menu command and SSH sessions.
type SessionModel struct {
	opts       PlayOptions
	preset     config.DifficultyPreset
	width      int
	height     int
	state      sessionState
	watch      bool
	menu       MenuModel
	difficulty DifficultyModel
	game       *Model
	scores     ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts PlayOptions) SessionModel {
	if opts.Screen.ScreenW <= 0 || opts.Screen.ScreenH <= 0 {
		w, h := opts.Screen.ScreenW, opts.Screen.ScreenH
		opts.Screen.ScreenW, opts.Screen.ScreenH = max(w, 80), max(h, 24)
	}
	return SessionModel{
		opts:   opts,
		preset: presetOf(opts.Config),
		width:  opts.Screen.ScreenW,
		height: opts.Screen.ScreenH,
		menu:   NewMenuModel(opts.Store, opts.Screen.ScreenW, opts.Screen.ScreenH),
	}
}

// presetOf guesses which preset a loaded config corresponds to.
func presetOf(cfg config.Config) config.DifficultyPreset {
	if cfg.Game.FixedLevel {
		return config.DifficultyFixed
	}
	for _, p := range config.Presets {
		if !config.IsFixedPreset(p) && config.StartLevelForPreset(p) == cfg.Game.StartLevel {
			return p
		}
	}
	return config.DifficultyNormal
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.state {
	case stateDifficulty:
		return m.updateDifficulty(msg)
	case stateGame:
		return m.updateGame(msg)
	case stateScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.state = stateMenu
	m.game = nil
	m.menu = NewMenuModel(m.opts.Store, m.width, m.height)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ChoicePlay, ChoiceWatch:
		m.watch = m.menu.Selected() == ChoiceWatch
		m.difficulty = NewDifficultyModel(m.preset, m.width, m.height)
		m.state = stateDifficulty
		return m, m.difficulty.Init()

	case ChoiceScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.width, m.height)
		m.state = stateScores
		return m, m.scores.Init()
	}

	return m, cmd
}

// updateDifficulty handles updates when choosing a difficulty.
func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.difficulty.Update(msg)
	if dm, ok := newModel.(DifficultyModel); ok {
		m.difficulty = dm
	}

	if m.difficulty.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.difficulty.WantsBack() {
		return m.toMenu()
	}

	if sel := m.difficulty.Selected(); sel != nil {
		m.preset = sel.Preset

		opts := m.opts
		sel.Apply(&opts.Config)
		opts.Bot = m.watch
		opts.Screen.ScreenW = m.width
		opts.Screen.ScreenH = m.height

		gm := NewModel(opts)
		m.game = &gm
		m.state = stateGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScores handles updates when showing the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateDifficulty:
		return m.difficulty.View()
	case stateGame:
		return m.game.View()
	case stateScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Stop cancels a game left running when the program exits.
func (m SessionModel) Stop() {
	if m.game != nil {
		m.game.Stop()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(opts PlayOptions) error {
	model := NewSessionModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(SessionModel); ok {
		m.Stop()
	}
	return err
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/game"
)

// DifficultySelection holds the choice made in the difficulty menu.
type DifficultySelection struct {
	Preset config.DifficultyPreset
	Level  int // Start level for the fixed preset
}

// Apply writes the selection into cfg.
func (s DifficultySelection) Apply(cfg *config.Config) {
	config.ApplyPreset(cfg, s.Preset)
	if config.IsFixedPreset(s.Preset) && s.Level > 0 {
		cfg.Game.StartLevel = s.Level
	}
}

// DifficultyModel lets users choose a preset or a fixed level.
type DifficultyModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	selection     DifficultySelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewDifficultyModel creates a new difficulty selection model. The cursor
// starts on the given preset.
func NewDifficultyModel(current config.DifficultyPreset, width, height int) DifficultyModel {
	m := DifficultyModel{
		width:    width,
		height:   height,
		choosing: true,
	}
	for i, p := range config.Presets {
		if p == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handlePresetKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handlePresetKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(config.Presets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		preset := config.Presets[m.cursor]
		if config.IsFixedPreset(preset) {
			m.inLevelSelect = true
			return m, nil
		}
		m.choosing = false
		m.selection = DifficultySelection{Preset: preset, Level: config.StartLevelForPreset(preset)}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m DifficultyModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp, MenuActionLeft:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown, MenuActionRight:
		if m.levelCursor < game.MaxLevel-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = DifficultySelection{
			Preset: config.DifficultyFixed,
			Level:  m.levelCursor + 1, // 1-indexed
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the preset or level selection.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewPresetSelect()
}

func (m DifficultyModel) viewPresetSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("D I F F I C U L T Y", m.width))
	b.WriteString("\n\n")

	for i, p := range config.Presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		label := fmt.Sprintf("%-8s starts at level %d", p, config.StartLevelForPreset(p))
		if config.IsFixedPreset(p) {
			label = fmt.Sprintf("%-8s one level, no progression...", p)
		}
		b.WriteString(centerText(cursor+label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m DifficultyModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i := 0; i < game.MaxLevel; i++ {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%sLevel %2d  (%v per row)", cursor, i+1, game.FallDuration(i+1))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m DifficultyModel) Selected() *DifficultySelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

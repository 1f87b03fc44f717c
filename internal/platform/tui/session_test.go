package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok)
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(testOptions(t))
	t.Cleanup(func() { m.Stop() })
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	assert.Contains(t, m.View(), "B L O C K F A L L")

	m, _ = updateSession(t, m, enter)
	require.Equal(t, stateDifficulty, m.state)
	assert.False(t, m.watch)

	// Normal starts at level 5.
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := updateSession(t, m, enter)
	require.Equal(t, stateGame, m.state)
	require.NotNil(t, cmd)
	assert.Equal(t, 5, m.game.opts.Config.Game.StartLevel)
	assert.Equal(t, config.DifficultyNormal, m.preset)

	m, _ = updateSession(t, m, runeKey('p'))
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateMenu, m.state)
	assert.Nil(t, m.game)
}

func TestSessionWatchFixedLevel(t *testing.T) {
	m := NewSessionModel(testOptions(t))
	t.Cleanup(func() { m.Stop() })
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m, _ = updateSession(t, m, down)
	m, _ = updateSession(t, m, enter)
	require.Equal(t, stateDifficulty, m.state)
	assert.True(t, m.watch)

	// Fixed is the last preset and opens the level list.
	for range config.Presets {
		m, _ = updateSession(t, m, down)
	}
	m, _ = updateSession(t, m, enter)
	require.True(t, m.difficulty.inLevelSelect)
	m, _ = updateSession(t, m, down)
	m, _ = updateSession(t, m, down)
	m, _ = updateSession(t, m, enter)

	require.Equal(t, stateGame, m.state)
	assert.True(t, m.game.opts.Bot)
	assert.True(t, m.game.opts.Config.Game.FixedLevel)
	assert.Equal(t, 3, m.game.opts.Config.Game.StartLevel)

	m, cmd := updateSession(t, m, runeKey('q'))
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestSessionScoreboardWithoutStore(t *testing.T) {
	m := NewSessionModel(testOptions(t))

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, stateScores, m.state)
	assert.Contains(t, m.View(), "No scores recorded yet")

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "Players")

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateMenu, m.state)
}

func TestSessionDifficultyBack(t *testing.T) {
	m := NewSessionModel(testOptions(t))

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateMenu, m.state)
	assert.Equal(t, ChoiceNone, m.menu.Selected())
}

func TestPresetOf(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, config.DifficultyEasy, presetOf(cfg))

	cfg.Game.StartLevel = 10
	assert.Equal(t, config.DifficultyHard, presetOf(cfg))

	cfg.Game.StartLevel = 7
	assert.Equal(t, config.DifficultyNormal, presetOf(cfg))

	cfg.Game.FixedLevel = true
	assert.Equal(t, config.DifficultyFixed, presetOf(cfg))
}

func TestDifficultySelectionApply(t *testing.T) {
	cfg := config.Default()
	DifficultySelection{Preset: config.DifficultyHard, Level: 10}.Apply(&cfg)
	assert.Equal(t, 10, cfg.Game.StartLevel)
	assert.False(t, cfg.Game.FixedLevel)

	DifficultySelection{Preset: config.DifficultyFixed, Level: 12}.Apply(&cfg)
	assert.Equal(t, 12, cfg.Game.StartLevel)
	assert.True(t, cfg.Game.FixedLevel)
}

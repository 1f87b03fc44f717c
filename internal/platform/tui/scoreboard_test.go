package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/storage"
)

func TestScoreboardTabs(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.SaveScore(storage.ScoreEntry{Name: "ana", Score: 1500, Level: 3, Lines: 22})
	require.NoError(t, err)
	_, err = store.SaveScore(storage.ScoreEntry{Name: "cpu", Mode: storage.ModeBot, Score: 9000, Tetrises: 4})
	require.NoError(t, err)

	m := NewScoreboardModel(store, 120, 30)
	require.True(t, m.showSidebar)
	require.True(t, m.withDate)
	assert.Len(t, m.scores, 2)
	assert.Equal(t, 9000, m.scores[0].Score)
	view := m.View()
	assert.Contains(t, view, "cpu (bot)")
	assert.Contains(t, view, "2 games")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	require.Len(t, m.scores, 1)
	assert.Equal(t, "ana", m.scores[0].Name)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	require.Len(t, m.scores, 1)
	assert.Equal(t, storage.ModeBot, m.scores[0].Mode)

	// Wraps back to all games.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Len(t, m.scores, 2)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(ScoreboardModel)
	assert.False(t, m.showSidebar)
	assert.False(t, m.withDate)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	assert.True(t, m.IsGoingBack())
	assert.Empty(t, m.View())
}

package tui

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/game"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func testOptions(t *testing.T) PlayOptions {
	t.Helper()
	cfg := config.Default()
	cfg.Game.Seed = 7
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return PlayOptions{
		Context: ctx,
		Config:  cfg,
		Player:  "tester",
	}
}

func startModel(t *testing.T, opts PlayOptions) Model {
	t.Helper()
	m := NewModel(opts)
	m.Init()
	t.Cleanup(m.Stop)
	require.Eventually(t, func() bool {
		return m.run.game.Phase().Controllable()
	}, 2*time.Second, time.Millisecond)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func TestModelHardDropLocksPiece(t *testing.T) {
	m := startModel(t, testOptions(t))

	m = update(t, m, spaceKey)

	require.Eventually(t, func() bool {
		return m.run.game.Snapshot().Pieces >= 2
	}, 2*time.Second, time.Millisecond)
	snap := m.run.game.Snapshot()
	assert.Equal(t, 4, snap.Grid.FilledCells())
	assert.Positive(t, snap.Score)
}

func TestModelPauseToggle(t *testing.T) {
	m := startModel(t, testOptions(t))

	m = update(t, m, runeKey('p'))
	assert.True(t, m.snap.Paused)
	assert.Contains(t, m.View(), "PAUSED")

	// Moves are ignored while paused.
	before := m.run.game.Snapshot().Pieces
	m = update(t, m, spaceKey)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, m.run.game.Snapshot().Pieces)

	m = update(t, m, runeKey('p'))
	assert.False(t, m.snap.Paused)
}

func TestModelBackOnlyWhenPausedOrOver(t *testing.T) {
	m := startModel(t, testOptions(t))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.BackToMenu())

	m = update(t, m, runeKey('p'))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())

	select {
	case <-m.run.game.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("game should stop when leaving to the menu")
	}
}

func TestModelQuitStopsGame(t *testing.T) {
	m := startModel(t, testOptions(t))

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())

	select {
	case <-m.run.game.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("game should stop on quit")
	}
}

func TestModelSavesScoreOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	opts := testOptions(t)
	opts.Store = store
	m := startModel(t, opts)

	// Stacking in the middle never clears a line and tops out quickly.
	for i := 0; i < 60; i++ {
		m = update(t, m, spaceKey)
	}
	select {
	case <-m.run.game.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("game did not end")
	}

	m = update(t, m, doneMsg{run: m.run})
	assert.Equal(t, game.PhaseGameOver, m.snap.Phase)
	assert.Contains(t, m.View(), "GAME OVER")

	// A second notification must not save twice.
	m = update(t, m, doneMsg{run: m.run})

	scores, err := store.TopScores("", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "tester", scores[0].Name)
	assert.Equal(t, storage.ModeHuman, scores[0].Mode)
	assert.Equal(t, m.snap.Score, scores[0].Score)
	assert.Equal(t, m.run.id, scores[0].RunID)

	// Restart deals a fresh game.
	old := m.run
	m = update(t, m, runeKey('r'))
	assert.NotSame(t, old, m.run)
	assert.NotEqual(t, game.PhaseGameOver, m.snap.Phase)
}

func TestModelIgnoresStaleRuns(t *testing.T) {
	m := startModel(t, testOptions(t))
	stale := &run{}

	m = update(t, m, changeMsg{run: stale, reason: game.ReasonTetris})
	m = update(t, m, doneMsg{run: stale})
	assert.False(t, m.run.saved)
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestModelBellOnTetris(t *testing.T) {
	bell := &syncBuffer{}
	opts := testOptions(t)
	opts.Bell = bell
	m := startModel(t, opts)

	m = update(t, m, changeMsg{run: m.run, reason: game.ReasonTetris})
	assert.Equal(t, "\a", bell.String())

	m = update(t, m, changeMsg{run: m.run, reason: game.ReasonHardDrop})
	assert.Equal(t, "\a", bell.String())

	m.opts.Config.Sound.Enabled = false
	update(t, m, changeMsg{run: m.run, reason: game.ReasonTetris})
	assert.Equal(t, "\a", bell.String())
}

func TestModelBotSteers(t *testing.T) {
	opts := testOptions(t)
	opts.Bot = true
	opts.Config.Game.StartLevel = game.MaxLevel
	m := startModel(t, opts)

	// Keyboard moves are ignored; the bot places pieces on its own.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	require.Eventually(t, func() bool {
		return m.run.game.Snapshot().Pieces >= 4
	}, 5*time.Second, 5*time.Millisecond)
}

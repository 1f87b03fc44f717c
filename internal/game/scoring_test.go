package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineScore(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		level int
		mode  ScoringMode
		want  int
	}{
		{"no lines", 0, 1, ScoringCumulative, 0},
		{"single", 1, 1, ScoringCumulative, 100},
		{"double", 2, 1, ScoringCumulative, 400},
		{"triple", 3, 1, ScoringCumulative, 900},
		{"tetris cumulative", 4, 1, ScoringCumulative, 1700},
		{"tetris cumulative level 3", 4, 3, ScoringCumulative, 5100},
		{"single guideline", 1, 1, ScoringGuideline, 100},
		{"triple guideline", 3, 2, ScoringGuideline, 1000},
		{"tetris guideline", 4, 1, ScoringGuideline, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineScore(tt.lines, tt.level, tt.mode))
		})
	}
}

func TestDropScore(t *testing.T) {
	assert.Equal(t, 0, DropScore(0, 0))
	assert.Equal(t, 5, DropScore(5, 0))
	assert.Equal(t, 38, DropScore(0, 19))
	assert.Equal(t, 41, DropScore(3, 19))
}

func TestFallDuration(t *testing.T) {
	assert.Equal(t, time.Second, FallDuration(1))
	assert.Equal(t, 793*time.Millisecond, FallDuration(2))
	assert.Equal(t, 7*time.Millisecond, FallDuration(15))
	assert.Equal(t, 7*time.Millisecond, FallDuration(30), "levels past the table reuse the last entry")
	assert.Equal(t, time.Second, FallDuration(0))

	for level := 2; level <= MaxLevel; level++ {
		assert.Less(t, FallDuration(level), FallDuration(level-1), "level %d", level)
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 1, LevelFor(1, 0))
	assert.Equal(t, 1, LevelFor(1, 9))
	assert.Equal(t, 2, LevelFor(1, 10))
	assert.Equal(t, 7, LevelFor(5, 25))
	assert.Equal(t, MaxLevel, LevelFor(1, 1000))
}

func TestParseScoringMode(t *testing.T) {
	m, err := ParseScoringMode("")
	require.NoError(t, err)
	assert.Equal(t, ScoringCumulative, m)

	m, err = ParseScoringMode("guideline")
	require.NoError(t, err)
	assert.Equal(t, ScoringGuideline, m)

	_, err = ParseScoringMode("nes")
	assert.Error(t, err)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "falling", PhaseFalling.String())
	assert.Equal(t, "game over", PhaseGameOver.String())
	assert.Equal(t, "unknown", Phase(99).String())
	assert.True(t, PhaseLock.Controllable())
	assert.False(t, PhasePattern.Controllable())
}

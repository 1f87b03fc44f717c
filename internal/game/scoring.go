package game

import (
	"fmt"
	"time"
)

const (
	// MaxLevel is the highest level reachable by clearing lines.
	MaxLevel = 15
	// LinesPerLevel is the fixed goal for advancing one level.
	LinesPerLevel = 10
	// DefaultLockDelay is the lock-down timer duration.
	DefaultLockDelay = 500 * time.Millisecond

	softDropPoints = 1
	hardDropPoints = 2
)

// fallDurations is indexed by level-1.
var fallDurations = [MaxLevel]time.Duration{
	1000 * time.Millisecond,
	793 * time.Millisecond,
	618 * time.Millisecond,
	473 * time.Millisecond,
	355 * time.Millisecond,
	262 * time.Millisecond,
	190 * time.Millisecond,
	135 * time.Millisecond,
	94 * time.Millisecond,
	64 * time.Millisecond,
	43 * time.Millisecond,
	28 * time.Millisecond,
	18 * time.Millisecond,
	11 * time.Millisecond,
	7 * time.Millisecond,
}

// FallDuration returns how long a piece hangs on each row at the given level.
// Levels past the table use the last entry.
func FallDuration(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	if level > len(fallDurations) {
		level = len(fallDurations)
	}
	return fallDurations[level-1]
}

// ScoringMode selects how multi-line clears are rewarded.
type ScoringMode string

const (
	// ScoringCumulative awards the sum of every tier up to the lines cleared,
	// so a four-line clear is worth 100+300+500+800.
	ScoringCumulative ScoringMode = "cumulative"
	// ScoringGuideline awards only the tier matching the lines cleared.
	ScoringGuideline ScoringMode = "guideline"
)

// ParseScoringMode validates a scoring mode name. Empty means cumulative.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch ScoringMode(s) {
	case "", ScoringCumulative:
		return ScoringCumulative, nil
	case ScoringGuideline:
		return ScoringGuideline, nil
	default:
		return "", fmt.Errorf("game: unknown scoring mode %q", s)
	}
}

var lineScores = [5]int{0, 100, 300, 500, 800}

// LineScore returns the points for clearing n lines at level.
func LineScore(n, level int, mode ScoringMode) int {
	if n <= 0 {
		return 0
	}
	if n > 4 {
		n = 4
	}
	if mode == ScoringGuideline {
		return lineScores[n] * level
	}
	total := 0
	for i := 1; i <= n; i++ {
		total += lineScores[i]
	}
	return total * level
}

// DropScore returns the bonus for rows fallen by soft and hard drops.
func DropScore(softRows, hardRows int) int {
	return softRows*softDropPoints + hardRows*hardDropPoints
}

// LevelFor returns the level reached after clearing lines, starting from start.
func LevelFor(start, lines int) int {
	return min(start+lines/LinesPerLevel, MaxLevel)
}

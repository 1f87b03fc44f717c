package game

import "github.com/vovakirdan/blockfall/internal/tetris"

// Snapshot is a consistent copy of the state a view or the bot reads.
type Snapshot struct {
	Grid     tetris.Grid
	Next     []tetris.Shape
	Held     tetris.Shape
	HasHeld  bool
	CanHold  bool
	Phase    Phase
	Score    int
	Level    int
	Lines    int
	Tetrises int
	// Pieces counts spawned pieces and doubles as the sequence number of
	// the falling one.
	Pieces int
	Paused bool
}

// Result holds the final counters of a game.
type Result struct {
	Score    int
	Level    int
	Lines    int
	Tetrises int
	Pieces   int
}

// Snapshot returns a copy of the current state. It is safe to call from any
// goroutine while the game runs.
func (g *Game) Snapshot() Snapshot {
	paused := g.Paused()

	g.mu.RLock()
	defer g.mu.RUnlock()
	return Snapshot{
		Grid:     g.grid.Clone(),
		Next:     g.queue.Peek(),
		Held:     g.held,
		HasHeld:  g.hasHeld,
		CanHold:  g.canHold,
		Phase:    g.phase,
		Score:    g.score,
		Level:    g.level,
		Lines:    g.lines,
		Tetrises: g.tetrises,
		Pieces:   g.pieces,
		Paused:   paused,
	}
}

// Result returns the counters. After Done is closed they are final.
func (g *Game) Result() Result {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Result{
		Score:    g.score,
		Level:    g.level,
		Lines:    g.lines,
		Tetrises: g.tetrises,
		Pieces:   g.pieces,
	}
}

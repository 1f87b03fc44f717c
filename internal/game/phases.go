package game

import (
	"context"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// step runs one phase and returns the next. ok is false when ctx was
// cancelled mid-phase.
func (g *Game) step(ctx context.Context, p Phase) (next Phase, ok bool) {
	switch p {
	case PhaseNotStarted:
		return PhaseGeneration, true
	case PhaseGeneration:
		return g.generation(), true
	case PhaseFalling:
		return g.falling(ctx)
	case PhaseLock:
		return g.lockDown(ctx)
	case PhasePattern:
		g.update(func() { g.grid.MarkLinesToClear() })
		return PhaseIterate, true
	case PhaseIterate:
		return PhaseAnimate, true
	case PhaseAnimate:
		return PhaseEliminate, true
	case PhaseEliminate:
		g.eliminate()
		return PhaseCompletion, true
	case PhaseCompletion:
		g.completion()
		return PhaseGeneration, true
	default:
		return PhaseGameOver, true
	}
}

// generation spawns the next piece and lets it fall one row at once.
func (g *Game) generation() Phase {
	var blockedOut, landed bool
	g.update(func() {
		var shape tetris.Shape
		if g.hasPending {
			shape = g.pending
			g.hasPending = false
		} else {
			shape = g.queue.Next()
		}
		blockedOut = g.grid.Spawn(shape)
		if blockedOut {
			return
		}
		g.pieces++
		landed = g.grid.MoveDown()
	})
	switch {
	case blockedOut:
		return PhaseGameOver
	case landed:
		return PhaseLock
	default:
		return PhaseFalling
	}
}

// falling runs the fall timer and applies input until the timer expires or a
// hard drop happens, then tries to move the piece down one row.
func (g *Game) falling(ctx context.Context) (Phase, bool) {
	level := g.levelNow()
	g.fallTimer.Stop()
	g.fallTimer.SetDuration(FallDuration(level))
	g.fallTimer.Reset()
	g.fallTimer.Start()
	defer g.fallTimer.Stop()

	for !g.fallTimer.Expired() && !g.forceLock {
		ev, ok := g.dequeue(ctx)
		if !ok || !g.pausePoint(ctx) {
			return PhaseFalling, false
		}
		switch ev {
		case core.EventMoveLeft, core.EventMoveRight, core.EventRotateRight, core.EventRotateLeft:
			if g.shift(ev) {
				g.fallTimer.Restart()
			}
		case core.EventSoftDrop:
			var landed bool
			g.update(func() { landed = g.grid.MoveDown() })
			if landed {
				return PhaseLock, true
			}
			g.softRows++
			return PhaseFalling, true
		case core.EventHardDrop:
			g.hardDrop()
		case core.EventHold:
			if g.hold() {
				return PhaseGeneration, true
			}
		case core.EventNone:
			continue
		}
		g.notify(PhaseFalling.String())
	}

	if g.forceLock {
		return PhaseLock, true
	}
	var landed bool
	g.update(func() { landed = g.grid.MoveDown() })
	if landed {
		return PhaseLock, true
	}
	return PhaseFalling, true
}

// shift applies a sideways move or a turn and reports whether the piece moved.
func (g *Game) shift(ev core.Event) bool {
	var blocked bool
	g.update(func() {
		switch ev {
		case core.EventMoveLeft:
			blocked = g.grid.MoveSideways(-1)
		case core.EventMoveRight:
			blocked = g.grid.MoveSideways(1)
		case core.EventRotateRight:
			blocked = g.grid.Turn(1)
		case core.EventRotateLeft:
			blocked = g.grid.Turn(-1)
		}
	})
	return !blocked
}

// hardDrop animates the piece down one row at a time and forces a lock.
func (g *Game) hardDrop() {
	for {
		var landed bool
		g.update(func() { landed = g.grid.MoveDown() })
		if landed {
			break
		}
		g.hardRows++
		g.notify(ReasonHardDrop)
	}
	g.forceLock = true
}

// hold swaps the falling piece into the hold slot. It reports false when
// hold was already used since the last lock.
func (g *Game) hold() bool {
	swapped := false
	g.update(func() {
		if !g.canHold {
			return
		}
		p, ok := g.grid.Current()
		if !ok {
			return
		}
		g.grid.ClearCurrent()
		if g.hasHeld {
			g.pending = g.held
			g.hasPending = true
		}
		g.held = p.Shape
		g.hasHeld = true
		g.canHold = false
		swapped = true
	})
	return swapped
}

// lockDown runs the lock timer. Every successful move or turn restarts it;
// the piece merges once the timer expires while it is still grounded.
func (g *Game) lockDown(ctx context.Context) (Phase, bool) {
	if !g.forceLock {
		g.lockTimer.Stop()
		g.lockTimer.SetDuration(g.opts.LockDelay)
		g.lockTimer.Reset()
		g.lockTimer.Start()
		defer g.lockTimer.Stop()
	}

	for !g.forceLock {
		var canFall bool
		g.mu.RLock()
		canFall = g.grid.CanMoveDown()
		g.mu.RUnlock()
		if canFall {
			return PhaseFalling, true
		}
		if g.lockTimer.Expired() {
			break
		}

		ev, ok := g.dequeue(ctx)
		if !ok || !g.pausePoint(ctx) {
			return PhaseLock, false
		}
		switch ev {
		case core.EventMoveLeft, core.EventMoveRight, core.EventRotateRight, core.EventRotateLeft:
			if g.shift(ev) {
				g.lockTimer.Restart()
				g.notify(PhaseLock.String())
			}
		case core.EventHardDrop:
			g.hardDrop()
		}
	}

	g.forceLock = false
	g.update(func() {
		g.grid.Merge()
		g.canHold = true
	})
	return PhasePattern, true
}

// eliminate removes the marked rows and books the score.
func (g *Game) eliminate() {
	var cleared int
	g.update(func() {
		cleared = g.grid.ClearMarkedLines()
		g.score += LineScore(cleared, g.level, g.opts.Scoring) + DropScore(g.softRows, g.hardRows)
		g.lines += cleared
		if cleared == 4 {
			g.tetrises++
		}
	})
	g.softRows, g.hardRows = 0, 0
	if cleared > 0 {
		g.log.Debug("lines cleared", "count", cleared, "total", g.Result().Lines)
	}
	if cleared == 4 {
		g.notify(ReasonTetris)
	}
}

// completion recomputes the level from the line count.
func (g *Game) completion() {
	if g.opts.FixedLevel {
		return
	}
	g.update(func() {
		level := LevelFor(g.opts.StartLevel, g.lines)
		if level != g.level {
			g.log.Debug("level up", "level", level)
		}
		g.level = level
	})
}

func (g *Game) levelNow() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.level
}

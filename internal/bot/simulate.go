package bot

import (
	"context"

	"github.com/vovakirdan/blockfall/internal/game"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// SimResult summarizes a headless run.
type SimResult struct {
	Pieces   int
	Lines    int
	Tetrises int
	Score    int
	// ToppedOut is true when the run ended on a spawn collision rather than
	// on the piece limit.
	ToppedOut bool
}

// Simulate plays up to maxPieces on a bare grid without timers: every piece
// goes straight to the searched placement and is hard-dropped. Scoring uses
// the cumulative table with levels advancing from 1.
func Simulate(ctx context.Context, s *Searcher, src tetris.PieceSource, lookahead, maxPieces int, rec Recorder) (SimResult, error) {
	var (
		res  SimResult
		grid tetris.Grid
	)
	lookahead = max(lookahead, 0)
	queue := tetris.NewNextQueue(src, max(lookahead, 1))

	for res.Pieces < maxPieces {
		if grid.Spawn(queue.Next()) {
			res.ToppedOut = true
			break
		}
		res.Pieces++

		next := queue.Peek()[:lookahead]
		plan, err := s.Search(ctx, grid, next)
		if err != nil {
			return res, err
		}
		if rec != nil {
			if err := rec.Record(newDecision(grid, queue.Peek(), plan)); err != nil {
				return res, err
			}
		}

		for i := 0; i < plan.Rotation; i++ {
			grid.Turn(1)
		}
		dir := 1
		if plan.Offset < 0 {
			dir = -1
		}
		for i := 0; i < max(plan.Offset, -plan.Offset); i++ {
			grid.MoveSideways(dir)
		}
		rows := grid.Drop()
		grid.Merge()
		grid.MarkLinesToClear()
		cleared := grid.ClearMarkedLines()

		level := game.LevelFor(1, res.Lines)
		res.Score += game.LineScore(cleared, level, game.ScoringCumulative) + game.DropScore(0, rows)
		res.Lines += cleared
		if cleared == 4 {
			res.Tetrises++
		}
	}
	return res, nil
}

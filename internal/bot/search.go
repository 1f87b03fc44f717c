package bot

import (
	"context"
	"errors"
	"math"
	"runtime"

	"github.com/kamstrup/intmap"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Sentinel scores. Both sit below any heuristic value.
const (
	// ScoreCancelled marks a branch abandoned because the search was cancelled.
	ScoreCancelled = -math.MaxFloat64
	// ScoreGameOver marks a branch whose next piece cannot spawn.
	ScoreGameOver = -math.MaxFloat64 / 2
)

// ErrNoPlacement is returned when the grid has no falling piece to place.
var ErrNoPlacement = errors.New("bot: no placement")

// Plan is a chosen placement for the falling piece: Rotation clockwise
// quarter turns, then Offset columns (negative is left), then a hard drop.
type Plan struct {
	Rotation int
	Offset   int
	Score    float64
}

// Commands translates the plan into control events.
func (p Plan) Commands() []core.Event {
	cmds := make([]core.Event, 0, p.Rotation+core.Abs(p.Offset)+1)
	for i := 0; i < p.Rotation; i++ {
		cmds = append(cmds, core.EventRotateRight)
	}
	move := core.EventMoveRight
	if p.Offset < 0 {
		move = core.EventMoveLeft
	}
	for i := 0; i < core.Abs(p.Offset); i++ {
		cmds = append(cmds, move)
	}
	return append(cmds, core.EventHardDrop)
}

// Searcher enumerates every reachable placement of the falling piece and
// scores it through the look-ahead window. It never touches the grid it is
// given; every branch works on its own copy.
type Searcher struct {
	Eval     Evaluator
	TieBreak TieBreaker
	// Parallel explores top-level branches on separate goroutines.
	Parallel bool
}

// NewSearcher returns a sequential searcher with the default weights that
// keeps the first of equal placements.
func NewSearcher() *Searcher {
	return &Searcher{
		Eval:     NewEvaluator(DefaultWeights()),
		TieBreak: KeepFirst(),
	}
}

// evalCache memoizes leaf evaluations by grid hash. It belongs to one branch
// and is not shared between goroutines.
type evalCache = *intmap.Map[uint64, float64]

func newEvalCache() evalCache {
	return intmap.New[uint64, float64](64)
}

// rotated is the falling piece turned Rotation times with the columns it can
// reach by sliding.
type rotated struct {
	grid        tetris.Grid
	rotation    int
	left, right int
}

type candidate struct {
	base   *rotated
	offset int
}

// Search picks the best placement of g's falling piece, looking ahead
// through next. It returns ctx.Err() if cancelled and ErrNoPlacement if g
// has no falling piece.
func (s *Searcher) Search(ctx context.Context, g tetris.Grid, next []tetris.Shape) (Plan, error) {
	if _, ok := g.Current(); !ok {
		return Plan{}, ErrNoPlacement
	}
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}

	rots := enumerate(&g)
	var cands []candidate
	for i := range rots {
		r := &rots[i]
		for off := -r.left; off <= r.right; off++ {
			cands = append(cands, candidate{base: r, offset: off})
		}
	}
	if len(cands) == 0 {
		return Plan{}, ErrNoPlacement
	}

	scores := make([]float64, len(cands))
	if s.Parallel {
		eg, ectx := errgroup.WithContext(ctx)
		eg.SetLimit(runtime.GOMAXPROCS(0))
		for i, c := range cands {
			eg.Go(func() error {
				scores[i] = s.place(ectx, c.base.grid, c.offset, next, newEvalCache())
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		cache := newEvalCache()
		for i, c := range cands {
			scores[i] = s.place(ctx, c.base.grid, c.offset, next, cache)
		}
	}
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}

	tb := s.TieBreak
	if tb == nil {
		tb = KeepFirst()
	}
	best := -1
	for i, sc := range scores {
		switch {
		case best < 0 || sc > scores[best]:
			best = i
		case sc == scores[best] && tb.ReplaceOnTie():
			best = i
		}
	}
	c := cands[best]
	return Plan{Rotation: c.base.rotation, Offset: c.offset, Score: scores[best]}, nil
}

// enumerate returns one entry per distinct rotation the piece can reach by
// clockwise turns in place.
func enumerate(g *tetris.Grid) []rotated {
	p, _ := g.Current()
	n := tetris.MinimalRotations(p.Shape)
	out := make([]rotated, 0, n)

	turned := g.Clone()
	for r := 0; r < n; r++ {
		if r > 0 && turned.Turn(1) {
			break
		}
		out = append(out, rotated{
			grid:     turned,
			rotation: r,
			left:     reach(turned, -1),
			right:    reach(turned, 1),
		})
	}
	return out
}

// reach counts how many columns the piece slides in dir before blocking.
func reach(g tetris.Grid, dir int) int {
	n := 0
	for !g.MoveSideways(dir) {
		n++
	}
	return n
}

// place slides, drops and locks the falling piece of g, then either scores
// the result or recurses into the next piece.
func (s *Searcher) place(ctx context.Context, g tetris.Grid, offset int, next []tetris.Shape, cache evalCache) float64 {
	if ctx.Err() != nil {
		return ScoreCancelled
	}
	dir := 1
	if offset < 0 {
		dir = -1
	}
	for i := 0; i < core.Abs(offset); i++ {
		g.MoveSideways(dir)
	}
	g.Drop()
	g.Merge()
	g.MarkLinesToClear()
	g.ClearMarkedLines()

	if len(next) == 0 {
		return s.evaluate(&g, cache)
	}
	if g.Spawn(next[0]) {
		return ScoreGameOver
	}
	return s.best(ctx, g, next[1:], cache)
}

// best returns the highest score over every placement of g's falling piece.
func (s *Searcher) best(ctx context.Context, g tetris.Grid, next []tetris.Shape, cache evalCache) float64 {
	if ctx.Err() != nil {
		return ScoreCancelled
	}
	best := ScoreGameOver
	for _, r := range enumerate(&g) {
		for off := -r.left; off <= r.right; off++ {
			sc := s.place(ctx, r.grid, off, next, cache)
			if sc == ScoreCancelled {
				return ScoreCancelled
			}
			best = max(best, sc)
		}
	}
	return best
}

func (s *Searcher) evaluate(g *tetris.Grid, cache evalCache) float64 {
	h := g.Hash()
	if v, ok := cache.Get(h); ok {
		return v
	}
	v := s.Eval.Evaluate(g)
	cache.Put(h, v)
	return v
}

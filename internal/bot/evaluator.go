// Package bot is the autonomous player: it scores hypothetical placements
// with a grid heuristic, searches them through a look-ahead window of
// upcoming pieces and feeds the winning command sequence to a running game.
package bot

import "github.com/vovakirdan/blockfall/internal/tetris"

// Weights scale each grid feature in the heuristic score.
type Weights struct {
	AggregateHeight float64
	MaxHeight       float64
	Unevenness      float64
	Holes           float64
	Blockers        float64
}

// DefaultWeights returns the stock weights: heights and unevenness cost one
// point each, holes two and blockers three.
func DefaultWeights() Weights {
	return Weights{
		AggregateHeight: -1,
		MaxHeight:       -1,
		Unevenness:      -1,
		Holes:           -2,
		Blockers:        -3,
	}
}

// Features are the raw grid measurements the evaluator combines.
type Features struct {
	Heights         [tetris.Width]int
	AggregateHeight int
	MaxHeight       int
	Unevenness      int
	Holes           int
	Blockers        int
}

// Measure scans the background once, column by column.
//
// A hole is an empty cell with a filled cell somewhere above it in the same
// column. A blocker is a filled cell with at least one hole below it.
// Unevenness includes the drop from each outer column to the walls.
func Measure(g *tetris.Grid) Features {
	var f Features
	for x := 0; x < tetris.Width; x++ {
		h := g.ColumnHeight(x)
		f.Heights[x] = h
		f.AggregateHeight += h
		f.MaxHeight = max(f.MaxHeight, h)

		lowestHole := -1
		for y := 0; y < h; y++ {
			if g.Cell(x, y) == tetris.Empty {
				f.Holes++
				if lowestHole < 0 {
					lowestHole = y
				}
			}
		}
		if lowestHole >= 0 {
			for y := lowestHole + 1; y < h; y++ {
				if g.Cell(x, y) != tetris.Empty {
					f.Blockers++
				}
			}
		}
	}

	f.Unevenness = f.Heights[0] + f.Heights[tetris.Width-1]
	for x := 1; x < tetris.Width; x++ {
		d := f.Heights[x] - f.Heights[x-1]
		if d < 0 {
			d = -d
		}
		f.Unevenness += d
	}
	return f
}

// Evaluator turns a grid into a score; higher is better.
type Evaluator struct {
	Weights Weights
}

// NewEvaluator returns an evaluator using w.
func NewEvaluator(w Weights) Evaluator {
	return Evaluator{Weights: w}
}

// Score combines measured features linearly.
func (e Evaluator) Score(f Features) float64 {
	w := e.Weights
	return w.AggregateHeight*float64(f.AggregateHeight) +
		w.MaxHeight*float64(f.MaxHeight) +
		w.Unevenness*float64(f.Unevenness) +
		w.Holes*float64(f.Holes) +
		w.Blockers*float64(f.Blockers)
}

// Evaluate measures and scores g.
func (e Evaluator) Evaluate(g *tetris.Grid) float64 {
	return e.Score(Measure(g))
}

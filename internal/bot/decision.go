package bot

import "github.com/vovakirdan/blockfall/internal/tetris"

// Decision is one placement choice together with the state it was made in.
// Grid, Current, Next, Rotation and Offset are the training sample; Score is
// the value the search assigned.
type Decision struct {
	Grid     tetris.Grid
	Current  tetris.Shape
	Next     tetris.Shape
	HasNext  bool
	Rotation int
	Offset   int
	Score    float64
}

// Recorder receives every decision the bot makes.
type Recorder interface {
	Record(d Decision) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(d Decision) error

// Record calls f(d).
func (f RecorderFunc) Record(d Decision) error {
	return f(d)
}

func newDecision(g tetris.Grid, next []tetris.Shape, plan Plan) Decision {
	p, _ := g.Current()
	g.ClearCurrent()
	d := Decision{
		Grid:     g,
		Current:  p.Shape,
		Rotation: plan.Rotation,
		Offset:   plan.Offset,
		Score:    plan.Score,
	}
	if len(next) > 0 {
		d.Next = next[0]
		d.HasNext = true
	}
	return d
}

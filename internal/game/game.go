// Package game runs the falling-block state machine: it owns the grid, the
// next-piece queue, the fall and lock timers and the input queue, and walks a
// piece through generation, falling, lock-down and line elimination.
package game

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Notification reasons passed to Options.Notify besides phase names.
const (
	ReasonHardDrop = "hard drop"
	ReasonTetris   = "tetris"
	ReasonPaused   = "paused"
	ReasonResumed  = "resumed"
)

const eventBuffer = 256

// Options configures a Game. Zero values select the defaults.
type Options struct {
	Logger *log.Logger
	// Notify is called from the game loop after every phase step and during
	// hard-drop animation. It must not block.
	Notify func(reason string)
	// Source deals pieces. Nil means a 7-bag seeded with Seed.
	Source tetris.PieceSource
	Seed   int64

	StartLevel int
	FixedLevel bool
	NextCount  int
	LockDelay  time.Duration
	Scoring    ScoringMode
}

// Game is one game from first spawn to block-out.
type Game struct {
	log     *log.Logger
	notifyf func(string)
	opts    Options

	events  chan core.Event
	done    chan struct{}
	started atomic.Bool

	// mu guards everything Snapshot reads. Only the loop goroutine writes.
	mu       sync.RWMutex
	grid     tetris.Grid
	queue    *tetris.NextQueue
	held     tetris.Shape
	hasHeld  bool
	canHold  bool
	phase    Phase
	score    int
	level    int
	lines    int
	tetrises int
	pieces   int

	// Loop-private state.
	pending    tetris.Shape
	hasPending bool
	softRows   int
	hardRows   int
	forceLock  bool

	fallTimer *Timer
	lockTimer *Timer

	pauseMu   sync.Mutex
	pauseCond *sync.Cond
	paused    bool
}

// New creates a game ready to Run.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Source == nil {
		opts.Source = tetris.NewBag(rand.New(rand.NewSource(opts.Seed)))
	}
	if opts.StartLevel < 1 {
		opts.StartLevel = 1
	}
	if opts.StartLevel > MaxLevel {
		opts.StartLevel = MaxLevel
	}
	if opts.NextCount < 1 {
		opts.NextCount = 3
	}
	if opts.LockDelay <= 0 {
		opts.LockDelay = DefaultLockDelay
	}
	if opts.Scoring == "" {
		opts.Scoring = ScoringCumulative
	}

	g := &Game{
		log:     opts.Logger,
		notifyf: opts.Notify,
		opts:    opts,
		events:  make(chan core.Event, eventBuffer),
		done:    make(chan struct{}),
		queue:   tetris.NewNextQueue(opts.Source, opts.NextCount),
		canHold: true,
		level:   opts.StartLevel,
	}
	g.pauseCond = sync.NewCond(&g.pauseMu)
	g.fallTimer = NewTimer(FallDuration(g.level), g.wake)
	g.lockTimer = NewTimer(opts.LockDelay, g.wake)
	return g
}

// Submit enqueues a control event. It is safe for concurrent use; the human
// interface and the bot both feed the game through it. Events submitted after
// the game has finished are dropped.
func (g *Game) Submit(ev core.Event) {
	select {
	case g.events <- ev:
	case <-g.done:
	}
}

// wake pushes a no-op event so a loop blocked on the queue re-checks its
// timers. It never blocks: a full queue will wake the loop anyway.
func (g *Game) wake() {
	select {
	case g.events <- core.EventNone:
	default:
	}
}

// SetPaused pauses or resumes the game loop.
func (g *Game) SetPaused(paused bool) {
	g.pauseMu.Lock()
	g.paused = paused
	g.pauseMu.Unlock()
	if paused {
		g.wake()
	} else {
		g.pauseCond.Broadcast()
	}
}

// TogglePause flips the pause state and returns the new value.
func (g *Game) TogglePause() bool {
	g.pauseMu.Lock()
	paused := !g.paused
	g.pauseMu.Unlock()
	g.SetPaused(paused)
	return paused
}

// Paused reports whether a pause was requested.
func (g *Game) Paused() bool {
	g.pauseMu.Lock()
	defer g.pauseMu.Unlock()
	return g.paused
}

// Done is closed when Run returns.
func (g *Game) Done() <-chan struct{} {
	return g.done
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.phase
}

// Run drives the game until block-out or until ctx is cancelled. Both are a
// normal end. Run must be called once.
func (g *Game) Run(ctx context.Context) {
	if !g.started.CompareAndSwap(false, true) {
		panic("game: Run called twice")
	}
	defer close(g.done)
	defer g.fallTimer.Stop()
	defer g.lockTimer.Stop()

	stop := context.AfterFunc(ctx, func() {
		g.pauseMu.Lock()
		defer g.pauseMu.Unlock()
		g.pauseCond.Broadcast()
	})
	defer stop()

	g.log.Debug("game started", "level", g.level, "scoring", g.opts.Scoring)
	for {
		if !g.pausePoint(ctx) {
			g.log.Debug("game cancelled", "phase", g.Phase())
			return
		}
		from := g.Phase()
		to, ok := g.step(ctx, from)
		if !ok {
			g.log.Debug("game cancelled", "phase", from)
			return
		}
		g.mu.Lock()
		g.phase = to
		g.mu.Unlock()
		g.log.Debug("phase", "from", from, "to", to)
		g.notify(to.String())

		if to == PhaseGameOver {
			r := g.Result()
			g.log.Info("game over", "score", r.Score, "level", r.Level, "lines", r.Lines, "tetrises", r.Tetrises)
			return
		}
	}
}

func (g *Game) notify(reason string) {
	if g.notifyf != nil {
		g.notifyf(reason)
	}
}

// dequeue blocks until an event arrives or ctx is cancelled.
func (g *Game) dequeue(ctx context.Context) (core.Event, bool) {
	select {
	case ev := <-g.events:
		return ev, true
	case <-ctx.Done():
		return core.EventNone, false
	}
}

// pausePoint blocks while the game is paused. Running timers are stopped for
// the duration of the pause and resumed afterwards. It returns false if ctx
// was cancelled.
func (g *Game) pausePoint(ctx context.Context) bool {
	g.pauseMu.Lock()
	if !g.paused {
		g.pauseMu.Unlock()
		return ctx.Err() == nil
	}
	g.pauseMu.Unlock()

	fall, lock := g.fallTimer.Running(), g.lockTimer.Running()
	g.fallTimer.Stop()
	g.lockTimer.Stop()
	g.log.Debug("paused")
	g.notify(ReasonPaused)

	g.pauseMu.Lock()
	for g.paused && ctx.Err() == nil {
		g.pauseCond.Wait()
	}
	g.pauseMu.Unlock()
	if ctx.Err() != nil {
		return false
	}

	if fall {
		g.fallTimer.Start()
	}
	if lock {
		g.lockTimer.Start()
	}
	g.log.Debug("resumed")
	g.notify(ReasonResumed)
	return true
}

// update runs f with the state lock held.
func (g *Game) update(f func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f()
}

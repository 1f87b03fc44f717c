package bot

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/game"
)

// DefaultQuantum is how often the bot polls the game phase.
const DefaultQuantum = 20 * time.Millisecond

// Game is the part of a running game the bot needs.
type Game interface {
	Snapshot() game.Snapshot
	Submit(ev core.Event)
	Done() <-chan struct{}
}

// Options configures a Bot.
type Options struct {
	Searcher  *Searcher
	Lookahead int
	Quantum   time.Duration
	Recorder  Recorder
	Logger    *log.Logger
}

// Bot plays a game by polling its phase and submitting the commands of the
// best placement once per piece.
type Bot struct {
	searcher  *Searcher
	lookahead int
	quantum   time.Duration
	recorder  Recorder
	log       *log.Logger
}

// New creates a bot.
func New(opts Options) *Bot {
	if opts.Searcher == nil {
		opts.Searcher = NewSearcher()
	}
	if opts.Lookahead < 0 {
		opts.Lookahead = 0
	}
	if opts.Quantum <= 0 {
		opts.Quantum = DefaultQuantum
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Bot{
		searcher:  opts.Searcher,
		lookahead: opts.Lookahead,
		quantum:   opts.Quantum,
		recorder:  opts.Recorder,
		log:       opts.Logger,
	}
}

// Run plays g until it finishes or ctx is cancelled. A search in flight
// when the game ends is cancelled. Both endings return nil.
func (b *Bot) Run(ctx context.Context, g Game) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-g.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(b.quantum)
	defer ticker.Stop()

	lastPiece := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		snap := g.Snapshot()
		if snap.Paused || !snap.Phase.Controllable() || snap.Pieces == lastPiece {
			continue
		}
		lastPiece = snap.Pieces

		plan, err := b.Decide(ctx, snap)
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, ErrNoPlacement):
			continue
		case err != nil:
			b.log.Warn("bot decision failed", "err", err)
			continue
		}
		for _, ev := range plan.Commands() {
			g.Submit(ev)
		}
	}
}

// Decide searches the snapshot's falling piece and records the decision.
func (b *Bot) Decide(ctx context.Context, snap game.Snapshot) (Plan, error) {
	next := snap.Next
	if len(next) > b.lookahead {
		next = next[:b.lookahead]
	}

	start := time.Now()
	plan, err := b.searcher.Search(ctx, snap.Grid, next)
	if err != nil {
		return Plan{}, err
	}
	p, _ := snap.Grid.Current()
	b.log.Debug("decision",
		"piece", p.Shape,
		"rotation", plan.Rotation,
		"offset", plan.Offset,
		"score", plan.Score,
		"took", time.Since(start),
	)

	if b.recorder != nil {
		if err := b.recorder.Record(newDecision(snap.Grid, snap.Next, plan)); err != nil {
			b.log.Warn("recording decision failed", "err", err)
		}
	}
	return plan, nil
}

package tetris

import "math/rand"

// PieceSource yields an endless sequence of shapes.
type PieceSource interface {
	Next() Shape
}

// Bag is the 7-bag randomizer: it deals a shuffled permutation of all seven
// shapes and reshuffles only once the permutation is used up.
type Bag struct {
	rng    *rand.Rand
	pieces []Shape
}

// NewBag creates a bag drawing its shuffles from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng, pieces: make([]Shape, 0, numShapes)}
}

// NewSeededBag creates a bag with its own seeded generator.
func NewSeededBag(seed int64) *Bag {
	return NewBag(rand.New(rand.NewSource(seed)))
}

// Next removes and returns the next shape, refilling the bag when empty.
func (b *Bag) Next() Shape {
	if len(b.pieces) == 0 {
		b.refill()
	}
	s := b.pieces[0]
	b.pieces = b.pieces[1:]
	return s
}

// Remaining returns how many shapes are left before the next reshuffle.
func (b *Bag) Remaining() int {
	return len(b.pieces)
}

func (b *Bag) refill() {
	b.pieces = append(b.pieces[:0], Shapes[:]...)
	b.rng.Shuffle(len(b.pieces), func(i, j int) {
		b.pieces[i], b.pieces[j] = b.pieces[j], b.pieces[i]
	})
}

// Sequence is a PieceSource that cycles through a fixed list of shapes.
type Sequence struct {
	shapes []Shape
	i      int
}

// NewSequence returns a source repeating shapes in order.
func NewSequence(shapes ...Shape) *Sequence {
	if len(shapes) == 0 {
		panic("tetris: empty sequence")
	}
	return &Sequence{shapes: shapes}
}

// Next returns the next shape of the cycle.
func (s *Sequence) Next() Shape {
	sh := s.shapes[s.i%len(s.shapes)]
	s.i++
	return sh
}

// NextQueue is a fixed-length FIFO of upcoming shapes. Every Next call pops
// the front and restocks from the source, so Len never changes.
type NextQueue struct {
	src   PieceSource
	items []Shape
}

// NewNextQueue fills a queue of n shapes from src.
func NewNextQueue(src PieceSource, n int) *NextQueue {
	if n < 1 {
		n = 1
	}
	q := &NextQueue{src: src, items: make([]Shape, 0, n)}
	for i := 0; i < n; i++ {
		q.items = append(q.items, src.Next())
	}
	return q
}

// Next pops the front shape and restocks the back.
func (q *NextQueue) Next() Shape {
	s := q.items[0]
	copy(q.items, q.items[1:])
	q.items[len(q.items)-1] = q.src.Next()
	return s
}

// Peek returns a copy of the queued shapes, front first.
func (q *NextQueue) Peek() []Shape {
	out := make([]Shape, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the queue length.
func (q *NextQueue) Len() int {
	return len(q.items)
}

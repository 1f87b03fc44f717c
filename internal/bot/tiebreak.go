package bot

import (
	"math/rand"
	"sync"
)

// TieBreaker decides whether a candidate scoring exactly as well as the
// current best replaces it. Candidates are offered in enumeration order.
type TieBreaker interface {
	ReplaceOnTie() bool
}

type keepFirst struct{}

func (keepFirst) ReplaceOnTie() bool { return false }

// KeepFirst never replaces the best, so equal inputs always produce the
// same decision.
func KeepFirst() TieBreaker {
	return keepFirst{}
}

type coinFlip struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (c *coinFlip) ReplaceOnTie() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(2) == 0
}

// CoinFlip replaces the best with a fair coin flip drawn from rng.
// Seeding rng makes the choices reproducible.
func CoinFlip(rng *rand.Rand) TieBreaker {
	return &coinFlip{rng: rng}
}

// ParseTieBreak maps a config name to a strategy. Anything other than
// "coin" keeps the first best.
func ParseTieBreak(name string, seed int64) TieBreaker {
	if name == "coin" {
		return CoinFlip(rand.New(rand.NewSource(seed)))
	}
	return KeepFirst()
}

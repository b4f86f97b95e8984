package deck

import (
	"math/rand"
	"sync"
)

// Cycler deals cards one at a time from a shuffled working set. A fresh full
// copy of the deck is reshuffled in exactly when the working set runs dry,
// so within one cycle no card repeats and the cycle boundary is invisible to
// callers. The working set is in-memory only; a restart starts a new cycle.
type Cycler struct {
	mu        sync.Mutex
	deck      *Deck
	remaining []string
}

// NewCycler creates a cycler over the deck's full card set.
func NewCycler(d *Deck) *Cycler {
	return &Cycler{deck: d}
}

// Draw removes and returns one card name. Returns ok=false only when the
// deck itself is empty.
func (c *Cycler) Draw() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.remaining) == 0 {
		names := c.deck.Names()
		if len(names) == 0 {
			return "", false
		}
		c.remaining = make([]string, len(names))
		copy(c.remaining, names)
		rand.Shuffle(len(c.remaining), func(i, j int) {
			c.remaining[i], c.remaining[j] = c.remaining[j], c.remaining[i]
		})
	}

	last := len(c.remaining) - 1
	card := c.remaining[last]
	c.remaining = c.remaining[:last]
	return card, true
}

// Remaining reports how many cards are left in the current cycle.
func (c *Cycler) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.remaining)
}

package puzzle

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

/*

Grid generation

The generator fills the grid one cell at a time in reading order,
drawing each cell's symbol at random from a per-cell candidate
pool.  Pools are consumed without replacement: a drawn symbol never
comes back until the pool is replenished.  When a cell's pool runs
down to its last symbol and that symbol still conflicts, the
generator clears the cell, replenishes its pool, and steps the
cursor back one cell, so the previous cell gets retried with a
different draw from its own partially-consumed pool.  Stepping back
from the first column wraps to the last column of the previous row.

This is randomized backtracking with local retry rather than a full
recursive unwind.  It terminates because a replenished pool always
offers the full alphabet again, so repeated retries eventually walk
back far enough to undo whatever placement painted the later cells
into a corner.  There is no useful worst-case bound; callers that
need latency guarantees should time out and retry with a new seed.

The cursor walk is an explicit iterative loop over a flattened
index with an array of pools, not per-cell recursion, so large box
sizes can't exhaust the call stack no matter how long they thrash.

*/

// Generate produces a fully solved grid of the given box size.
// Every row, column, and box of the result contains each alphabet
// symbol exactly once.  Fails with an invalid-size Error if the
// box size is out of bounds.
//
// The random source drives all candidate draws; passing the same
// seeded source reproduces the same grid.  A nil source gets a
// fresh unpredictably-seeded one.
func Generate(size int, rng *rand.Rand) (*Grid, error) {
	if size < MinBoxSize || size > MaxBoxSize {
		return nil, sizeError(size)
	}
	if rng == nil {
		rng = NewRand(0)
	}

	g := newEmptyGrid(size)
	side := size * size

	// one candidate pool per cell, in visiting order
	pools := make([]candidatePool, side*side)
	for i := range pools {
		pools[i] = newCandidatePool(g.alphabet, rng)
	}

	row, col, i := 1, 1, 0
	for row <= side {
		for col >= 1 && col <= side {
			// draw until the pick doesn't conflict or the pool is
			// down to its last undrawn symbol
			var pick Symbol
			for drawn := false; !drawn || (g.conflicts(pick, col, row) && pools[i].remaining() > 1); {
				if pools[i].remaining() < 1 {
					pools[i].replenish()
				}
				pick = pools[i].draw()
				drawn = true
			}

			if g.conflicts(pick, col, row) {
				// pool exhausted without a legal symbol: clear the
				// cell, reset its pool, and retry the previous cell
				g.setCell(Empty, col, row)
				pools[i].replenish()
				col--
				i--
			} else {
				g.setCell(pick, col, row)
				col++
				i++
			}
		}
		if col > 0 {
			row++
			col = 1
		} else {
			row--
			col = side
		}
	}
	return g, nil
}

// NewRand returns a random source for generation and masking.  A
// zero seed selects an unpredictable seed from crypto/rand, so the
// zero value is the "just give me a random grid" case and any
// other seed reproduces its run exactly.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err == nil {
			seed = int64(binary.LittleEndian.Uint64(b[:]))
		} else {
			seed = time.Now().UnixNano()
		}
	}
	return rand.New(rand.NewSource(seed))
}

/*

Candidate pools

*/

// A candidatePool is one cell's multiset of not-yet-tried symbols.
// Pools exist only for the duration of a generation run.
type candidatePool struct {
	alphabet Alphabet
	rng      *rand.Rand
	undrawn  []Symbol
}

// newCandidatePool makes a full pool over the given alphabet.
func newCandidatePool(alphabet Alphabet, rng *rand.Rand) candidatePool {
	p := candidatePool{alphabet: alphabet, rng: rng}
	p.undrawn = make([]Symbol, len(alphabet))
	copy(p.undrawn, alphabet)
	return p
}

// remaining returns the number of undrawn symbols in the pool.
func (p *candidatePool) remaining() int {
	return len(p.undrawn)
}

// draw removes and returns one undrawn symbol, chosen uniformly at
// random.  The pool must not be empty.
func (p *candidatePool) draw() Symbol {
	j := p.rng.Intn(len(p.undrawn))
	sym := p.undrawn[j]
	last := len(p.undrawn) - 1
	p.undrawn[j] = p.undrawn[last]
	p.undrawn = p.undrawn[:last]
	return sym
}

// replenish restores the pool to the full alphabet.
func (p *candidatePool) replenish() {
	p.undrawn = p.undrawn[:0]
	p.undrawn = append(p.undrawn, p.alphabet...)
}

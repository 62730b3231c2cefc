package puzzle

import (
	"math/rand"
)

/*

Puzzle masking

*/

// Poke derives a playable puzzle from a solved grid by clearing
// amount cells chosen uniformly at random, each distinct (a cell
// that is already Empty is re-picked).  The input grid is never
// mutated; the result is an independent deep copy.
//
// The amount must not exceed the number of filled cells, or the
// re-picking could never finish; such an amount (or a negative
// one) fails with an out-of-range Error instead.
//
// A nil random source gets a fresh unpredictably-seeded one.
func Poke(solved *Grid, amount int, rng *rand.Rand) (*Grid, error) {
	filled := len(solved.cells) - solved.EmptyCount()
	if amount < 0 || amount > filled {
		return nil, rangeError(AmountAttribute, amount, 0, filled)
	}
	if rng == nil {
		rng = NewRand(0)
	}

	poked := solved.Copy()
	for n := 0; n < amount; n++ {
		for {
			target := rng.Intn(len(poked.cells))
			if poked.cells[target] != Empty {
				poked.cells[target] = Empty
				break
			}
		}
	}
	return poked, nil
}

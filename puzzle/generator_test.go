package puzzle

import (
	"os"
	"strconv"
	"testing"
)

/*

helpers

*/

// helperCheckSolved verifies that every row, column, and box of a
// grid is a permutation of its alphabet.
func helperCheckSolved(t *testing.T, g *Grid) {
	t.Helper()
	side := g.SideLength()
	checkGroup := func(name string, syms []Symbol) {
		seen := make(map[Symbol]bool, side)
		for _, sym := range syms {
			if sym == Empty {
				t.Errorf("%s contains an empty cell", name)
				continue
			}
			if !g.Alphabet().Contains(sym) {
				t.Errorf("%s contains foreign symbol %c", name, byte(sym))
			}
			if seen[sym] {
				t.Errorf("%s contains %c twice", name, byte(sym))
			}
			seen[sym] = true
		}
		if len(seen) != side {
			t.Errorf("%s has %d distinct symbols, expected %d", name, len(seen), side)
		}
	}
	for i := 1; i <= side; i++ {
		rowSyms, err := g.Row(i)
		if err != nil {
			t.Fatalf("Row(%d) failed: %v", i, err)
		}
		checkGroup("row "+strconv.Itoa(i), rowSyms)
		colSyms, err := g.Column(i)
		if err != nil {
			t.Fatalf("Column(%d) failed: %v", i, err)
		}
		checkGroup("column "+strconv.Itoa(i), colSyms)
	}
	for br := 1; br <= g.Size(); br++ {
		for bc := 1; bc <= g.Size(); bc++ {
			boxSyms, err := g.Box(bc, br)
			if err != nil {
				t.Fatalf("Box(%d,%d) failed: %v", bc, br, err)
			}
			checkGroup("box", boxSyms)
		}
	}
}

/*

generation

*/

func TestGenerate(t *testing.T) {
	for _, size := range []int{2, 3} {
		g, err := Generate(size, NewRand(42))
		if err != nil {
			t.Fatalf("Generate(%d) failed: %v", size, err)
		}
		if g.Size() != size {
			t.Errorf("Generate(%d) produced box size %d", size, g.Size())
		}
		if g.EmptyCount() != 0 {
			t.Errorf("Generate(%d) left %d empty cells", size, g.EmptyCount())
		}
		helperCheckSolved(t, g)
	}
}

// the larger box sizes can take a while to converge, so they only
// run on request
func TestGenerateAllSizes(t *testing.T) {
	if os.Getenv("PUZZLE_SLOW_TESTS") == "" {
		t.Skip("set PUZZLE_SLOW_TESTS to generate the larger box sizes")
	}
	for size := MinBoxSize; size <= MaxBoxSize; size++ {
		g, err := Generate(size, NewRand(1))
		if err != nil {
			t.Fatalf("Generate(%d) failed: %v", size, err)
		}
		helperCheckSolved(t, g)
	}
}

func TestGenerateReproducible(t *testing.T) {
	first, err := Generate(3, NewRand(7))
	if err != nil {
		t.Fatalf("First generation failed: %v", err)
	}
	second, err := Generate(3, NewRand(7))
	if err != nil {
		t.Fatalf("Second generation failed: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("Same seed produced different grids:\n%v\n%v", first, second)
	}
	other, err := Generate(3, NewRand(8))
	if err != nil {
		t.Fatalf("Third generation failed: %v", err)
	}
	if first.Equal(other) {
		t.Errorf("Different seeds produced the same grid")
	}
}

func TestGenerateInvalidSize(t *testing.T) {
	for _, size := range []int{-3, 0, 1, 8, 100} {
		if _, err := Generate(size, NewRand(1)); err == nil {
			t.Errorf("Generate(%d) did not fail", size)
		} else if err.(Error).Kind != InvalidSizeKind {
			t.Errorf("Generate(%d): wrong error: %v", size, err)
		}
	}
}

func TestNewRand(t *testing.T) {
	a, b := NewRand(3), NewRand(3)
	for i := 0; i < 10; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatalf("Same seed produced different sequences")
		}
	}
	// zero seeds must not all land on the same sequence
	c, d := NewRand(0), NewRand(0)
	same := true
	for i := 0; i < 10; i++ {
		if c.Intn(1000) != d.Intn(1000) {
			same = false
		}
	}
	if same {
		t.Errorf("Two zero-seeded sources produced identical sequences")
	}
}

/*

candidate pools

*/

func TestCandidatePool(t *testing.T) {
	alphabet, _ := alphabetForSize(2)
	pool := newCandidatePool(alphabet, NewRand(5))
	if pool.remaining() != 4 {
		t.Fatalf("Fresh pool has %d symbols, expected 4", pool.remaining())
	}
	seen := make(map[Symbol]bool)
	for pool.remaining() > 0 {
		sym := pool.draw()
		if seen[sym] {
			t.Errorf("Pool drew %c twice without replenishment", byte(sym))
		}
		seen[sym] = true
	}
	if len(seen) != 4 {
		t.Errorf("Pool drew %d distinct symbols, expected 4", len(seen))
	}
	pool.replenish()
	if pool.remaining() != 4 {
		t.Errorf("Replenished pool has %d symbols, expected 4", pool.remaining())
	}
}

package puzzle

import (
	"testing"
)

func TestPoke(t *testing.T) {
	g := helperSolved4(t)
	pristine := g.Copy()
	poked, err := Poke(g, 4, NewRand(11))
	if err != nil {
		t.Fatalf("Poke failed: %v", err)
	}
	if got := poked.EmptyCount(); got != 4 {
		t.Errorf("Poked grid has %d empty cells, expected 4", got)
	}
	// the input is untouched
	if !g.Equal(pristine) {
		t.Errorf("Poke mutated its input grid")
	}
	// every surviving cell matches the source
	for row := 1; row <= 4; row++ {
		for col := 1; col <= 4; col++ {
			got, _ := poked.Cell(col, row)
			want, _ := g.Cell(col, row)
			if got != Empty && got != want {
				t.Errorf("Poked cell (%d,%d) is %c, source has %c",
					col, row, byte(got), byte(want))
			}
		}
	}
}

func TestPokeZero(t *testing.T) {
	g := helperSolved4(t)
	poked, err := Poke(g, 0, NewRand(1))
	if err != nil {
		t.Fatalf("Poke(0) failed: %v", err)
	}
	if !g.Equal(poked) {
		t.Errorf("Poke(0) changed the grid contents")
	}
	// equal but independent
	poked.SetCell(Empty, 1, 1, true)
	if got, _ := g.Cell(1, 1); got != '1' {
		t.Errorf("Poke(0) result shares storage with the source")
	}
}

func TestPokeAll(t *testing.T) {
	g := helperSolved4(t)
	poked, err := Poke(g, 16, NewRand(1))
	if err != nil {
		t.Fatalf("Poke of every cell failed: %v", err)
	}
	if got := poked.EmptyCount(); got != 16 {
		t.Errorf("Poked grid has %d empty cells, expected 16", got)
	}
}

func TestPokeBounds(t *testing.T) {
	g := helperSolved4(t)
	for _, amount := range []int{-1, 17} {
		if _, err := Poke(g, amount, NewRand(1)); err == nil {
			t.Errorf("Poke(%d) did not fail", amount)
		} else if e := err.(Error); e.Kind != OutOfRangeKind || e.Attribute != AmountAttribute {
			t.Errorf("Poke(%d): wrong error: %v", amount, err)
		}
	}
	// the bound is the number of filled cells, not the cell count
	partial := helperPartial4(t) // 12 filled
	if _, err := Poke(partial, 13, NewRand(1)); err == nil {
		t.Errorf("Poke past the filled-cell count did not fail")
	}
	if _, err := Poke(partial, 12, NewRand(1)); err != nil {
		t.Errorf("Poke of exactly the filled-cell count failed: %v", err)
	}
}

func TestPokeReproducible(t *testing.T) {
	g := helperSolved4(t)
	first, err := Poke(g, 6, NewRand(23))
	if err != nil {
		t.Fatalf("First poke failed: %v", err)
	}
	second, err := Poke(g, 6, NewRand(23))
	if err != nil {
		t.Fatalf("Second poke failed: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("Same seed produced different maskings:\n%v\n%v", first, second)
	}
}

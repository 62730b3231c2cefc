package puzzle

import (
	"testing"
)

func TestIsViolating(t *testing.T) {
	// a single filled cell at (1,1) makes the three conflict
	// directions easy to isolate
	g, err := FromCells([]Symbol("1###" + "####" + "####" + "####"))
	if err != nil {
		t.Fatalf("Couldn't build the test grid: %v", err)
	}
	cases := []struct {
		sym      Symbol
		col, row int
		want     bool
		why      string
	}{
		{'1', 4, 1, true, "same row"},
		{'1', 1, 4, true, "same column"},
		{'1', 2, 2, true, "same box"},
		{'1', 3, 3, false, "different row, column, and box"},
		{'2', 2, 2, false, "absent symbol"},
	}
	for _, c := range cases {
		got, err := g.IsViolating(c.sym, c.col, c.row)
		if err != nil {
			t.Fatalf("IsViolating(%c,%d,%d) failed: %v", byte(c.sym), c.col, c.row, err)
		}
		if got != c.want {
			t.Errorf("IsViolating(%c,%d,%d) = %v, expected %v (%s)",
				byte(c.sym), c.col, c.row, got, c.want, c.why)
		}
	}
}

func TestIsViolatingIgnoresOccupancy(t *testing.T) {
	// the target cell being occupied is the caller's concern, not
	// the checker's
	g, err := FromCells([]Symbol("1###" + "####" + "####" + "####"))
	if err != nil {
		t.Fatalf("Couldn't build the test grid: %v", err)
	}
	got, err := g.IsViolating('2', 1, 1)
	if err != nil {
		t.Fatalf("IsViolating on an occupied cell failed: %v", err)
	}
	if got {
		t.Errorf("Non-conflicting symbol on an occupied cell reported as violating")
	}
}

func TestIsViolatingBadInputs(t *testing.T) {
	g := helperSolved4(t)
	if _, err := g.IsViolating('9', 1, 1); err == nil {
		t.Errorf("Foreign symbol did not fail")
	} else if err.(Error).Kind != InvalidCharacterKind {
		t.Errorf("Foreign symbol: wrong error: %v", err)
	}
	if _, err := g.IsViolating('1', 0, 1); err == nil {
		t.Errorf("Out-of-range column did not fail")
	} else if err.(Error).Kind != OutOfRangeKind {
		t.Errorf("Out-of-range column: wrong error: %v", err)
	}
	if _, err := g.IsViolating('1', 1, 5); err == nil {
		t.Errorf("Out-of-range row did not fail")
	} else if err.(Error).Kind != OutOfRangeKind {
		t.Errorf("Out-of-range row: wrong error: %v", err)
	}
}

func TestIsViolatingOnSolvedGrid(t *testing.T) {
	// in a solved grid, every symbol conflicts everywhere
	g := helperSolved4(t)
	for row := 1; row <= 4; row++ {
		for col := 1; col <= 4; col++ {
			for _, sym := range g.Alphabet() {
				got, err := g.IsViolating(sym, col, row)
				if err != nil {
					t.Fatalf("IsViolating(%c,%d,%d) failed: %v", byte(sym), col, row, err)
				}
				if !got {
					t.Errorf("IsViolating(%c,%d,%d) = false on a solved grid",
						byte(sym), col, row)
				}
			}
		}
	}
}

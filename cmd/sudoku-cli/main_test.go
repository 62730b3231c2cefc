package main

import (
	"testing"
)

func TestParsePosition(t *testing.T) {
	cases := []struct {
		arg      string
		col, row int
		ok       bool
	}{
		{"3x4", 3, 4, true},
		{"1x1", 1, 1, true},
		{"12X7", 12, 7, true},
		{"34", 0, 0, false},
		{"x4", 0, 0, false},
		{"3x", 0, 0, false},
		{"ax4", 0, 0, false},
		{"3xb", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, c := range cases {
		col, row, err := parsePosition(c.arg)
		if c.ok {
			if err != nil {
				t.Errorf("parsePosition(%q) failed: %v", c.arg, err)
			} else if col != c.col || row != c.row {
				t.Errorf("parsePosition(%q) = %d, %d, expected %d, %d",
					c.arg, col, row, c.col, c.row)
			}
		} else if err == nil {
			t.Errorf("parsePosition(%q) did not fail", c.arg)
		}
	}
}

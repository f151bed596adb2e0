package mathx

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{11, 10, 0, 10},
		{3, 3, 3, 3},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%d,%d,%d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
	if got := Clamp(uint32(0), 1, 60_000); got != 1 {
		t.Errorf("uint32 clamp = %d", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(2, 7) != 2 || Min(7, 2) != 2 {
		t.Fatal("Min")
	}
	if Max("a", "b") != "b" {
		t.Fatal("Max")
	}
}

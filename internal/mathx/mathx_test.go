package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(1.2, 0.1, 0.5); got != 0.5 {
		t.Fatalf("upper clamp: got=%f want=0.5", got)
	}
	if got := Clamp(-3, 0, 5); got != 0 {
		t.Fatalf("lower clamp: got=%d want=0", got)
	}
	if got := Clamp(0.3, 0.1, 0.5); got != 0.3 {
		t.Fatalf("passthrough: got=%f want=0.3", got)
	}
}

func TestClampIndex(t *testing.T) {
	cases := []struct {
		pos  float64
		n    int
		want int
	}{
		{0, 8, 0},
		{0.124, 8, 0},
		{0.125, 8, 1},
		{0.999, 8, 7},
		{1.0, 8, 7},
		{1.5, 3, 2},
		{-0.2, 3, 0},
		{0.5, 0, 0},
	}
	for _, c := range cases {
		if got := ClampIndex(c.pos, c.n); got != c.want {
			t.Fatalf("ClampIndex(%v, %d): got=%d want=%d", c.pos, c.n, got, c.want)
		}
	}
}

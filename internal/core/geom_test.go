package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"same center", NewBox(50, 50, 10, 10), NewBox(50, 50, 4, 4), true},
		{"partial overlap", NewBox(0, 0, 10, 10), NewBox(8, 8, 10, 10), true},
		{"touching edges", NewBox(0, 0, 10, 10), NewBox(10, 0, 10, 10), false},
		{"far apart vertically", NewBox(0, 0, 10, 10), NewBox(0, 100, 10, 10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxExpand(t *testing.T) {
	a := NewBox(0, 0, 10, 10)
	b := NewBox(12, 0, 10, 10)
	if a.Intersects(b) {
		t.Fatal("boxes should not overlap before expansion")
	}
	if !a.Expand(3).Intersects(b) {
		t.Error("expanded box should overlap")
	}
	if a.Expand(3).W != 16 {
		t.Errorf("Expand(3).W = %f, expected 16", a.Expand(3).W)
	}
}

func TestBoxContainsX(t *testing.T) {
	b := NewBox(100, 0, 60, 0)
	for _, x := range []float64{70, 100, 130} {
		if !b.ContainsX(x) {
			t.Errorf("ContainsX(%f) = false, expected true", x)
		}
	}
	for _, x := range []float64{69.9, 130.1} {
		if b.ContainsX(x) {
			t.Errorf("ContainsX(%f) = true, expected false", x)
		}
	}
}

func TestApproach(t *testing.T) {
	tests := []struct {
		cur, target, step, expected float64
	}{
		{0, 10, 3, 3},
		{9, 10, 3, 10},
		{10, 0, 4, 6},
		{1, 0, 4, 0},
		{5, 5, 1, 5},
	}
	for _, tc := range tests {
		if got := Approach(tc.cur, tc.target, tc.step); got != tc.expected {
			t.Errorf("Approach(%v, %v, %v) = %v, expected %v", tc.cur, tc.target, tc.step, got, tc.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
	if ClampF(1.5, 0, 1) != 1 || ClampF(-0.2, 0, 1) != 0 {
		t.Error("ClampF should clamp to [0, 1]")
	}
}

package core

import (
	"math/rand"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name              string
		val, min, max, ex int
	}{
		{"one past max", 26, 0, 25, 0},
		{"one below min", -1, 0, 25, 25},
		{"inside", 7, 0, 25, 7},
		{"at min", 0, 0, 25, 0},
		{"at max", 25, 0, 25, 25},
		// Single-step, not modulo: any overshoot lands on the opposite edge.
		{"far past max", 30, 0, 25, 0},
		{"far below min", -4, 0, 25, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Wrap(tc.val, tc.min, tc.max); got != tc.ex {
				t.Errorf("Wrap(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.ex)
			}
		})
	}
}

func TestWrapInRangeIsIdentity(t *testing.T) {
	for v := -3; v <= 3; v++ {
		if got := Wrap(v, -3, 3); got != v {
			t.Errorf("Wrap(%d, -3, 3) = %d, expected identity", v, got)
		}
	}
}

func TestWrappedDistance(t *testing.T) {
	tests := []struct {
		a, b, size, expected int
	}{
		{0, 0, 26, 0},
		{0, 1, 26, 1},
		{0, 25, 26, 1},
		{3, 10, 26, 7},
		{0, 13, 26, 13},
		{11, 0, 12, 1},
	}

	for _, tc := range tests {
		if got := WrappedDistance(tc.a, tc.b, tc.size); got != tc.expected {
			t.Errorf("WrappedDistance(%d, %d, %d) = %d, expected %d", tc.a, tc.b, tc.size, got, tc.expected)
		}
	}
}

func TestRandomIntInclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := RandomInt(rng, -1, 1)
		if v < -1 || v > 1 {
			t.Fatalf("RandomInt(-1, 1) = %d, out of range", v)
		}
		seen[v] = true
	}
	for _, v := range []int{-1, 0, 1} {
		if !seen[v] {
			t.Errorf("RandomInt(-1, 1) never produced %d", v)
		}
	}
}

func TestCountdown(t *testing.T) {
	if Countdown(3) != 2 {
		t.Error("Countdown(3) should be 2")
	}
	if Countdown(0) != 0 {
		t.Error("Countdown(0) should stay 0")
	}
}

func TestMinMaxAbsSign(t *testing.T) {
	if Min(5, 10) != 5 || Max(5, 10) != 10 {
		t.Error("Min/Max mismatch")
	}
	if Abs(-5) != 5 || Abs(0) != 0 {
		t.Error("Abs mismatch")
	}
	if Sign(-3) != -1 || Sign(0) != 0 || Sign(9) != 1 {
		t.Error("Sign mismatch")
	}
}

// Package core provides the grid primitives, key controls and per-tick types
// shared by every minigame. It has no UI dependencies so game logic stays pure
// and testable.
package core

import "math/rand"

// Point is an integer cell position.
type Point struct {
	X, Y int
}

// Add returns p shifted by v.
func (p Point) Add(v Vec) Point {
	return Point{X: p.X + v.DX, Y: p.Y + v.DY}
}

// Vec is an integer per-tick displacement.
type Vec struct {
	DX, DY int
}

// IsZero reports whether the vector does not move.
func (v Vec) IsZero() bool {
	return v.DX == 0 && v.DY == 0
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Wrap corrects a single unit of overshoot: values below min become max and
// values above max become min. It is not a modulo reduction; callers move at
// most one cell per tick.
func Wrap(val, min, max int) int {
	if val < min {
		return max
	}
	if val > max {
		return min
	}
	return val
}

// WrapPoint wraps both coordinates of p into a width x height field.
func WrapPoint(p Point, width, height int) Point {
	return Point{X: Wrap(p.X, 0, width-1), Y: Wrap(p.Y, 0, height-1)}
}

// WrappedDistance is the shortest distance between a and b on a ring of the
// given size.
func WrappedDistance(a, b, size int) int {
	d := Abs(a - b)
	return Min(d, size-d)
}

// RandomInt returns a uniform integer in [min, max], both inclusive.
func RandomInt(rng *rand.Rand, min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + rng.Intn(max-min+1)
}

// Countdown decrements a cooldown counter without going below zero.
func Countdown(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

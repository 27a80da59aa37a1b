// Package gmath holds the small numeric helpers gameplay code keeps
// reaching for.
package gmath

import (
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*Clamp(t, 0, 1)
}

var rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

// RandRange returns a random float in [min, max).
func RandRange(min, max float32) float32 {
	return min + rng.Float32()*(max-min)
}

// RandIntn returns a random int in [0, n).
func RandIntn(n int) int {
	return rng.Intn(n)
}

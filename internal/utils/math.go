package utils

import (
	"math"
	"math/rand/v2"
)

// RandomFloat returns a random float64 in [0.0, 1.0)
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.IntN(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// RandomIndex returns an index in [0, n) drawn from rnd
func RandomIndex(n int, rnd func() float64) int {
	if n <= 0 {
		return 0
	}
	i := int(rnd() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// RoundHalfAway rounds to the nearest integer, halves away from zero
func RoundHalfAway(v float64) int64 {
	return int64(math.Round(v))
}

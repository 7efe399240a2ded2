package utils

import "math/rand/v2"

// RandomFloat draws from [0, 1). Used for gear rolls, not security.
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // gameplay randomness
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

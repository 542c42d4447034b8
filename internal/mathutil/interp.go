// Package mathutil provides scalar helpers shared by the S-basis algebra.
package mathutil

import (
	"math"
)

// Lerp linearly interpolates between a (at t=0) and b (at t=1).
//
// The form (1-t)*a + t*b is used rather than a + t*(b-a) so that the
// endpoints are reproduced exactly and the result matches the evaluation
// order of a Linear fragment.
func Lerp(t, a, b float64) float64 {
	return (1-t)*a + t*b
}

// Near reports whether |a-b| <= eps.
func Near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Midpoint returns the arithmetic mean of a and b.
func Midpoint(a, b float64) float64 {
	return (a + b) / halfDivisor
}

// SPower returns s(t) = t(1-t), the basis generator of the S-power basis.
// It is bounded by 1/4 on [0, 1], attained at t = 1/2.
func SPower(t float64) float64 {
	return t * (1 - t)
}

// PowInt computes x^n for a non-negative integer exponent by repeated
// squaring. It is exact for powers of two such as 0.25^n.
func PowInt(x float64, n int) float64 {
	result := 1.0
	for n > 0 {
		if n&1 == 1 {
			result *= x
		}
		x *= x
		n >>= 1
	}
	return result
}

// Min2 returns the smaller of a and b. If either is NaN the second operand
// is returned.
func Min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max2 is the mirror of Min2.
func Max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
